package postgres

import (
	"context"
	"fmt"

	"signal_bot/internal/modules/config"
	"signal_bot/pkg/db"
	"signal_bot/pkg/logger"

	"go.uber.org/fx"
)

// Postgres опционален: без db_dsn бот работает только с CSV-журналом.
func Module() fx.Option {
	return fx.Module("postgres",
		fx.Provide(
			func(ctx context.Context, cfg *config.Config) (*db.PgTxManager, error) {
				if cfg.DB == "" {
					logger.Info("[PG] db_dsn не задан, Postgres выключен")
					return nil, nil
				}

				poolMaster, err := db.NewPool(ctx, db.PoolConfig{
					DSN: cfg.DB,
				})
				if err != nil {
					return nil, fmt.Errorf("failed to create poolMaster: %w", err)
				}

				err = poolMaster.Ping(ctx)
				if err != nil {
					return nil, err
				}

				return db.NewPgTxManager(poolMaster), nil
			},
		),
	)
}
