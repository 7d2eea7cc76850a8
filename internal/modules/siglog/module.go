package siglog

import (
	"context"

	"signal_bot/internal/modules/siglog/service"
	trackersvc "signal_bot/internal/modules/tracker/service"
	"signal_bot/pkg/db"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("siglog",
		fx.Provide(
			service.NewCSV,
			func(ctx context.Context, m *db.PgTxManager) (*service.History, error) {
				if m == nil {
					return nil, nil
				}
				return service.NewHistory(ctx, m)
			},
			service.NewLogbook,
			func(l *service.Logbook) trackersvc.Logbook { return l },
		),
	)
}
