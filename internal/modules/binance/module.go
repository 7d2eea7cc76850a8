package binance

import (
	"context"

	"signal_bot/internal/modules/binance/service"
	"signal_bot/internal/modules/config"
	healthsvc "signal_bot/internal/modules/health/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("binance",
		fx.Provide(
			service.NewClient,
		),
		// WS-тикер референс-актива живёт весь аптайм процесса.
		fx.Invoke(
			func(lc fx.Lifecycle, c *service.Client, cfg *config.Config, hs *healthsvc.State) {
				streamCtx, cancel := context.WithCancel(context.Background())
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						go c.StreamMiniTicker(streamCtx, cfg.ReferenceSymbol, hs)
						return nil
					},
					OnStop: func(ctx context.Context) error {
						cancel()
						return nil
					},
				})
			},
		),
	)
}
