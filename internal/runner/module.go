package runner

import (
	"context"

	telegramsvc "signal_bot/internal/modules/telegram_bot/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("runner",
		fx.Provide(
			func(t *telegramsvc.Telegram) ServiceNotifier { return t },
			New,
		),
		fx.Invoke(func(
			lc fx.Lifecycle,
			r *Runner,
			ctx context.Context,
		) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					r.Start(ctx)
					return nil
				},
				OnStop: func(_ context.Context) error {
					r.Stop()
					return nil
				},
			})
		}),
	)
}
