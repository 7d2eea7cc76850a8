package telegram

import (
	"context"

	"signal_bot/internal/modules/telegram_bot/service"
	"signal_bot/internal/modules/telegram_bot/service/pg"
	trackersvc "signal_bot/internal/modules/tracker/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("telegram",
		// 1. Репозиторий подписчиков
		fx.Provide(
			pg.NewSubscribers,
		),

		// 2. Сервис Telegram
		fx.Provide(
			service.NewTelegram,
			func(s *trackersvc.Store) service.PositionSource { return s },
		),

		// 3. Адаптер: *service.Telegram -> trackersvc.Notifier
		fx.Provide(
			func(t *service.Telegram) trackersvc.Notifier {
				return t
			},
		),

		// Запуск long-polling через Lifecycle. Для самого цикла берём
		// контекст приложения: ctx из OnStart живёт только до конца старта.
		fx.Invoke(
			func(lc fx.Lifecycle, t *service.Telegram, repo *pg.Subscribers, appCtx context.Context) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						if err := repo.Load(ctx); err != nil {
							return err
						}
						t.Start(appCtx)
						return nil
					},
					OnStop: func(ctx context.Context) error {
						t.Stop()
						return nil
					},
				})
			},
		),
	)
}
