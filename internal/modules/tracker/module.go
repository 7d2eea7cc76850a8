package tracker

import (
	"signal_bot/internal/modules/tracker/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("tracker",
		fx.Provide(
			service.NewStore,
			service.NewTracker,
		),
	)
}
