package reference

import (
	binancesvc "signal_bot/internal/modules/binance/service"
	"signal_bot/internal/modules/reference/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("reference",
		fx.Provide(
			func(c *binancesvc.Client) service.PriceFetcher { return c },
			service.NewTracker,
		),
	)
}
