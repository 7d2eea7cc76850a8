package main

import (
	"context"
	"log"

	"signal_bot/internal/modules/binance"
	"signal_bot/internal/modules/config"
	"signal_bot/internal/modules/health"
	"signal_bot/internal/modules/postgres"
	"signal_bot/internal/modules/reference"
	"signal_bot/internal/modules/siglog"
	"signal_bot/internal/modules/strategy"
	"signal_bot/internal/modules/tracker"
	"signal_bot/internal/runner"
	"signal_bot/pkg/logger"
	"signal_bot/pkg/tracing"

	telegram "signal_bot/internal/modules/telegram_bot"

	"go.uber.org/fx"
)

func main() {
	if err := logger.Init(); err != nil {
		log.Fatal(err)
	}
	logger.SetServiceName("signal_bot")
	tracing.SetServiceName("signal_bot")

	app := fx.New(
		fx.Provide(
			func() context.Context {
				return context.Background()
			},
		),
		config.Module(),
		postgres.Module(),
		health.Module(),
		binance.Module(),
		strategy.Module(),
		tracker.Module(),
		siglog.Module(),
		reference.Module(),
		telegram.Module(),
		runner.Module(),

		fx.Invoke(func(lc fx.Lifecycle, cfg *config.Config) error {
			if cfg.Jaeger.Host == "" {
				return nil
			}
			_, closeTracer, err := tracing.InitTracer(tracing.Config{
				Host: cfg.Jaeger.Host,
				Port: cfg.Jaeger.Port,
			})
			if err != nil {
				return err
			}
			lc.Append(fx.Hook{
				OnStop: func(ctx context.Context) error {
					closeTracer()
					return nil
				},
			})
			return nil
		}),
	)
	app.Run()
}
