package bootstrap

import (
	"context"
	"log/slog"
	"sync"

	"hotel-booking-api/internal/infra/repository"
	"hotel-booking-api/internal/pkg/clock"
	"hotel-booking-api/internal/pkg/config"
	"hotel-booking-api/internal/scheduler"

	"go.uber.org/fx"
)

var SchedulerModule = fx.Module("scheduler",
	fx.Provide(
		fx.Annotate(
			repository.NewSchedulerStore,
			fx.As(new(scheduler.Store)),
		),
		NewScheduler,
	),
	fx.Invoke(startScheduler),
)

func NewScheduler(store scheduler.Store, clk clock.Clock, logger *slog.Logger, cfg config.Config) *scheduler.Scheduler {
	return scheduler.New(store, clk, logger, cfg.Scheduler.TickInterval)
}

// startScheduler runs the sweep loop for the lifetime of the app. OnStop
// cancels the loop and waits for the in-flight tick, so shutdown never
// abandons a half-applied sweep.
func startScheduler(lc fx.Lifecycle, s *scheduler.Scheduler, cfg config.Config, logger *slog.Logger) {
	if !cfg.Scheduler.Enabled {
		logger.Info("booking status scheduler disabled")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			wg.Add(1)
			go func() {
				defer wg.Done()
				s.Run(ctx)
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			wg.Wait()
			return nil
		},
	})
}
