package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"appointment-scheduler/internal/pkg/config"
	"appointment-scheduler/internal/usecase/commands"

	"go.uber.org/fx"
)

var ReminderModule = fx.Module("reminder",
	fx.Invoke(StartReminderTicker),
)

// StartReminderTicker runs the reminder sweep every REMINDER_INTERVAL when REMINDER_ENABLED is set.
func StartReminderTicker(lc fx.Lifecycle, cfg config.Config, sweep commands.ReminderSweep, logger *slog.Logger) {
	if !cfg.Reminder.Enabled {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				ticker := time.NewTicker(sweep.Interval())
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						n, err := sweep.Sweep(ctx)
						if err != nil {
							logger.Error("Reminder sweep failed", "error", err.Error())
							continue
						}
						logger.Info("Reminder sweep finished", "reminders", n)
					}
				}
			}()
			logger.Info("Reminder ticker started", "interval", sweep.Interval(), "lead", cfg.Reminder.Lead)
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
