package commands

import (
	"context"
	"log/slog"
	"time"

	"appointment-scheduler/internal/domain/notification"
	"appointment-scheduler/internal/pkg/config"
	"appointment-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

// ReminderSweep notifies customers whose appointment starts one lead time from now.
// Consecutive sweeps cover adjacent windows, so with a steady interval every
// appointment is reminded once.
type ReminderSweep interface {
	Sweep(ctx context.Context) (int, error)
	Interval() time.Duration
}

type reminderSweepImpl struct {
	uow      shared.UnitOfWork
	notifier shared.Notifier
	clock    *shared.ScheduleClock
	lead     time.Duration
	interval time.Duration
}

func NewReminderSweep(uow shared.UnitOfWork, notifier shared.Notifier, clk *shared.ScheduleClock, cfg config.Config) ReminderSweep {
	return &reminderSweepImpl{
		uow:      uow,
		notifier: notifier,
		clock:    clk,
		lead:     cfg.Reminder.Lead,
		interval: cfg.Reminder.Interval,
	}
}

func (s *reminderSweepImpl) Interval() time.Duration {
	return s.interval
}

func (s *reminderSweepImpl) Sweep(ctx context.Context) (int, error) {
	from := s.clock.Wall().Add(s.lead)
	to := from.Add(s.interval)

	due, err := s.uow.Reads().BookedStartingBetween(ctx, from, to)
	if err != nil {
		return 0, shared.Translate(err)
	}
	correlationID := "reminder-" + uuid.NewString()
	for _, a := range due {
		s.notifier.Notify(ctx, notification.Reminder(a, correlationID))
	}
	if len(due) > 0 {
		slog.Info("reminders dispatched",
			"count", len(due),
			"window_start", from.Format("2006-01-02 15:04"),
			"window_end", to.Format("2006-01-02 15:04"))
	}
	return len(due), nil
}
