//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"appointment-scheduler/internal/domain/notification"
	"appointment-scheduler/internal/pkg/config"
	"appointment-scheduler/internal/usecase/commands"
	"appointment-scheduler/tests/common/scenario"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReminderSweep(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, func(c *config.Config) {
		c.Reminder.Lead = 24 * time.Hour
		c.Reminder.Interval = time.Hour
	})
	sweep := commands.NewReminderSweep(f.h.UoW, f.h.Notifier, f.h.Schedule, f.h.Config)
	assert.Equal(t, time.Hour, sweep.Interval())

	early := f.book(t, "09:00")
	f.book(t, "10:00")
	cancelled := f.book(t, "09:30")
	_, err := f.uc.Cancel(ctx, f.customer, cancelled.ID)
	require.NoError(t, err)

	// Window is Monday [09:00, 10:00).
	f.h.At(t, scenario.Monday.AddDays(-1), "09:00")
	n, err := sweep.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var reminders []notification.Attempt
	for _, a := range f.h.Notifier.Attempts() {
		if a.EventType == notification.EventReminder {
			reminders = append(reminders, a)
		}
	}
	require.Len(t, reminders, 1)
	assert.Equal(t, early.ID, reminders[0].AppointmentID)
	assert.Equal(t, f.customer.ID, reminders[0].RecipientID)
	assert.Contains(t, reminders[0].CorrelationID, "reminder-")

	// The next window picks up the 10:00 appointment only.
	f.h.Clock.Add(time.Hour)
	n, err = sweep.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
