//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"appointment-scheduler/internal/domain/appointment"
	"appointment-scheduler/internal/domain/cancellation"
	"appointment-scheduler/internal/domain/civil"
	"appointment-scheduler/internal/domain/notification"
	"appointment-scheduler/internal/domain/user"
	"appointment-scheduler/internal/pkg/config"
	"appointment-scheduler/internal/pkg/errs"
	"appointment-scheduler/internal/usecase/commands"
	"appointment-scheduler/internal/usecase/queries"
	"appointment-scheduler/tests/common/scenario"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	h          *scenario.Harness
	uc         commands.AppointmentCommands
	slots      queries.SlotQueries
	providerID uuid.UUID
	customer   user.Actor
}

// newFixture opens the provider on Mondays 09:00-12:00 with 30-minute slots.
func newFixture(t *testing.T, mutate ...func(*config.Config)) *fixture {
	t.Helper()
	h := scenario.New(t, mutate...)
	f := &fixture{
		h:          h,
		uc:         commands.NewAppointmentCommands(h.UoW, h.Notifier, h.Policies, h.Schedule, h.Settings),
		slots:      queries.NewSlotQueries(h.UoW, h.Schedule, h.Settings),
		providerID: uuid.New(),
		customer:   user.NewActor(uuid.New(), user.RoleCustomer),
	}
	h.Open(t, f.providerID, time.Monday, "09:00", "12:00", 30)
	return f
}

func (f *fixture) request(t *testing.T, date civil.Date, start string) commands.CreateBookingRequest {
	t.Helper()
	return commands.CreateBookingRequest{
		ProviderID:    f.providerID,
		Date:          date,
		StartTime:     scenario.Times(t, start)[0],
		CustomerName:  "Aisha Al Balushi",
		CustomerPhone: "+968 9000 0000",
		ServiceType:   "consultation",
	}
}

func (f *fixture) book(t *testing.T, start string) *queries.AppointmentView {
	t.Helper()
	view, err := f.uc.CreateBooking(context.Background(), f.customer.ID, f.request(t, scenario.Monday, start))
	require.NoError(t, err)
	return view
}

func (f *fixture) freeSlots(t *testing.T) []civil.TimeOfDay {
	t.Helper()
	view, err := f.slots.GenerateSlots(context.Background(), f.providerID, scenario.Monday)
	require.NoError(t, err)
	return view.Slots
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("booked slot disappears and a second booking conflicts", func(t *testing.T) {
		f := newFixture(t)
		view := f.book(t, "09:00")
		assert.Equal(t, appointment.StatusBooked, view.Status)
		assert.Equal(t, "09:30", view.EndTime.String())
		assert.Equal(t, f.customer.ID, view.CustomerID)
		assert.Equal(t, scenario.Times(t, "09:30", "10:00", "10:30", "11:00", "11:30"), f.freeSlots(t))

		_, err := f.uc.CreateBooking(ctx, uuid.New(), f.request(t, scenario.Monday, "09:00"))
		require.True(t, errs.Is(err, errs.ErrConflict))
		var conflict *commands.ConflictError
		require.True(t, errors.As(err, &conflict))
		assert.Equal(t, "09:00-09:30", conflict.Interval.String())

		assert.Equal(t, []notification.EventType{notification.EventBooked}, f.h.Notifier.Events())
	})

	t.Run("off-grid start overlapping a booking reports the conflict", func(t *testing.T) {
		f := newFixture(t)
		f.book(t, "09:00")
		_, err := f.uc.CreateBooking(ctx, uuid.New(), f.request(t, scenario.Monday, "09:15"))
		assert.True(t, errs.Is(err, errs.ErrConflict))
	})

	t.Run("start that is not an offered slot", func(t *testing.T) {
		f := newFixture(t)
		for _, start := range []string{"09:10", "08:30", "12:00"} {
			_, err := f.uc.CreateBooking(ctx, f.customer.ID, f.request(t, scenario.Monday, start))
			assert.True(t, errs.Is(err, commands.ErrSlotNotOffered), start)
			assert.True(t, errs.Is(err, errs.ErrValidation), start)
		}
	})

	t.Run("break and holiday block the slot", func(t *testing.T) {
		f := newFixture(t)
		f.h.Open(t, f.providerID, time.Tuesday, "09:00", "12:00", 30, scenario.Break(t, "10:00", "10:30"))
		tuesday := scenario.Monday.AddDays(1)
		_, err := f.uc.CreateBooking(ctx, f.customer.ID, f.request(t, tuesday, "10:00"))
		assert.True(t, errs.Is(err, commands.ErrSlotNotOffered))

		f.h.Close(t, f.providerID, scenario.Monday, "", "")
		_, err = f.uc.CreateBooking(ctx, f.customer.ID, f.request(t, scenario.Monday, "09:00"))
		assert.True(t, errs.Is(err, commands.ErrSlotNotOffered))
	})

	t.Run("elapsed start is rejected", func(t *testing.T) {
		f := newFixture(t)
		f.h.At(t, scenario.Monday, "10:00")
		for _, start := range []string{"09:30", "10:00"} {
			_, err := f.uc.CreateBooking(ctx, f.customer.ID, f.request(t, scenario.Monday, start))
			assert.True(t, errs.Is(err, errs.ErrPastAppointment), start)
		}
		_, err := f.uc.CreateBooking(ctx, f.customer.ID, f.request(t, scenario.Monday, "10:30"))
		assert.NoError(t, err)
	})

	t.Run("weekday without availability uses default hours", func(t *testing.T) {
		f := newFixture(t)
		wednesday := scenario.Monday.AddDays(2)
		view, err := f.uc.CreateBooking(ctx, f.customer.ID, f.request(t, wednesday, "16:30"))
		require.NoError(t, err)
		assert.Equal(t, "17:00", view.EndTime.String())

		saturday := scenario.Monday.AddDays(5)
		_, err = f.uc.CreateBooking(ctx, f.customer.ID, f.request(t, saturday, "10:00"))
		assert.True(t, errs.Is(err, commands.ErrSlotNotOffered))
	})

	t.Run("default hours can be switched off", func(t *testing.T) {
		f := newFixture(t, func(c *config.Config) { c.Booking.DefaultHoursEnabled = false })
		_, err := f.uc.CreateBooking(ctx, f.customer.ID, f.request(t, scenario.Monday.AddDays(2), "10:00"))
		assert.True(t, errs.Is(err, commands.ErrSlotNotOffered))
	})

	t.Run("missing customer and invalid metadata", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.CreateBooking(ctx, uuid.Nil, f.request(t, scenario.Monday, "09:00"))
		assert.True(t, errs.Is(err, appointment.ErrMissingParticipant))

		req := f.request(t, scenario.Monday, "09:00")
		req.CustomerName = "  "
		_, err = f.uc.CreateBooking(ctx, f.customer.ID, req)
		assert.True(t, errs.Is(err, appointment.ErrCustomerNameRequired))
		assert.Empty(t, f.h.Notifier.Events())
	})
}

func TestCreateBooking_Concurrent(t *testing.T) {
	f := newFixture(t)
	const n = 16

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		booked    int
		conflicts int
		others    []error
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.CreateBooking(context.Background(), uuid.New(), f.request(t, scenario.Monday, "10:00"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				booked++
			case errs.Is(err, errs.ErrConflict):
				conflicts++
			default:
				others = append(others, err)
			}
		}()
	}
	wg.Wait()

	assert.Empty(t, others)
	assert.Equal(t, 1, booked)
	assert.Equal(t, n-1, conflicts)
	assert.NotContains(t, f.freeSlots(t), scenario.Times(t, "10:00")[0])
}

func TestCancel(t *testing.T) {
	ctx := context.Background()
	sunday := scenario.Monday.AddDays(-1)

	t.Run("customer cancels and the slot comes back", func(t *testing.T) {
		f := newFixture(t)
		view := f.book(t, "09:00")

		cancelled, err := f.uc.Cancel(ctx, f.customer, view.ID)
		require.NoError(t, err)
		assert.Equal(t, appointment.StatusCancelled, cancelled.Status)
		assert.Contains(t, f.freeSlots(t), scenario.Times(t, "09:00")[0])
		assert.Equal(t, []notification.EventType{notification.EventBooked, notification.EventCancelled}, f.h.Notifier.Events())

		_, err = f.uc.Cancel(ctx, f.customer, view.ID)
		assert.True(t, errs.Is(err, errs.ErrAlreadyCancelled))
	})

	t.Run("unknown appointment", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.Cancel(ctx, f.customer, uuid.New())
		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})

	t.Run("another customer may not cancel", func(t *testing.T) {
		f := newFixture(t)
		view := f.book(t, "09:00")
		_, err := f.uc.Cancel(ctx, user.NewActor(uuid.New(), user.RoleCustomer), view.ID)
		assert.True(t, errs.Is(err, errs.ErrUnauthorized))

		_, err = f.uc.Cancel(ctx, user.NewActor(uuid.New(), user.RoleProvider), view.ID)
		assert.True(t, errs.Is(err, errs.ErrUnauthorized))
	})

	t.Run("notice window with grace", func(t *testing.T) {
		tests := []struct {
			name    string
			now     string
			wantErr error
		}{
			{name: "23h50 before start", now: "09:10"},
			{name: "exactly at the cutoff", now: "09:15"},
			{name: "23h40 before start", now: "09:20", wantErr: errs.ErrPolicyViolation},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newFixture(t)
				view := f.book(t, "09:00")
				f.h.At(t, sunday, tt.now)

				_, err := f.uc.Cancel(ctx, f.customer, view.ID)
				if tt.wantErr == nil {
					assert.NoError(t, err)
					return
				}
				assert.True(t, errs.Is(err, tt.wantErr))
				var violation *cancellation.PolicyViolationError
				require.True(t, errors.As(err, &violation))
				assert.Equal(t, 24, violation.LimitHours)
				assert.Equal(t, 15, violation.GraceMinutes)
				assert.Equal(t, 23*60+40, violation.MinutesUntilStart)
			})
		}
	})

	t.Run("provider bypasses the window but not the start", func(t *testing.T) {
		f := newFixture(t)
		provider := user.NewActor(f.providerID, user.RoleProvider)
		first := f.book(t, "09:00")
		second := f.book(t, "11:00")

		f.h.At(t, scenario.Monday, "08:00")
		_, err := f.uc.Cancel(ctx, provider, first.ID)
		assert.NoError(t, err)

		f.h.At(t, scenario.Monday, "11:00")
		_, err = f.uc.Cancel(ctx, user.NewActor(uuid.New(), user.RoleAdmin), second.ID)
		assert.True(t, errs.Is(err, errs.ErrTooLateToCancel))
	})

	t.Run("provider specific policy", func(t *testing.T) {
		f := newFixture(t)
		view := f.book(t, "09:00")
		f.h.Policies.Set(f.providerID, cancellation.Policy{LimitHours: 1})
		f.h.At(t, scenario.Monday, "07:30")

		_, err := f.uc.Cancel(ctx, f.customer, view.ID)
		assert.NoError(t, err)
	})

	t.Run("policy lookup failure falls back to the default", func(t *testing.T) {
		f := newFixture(t)
		view := f.book(t, "09:00")
		f.h.Policies.Set(f.providerID, cancellation.Policy{LimitHours: 1})
		f.h.Policies.Err = assert.AnError
		f.h.At(t, sunday, "09:20")

		_, err := f.uc.Cancel(ctx, f.customer, view.ID)
		assert.True(t, errs.Is(err, errs.ErrPolicyViolation))
	})
}

func TestCancel_Concurrent(t *testing.T) {
	f := newFixture(t)
	view := f.book(t, "09:00")
	const n = 8

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		cancelled int
		already   int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Cancel(context.Background(), f.customer, view.ID)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				cancelled++
			} else if errs.Is(err, errs.ErrAlreadyCancelled) {
				already++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, cancelled)
	assert.Equal(t, n-1, already)
}

func TestReschedule(t *testing.T) {
	ctx := context.Background()

	t.Run("moves the booking to the new slot", func(t *testing.T) {
		f := newFixture(t)
		old := f.book(t, "09:00")

		moved, err := f.uc.Reschedule(ctx, f.customer, old.ID, commands.RescheduleRequest{
			Date:      scenario.Monday,
			StartTime: scenario.Times(t, "10:30")[0],
		})
		require.NoError(t, err)
		assert.NotEqual(t, old.ID, moved.ID)
		assert.Equal(t, old.CustomerID, moved.CustomerID)
		assert.Equal(t, old.ServiceType, moved.ServiceType)
		assert.Equal(t, "10:30", moved.StartTime.String())

		assert.Equal(t, scenario.Times(t, "09:00", "09:30", "10:00", "11:00", "11:30"), f.freeSlots(t))
		assert.Equal(t, []notification.EventType{
			notification.EventBooked, notification.EventCancelled, notification.EventBooked,
		}, f.h.Notifier.Events())
	})

	t.Run("new slot in the past leaves the booking untouched", func(t *testing.T) {
		f := newFixture(t)
		old := f.book(t, "11:00")
		f.h.At(t, scenario.Monday, "08:00")

		_, err := f.uc.Reschedule(ctx, user.NewActor(f.providerID, user.RoleProvider), old.ID, commands.RescheduleRequest{
			Date:      scenario.Monday,
			StartTime: scenario.Times(t, "07:30")[0],
		})
		assert.True(t, errs.Is(err, errs.ErrPastAppointment))
		assert.NotContains(t, f.freeSlots(t), scenario.Times(t, "11:00")[0])
	})

	t.Run("taken target keeps the cancellation", func(t *testing.T) {
		f := newFixture(t)
		old := f.book(t, "09:00")
		f.book(t, "10:00")

		_, err := f.uc.Reschedule(ctx, f.customer, old.ID, commands.RescheduleRequest{
			Date:      scenario.Monday,
			StartTime: scenario.Times(t, "10:00")[0],
		})
		assert.True(t, errs.Is(err, errs.ErrConflict))
		assert.Contains(t, f.freeSlots(t), scenario.Times(t, "09:00")[0])
	})

	t.Run("cancellation rules still apply", func(t *testing.T) {
		f := newFixture(t)
		old := f.book(t, "09:00")
		_, err := f.uc.Reschedule(ctx, user.NewActor(uuid.New(), user.RoleCustomer), old.ID, commands.RescheduleRequest{
			Date:      scenario.Monday,
			StartTime: scenario.Times(t, "10:00")[0],
		})
		assert.True(t, errs.Is(err, errs.ErrUnauthorized))
		assert.Equal(t, []notification.EventType{notification.EventBooked}, f.h.Notifier.Events())
	})
}
