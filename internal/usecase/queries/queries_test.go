//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"appointment-scheduler/internal/domain/appointment"
	"appointment-scheduler/internal/domain/calendar"
	"appointment-scheduler/internal/domain/civil"
	"appointment-scheduler/internal/domain/user"
	"appointment-scheduler/internal/pkg/errs"
	"appointment-scheduler/internal/usecase/queries"
	"appointment-scheduler/internal/usecase/shared"
	"appointment-scheduler/tests/common/builder"
	"appointment-scheduler/tests/common/scenario"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func store(t *testing.T, h *scenario.Harness, a *appointment.Appointment) {
	t.Helper()
	require.NoError(t, h.UoW.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		return tx.Appointments().Create(ctx, a)
	}))
}

func appointmentAt(providerID uuid.UUID, date civil.Date, start string, status appointment.Status) *appointment.Appointment {
	return builder.NewAppointmentBuilder().With(func(b *builder.AppointmentBuilder) {
		b.ProviderID = providerID
		b.Date = date
		b.Start, _ = civil.ParseTimeOfDay(start)
		b.Status = status
	}).BuildReconstructed()
}

func TestGenerateSlots(t *testing.T) {
	ctx := context.Background()

	t.Run("open morning", func(t *testing.T) {
		h := scenario.New(t)
		providerID := uuid.New()
		h.Open(t, providerID, time.Monday, "09:00", "12:00", 30)

		got, err := queries.NewSlotQueries(h.UoW, h.Schedule, h.Settings).GenerateSlots(ctx, providerID, scenario.Monday)
		require.NoError(t, err)
		assert.Equal(t, scenario.Times(t, "09:00", "09:30", "10:00", "10:30", "11:00", "11:30"), got.Slots)
		assert.Equal(t, 30, got.SlotMinutes)
		assert.False(t, got.DefaultSchedule)
	})

	t.Run("break removes the overlapping start", func(t *testing.T) {
		h := scenario.New(t)
		providerID := uuid.New()
		h.Open(t, providerID, time.Monday, "09:00", "12:00", 30, scenario.Break(t, "10:00", "10:30"))

		got, err := queries.NewSlotQueries(h.UoW, h.Schedule, h.Settings).GenerateSlots(ctx, providerID, scenario.Monday)
		require.NoError(t, err)
		assert.Equal(t, scenario.Times(t, "09:00", "09:30", "10:30", "11:00", "11:30"), got.Slots)
	})

	t.Run("booked and cancelled appointments", func(t *testing.T) {
		h := scenario.New(t)
		providerID := uuid.New()
		h.Open(t, providerID, time.Monday, "09:00", "12:00", 30)
		store(t, h, appointmentAt(providerID, scenario.Monday, "09:30", appointment.StatusBooked))
		store(t, h, appointmentAt(providerID, scenario.Monday, "11:00", appointment.StatusCancelled))

		got, err := queries.NewSlotQueries(h.UoW, h.Schedule, h.Settings).GenerateSlots(ctx, providerID, scenario.Monday)
		require.NoError(t, err)
		assert.Equal(t, scenario.Times(t, "09:00", "10:00", "10:30", "11:00", "11:30"), got.Slots)
	})

	t.Run("elapsed starts are hidden", func(t *testing.T) {
		h := scenario.New(t)
		providerID := uuid.New()
		h.Open(t, providerID, time.Monday, "09:00", "12:00", 30)
		h.At(t, scenario.Monday, "10:15")

		got, err := queries.NewSlotQueries(h.UoW, h.Schedule, h.Settings).GenerateSlots(ctx, providerID, scenario.Monday)
		require.NoError(t, err)
		assert.Equal(t, scenario.Times(t, "10:30", "11:00", "11:30"), got.Slots)
	})

	t.Run("full-day holiday and closed weekend are empty", func(t *testing.T) {
		h := scenario.New(t)
		providerID := uuid.New()
		h.Open(t, providerID, time.Monday, "09:00", "12:00", 30)
		h.Close(t, providerID, scenario.Monday, "", "")
		uc := queries.NewSlotQueries(h.UoW, h.Schedule, h.Settings)

		for _, date := range []civil.Date{scenario.Monday, scenario.Monday.AddDays(5)} {
			got, err := uc.GenerateSlots(ctx, providerID, date)
			require.NoError(t, err)
			assert.NotNil(t, got.Slots)
			assert.Empty(t, got.Slots, date.String())
		}
	})

	t.Run("default hours for an unconfigured weekday", func(t *testing.T) {
		h := scenario.New(t)
		got, err := queries.NewSlotQueries(h.UoW, h.Schedule, h.Settings).GenerateSlots(ctx, uuid.New(), scenario.Monday)
		require.NoError(t, err)
		assert.True(t, got.DefaultSchedule)
		require.Len(t, got.Slots, 16)
		assert.Equal(t, "09:00", got.Slots[0].String())
		assert.Equal(t, "16:30", got.Slots[15].String())
	})
}

func TestGetAppointment(t *testing.T) {
	ctx := context.Background()
	h := scenario.New(t)
	uc := queries.NewAppointmentQueries(h.UoW)
	a := builder.NewAppointmentBuilder().BuildReconstructed()
	store(t, h, a)

	tests := []struct {
		name    string
		actor   user.Actor
		wantErr error
	}{
		{name: "customer", actor: user.NewActor(a.CustomerID(), user.RoleCustomer)},
		{name: "provider", actor: user.NewActor(a.ProviderID(), user.RoleProvider)},
		{name: "admin", actor: user.NewActor(uuid.New(), user.RoleAdmin)},
		{name: "stranger", actor: user.NewActor(uuid.New(), user.RoleCustomer), wantErr: errs.ErrUnauthorized},
		{name: "other provider", actor: user.NewActor(uuid.New(), user.RoleProvider), wantErr: errs.ErrUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := uc.GetByID(ctx, tt.actor, a.ID())
			if tt.wantErr != nil {
				assert.True(t, errs.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, a.ID(), got.ID)
			assert.Equal(t, "Aisha Al Balushi", got.CustomerName)
		})
	}

	_, err := uc.GetByID(ctx, user.NewActor(uuid.New(), user.RoleAdmin), uuid.New())
	assert.True(t, errs.Is(err, errs.ErrNotFound))
}

func TestCalendarAggregate(t *testing.T) {
	ctx := context.Background()
	h := scenario.New(t)
	uc := queries.NewCalendarQueries(h.UoW, h.Config)
	providerID := uuid.New()
	provider := user.NewActor(providerID, user.RoleProvider)
	wednesday := scenario.Monday.AddDays(2)
	sunday := scenario.Monday.AddDays(6)

	store(t, h, appointmentAt(providerID, scenario.Monday, "09:00", appointment.StatusBooked))
	store(t, h, appointmentAt(providerID, wednesday, "10:00", appointment.StatusBooked))
	store(t, h, appointmentAt(providerID, sunday, "10:00", appointment.StatusBooked))
	store(t, h, appointmentAt(providerID, wednesday, "11:00", appointment.StatusCancelled))
	store(t, h, appointmentAt(uuid.New(), wednesday, "11:00", appointment.StatusBooked))

	week := func(locale string, includeCancelled bool) queries.CalendarRequest {
		return queries.CalendarRequest{
			ProviderID:       providerID,
			From:             scenario.Monday,
			To:               sunday,
			Granularity:      "week",
			IncludeCancelled: includeCancelled,
			Locale:           locale,
		}
	}

	t.Run("default locale keeps the ISO week together", func(t *testing.T) {
		report, err := uc.Aggregate(ctx, provider, week("", false))
		require.NoError(t, err)
		assert.Equal(t, calendar.Week, report.Granularity)
		assert.Equal(t, 3, report.Total)
		require.Len(t, report.Buckets, 1)
		b := report.Buckets[0]
		assert.Equal(t, "2025-W32", b.Key)
		assert.Equal(t, scenario.Monday, b.Start)
		assert.Equal(t, sunday, b.End)
	})

	t.Run("cancelled rows on request", func(t *testing.T) {
		report, err := uc.Aggregate(ctx, provider, week("", true))
		require.NoError(t, err)
		assert.Equal(t, 4, report.Total)
	})

	t.Run("US locale starts weeks on Sunday", func(t *testing.T) {
		report, err := uc.Aggregate(ctx, provider, week("en_US", false))
		require.NoError(t, err)
		require.Len(t, report.Buckets, 2)
		assert.Equal(t, 2, report.Buckets[0].Total)
		assert.Equal(t, sunday, report.Buckets[1].Start)
		assert.Equal(t, 1, report.Buckets[1].Total)
	})

	t.Run("rejected requests", func(t *testing.T) {
		_, err := uc.Aggregate(ctx, user.NewActor(uuid.New(), user.RoleProvider), week("", false))
		assert.True(t, errs.Is(err, errs.ErrUnauthorized))

		_, err = uc.Aggregate(ctx, provider, week("xx-XX", false))
		assert.True(t, errs.Is(err, calendar.ErrUnknownLocale))

		req := week("", false)
		req.Granularity = "quarter"
		_, err = uc.Aggregate(ctx, provider, req)
		assert.True(t, errs.Is(err, calendar.ErrInvalidGranularity))

		req = week("", false)
		req.From, req.To = req.To, req.From
		_, err = uc.Aggregate(ctx, provider, req)
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})
}

func TestListHolidays_InvalidRange(t *testing.T) {
	h := scenario.New(t)
	_, err := queries.NewScheduleQueries(h.UoW).ListHolidays(context.Background(), uuid.New(), scenario.Monday, scenario.Monday.AddDays(-1))
	assert.True(t, errs.Is(err, queries.ErrInvalidHolidayRange))
}
