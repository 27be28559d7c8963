//go:build unit

package appointment_test

import (
	"strings"
	"testing"
	"time"

	"appointment-scheduler/internal/domain/appointment"
	"appointment-scheduler/internal/domain/civil"
	"appointment-scheduler/internal/pkg/errs"
	"appointment-scheduler/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.AppointmentBuilder)
	errIs  error
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := builder.NewAppointmentBuilder().With(tc.mutate).BuildDomain()
			if tc.errIs != nil {
				require.Error(t, err)
				assert.True(t, errs.Is(err, tc.errIs), "got %v", err)
				assert.Nil(t, actual)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, actual)
		})
	}
}

func TestAppointment(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b := builder.NewAppointmentBuilder()
		actual, err := b.BuildDomain()
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, appointment.StatusBooked, actual.Status())
		assert.True(t, actual.IsBooked())
		assert.Equal(t, "09:00", actual.StartTime().String())
		assert.Equal(t, "09:30", actual.EndTime().String())
		assert.Equal(t, civil.Interval{Start: 540, End: 570}, actual.Interval())
		assert.Equal(t, b.CreatedAt, actual.CreatedAt())
		assert.Equal(t, time.Date(2025, time.August, 4, 9, 0, 0, 0, time.UTC), actual.StartsAt())
		assert.Equal(t, "Aisha Al Balushi", actual.Service().CustomerName)
	})

	t.Run("validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "missing customer",
				mutate: func(b *builder.AppointmentBuilder) { b.CustomerID = uuid.Nil },
				errIs:  appointment.ErrMissingParticipant,
			},
			{
				name:   "missing provider",
				mutate: func(b *builder.AppointmentBuilder) { b.ProviderID = uuid.Nil },
				errIs:  appointment.ErrMissingParticipant,
			},
			{
				name:   "zero duration",
				mutate: func(b *builder.AppointmentBuilder) { b.DurationMinutes = 0 },
				errIs:  appointment.ErrInvalidDuration,
			},
			{
				name: "crosses midnight",
				mutate: func(b *builder.AppointmentBuilder) {
					b.Start = civil.MustTimeOfDay(23, 45)
					b.DurationMinutes = 30
				},
				errIs: appointment.ErrCrossesMidnight,
			},
			{
				name: "ends one minute before midnight",
				mutate: func(b *builder.AppointmentBuilder) {
					b.Start = civil.MustTimeOfDay(23, 29)
					b.DurationMinutes = 30
				},
			},
			{
				name:   "blank customer name",
				mutate: func(b *builder.AppointmentBuilder) { b.CustomerName = "   " },
				errIs:  appointment.ErrCustomerNameRequired,
			},
			{
				name:   "notes too long",
				mutate: func(b *builder.AppointmentBuilder) { b.Notes = strings.Repeat("n", appointment.MaxNotesLength+1) },
				errIs:  appointment.ErrServiceFieldTooLong,
			},
			{
				name:   "notes at limit",
				mutate: func(b *builder.AppointmentBuilder) { b.Notes = strings.Repeat("n", appointment.MaxNotesLength) },
			},
		})
	})

	t.Run("validation errors are validation kind", func(t *testing.T) {
		_, err := builder.NewAppointmentBuilder().With(func(b *builder.AppointmentBuilder) { b.DurationMinutes = -5 }).BuildDomain()
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})
}

func TestAppointment_Cancel(t *testing.T) {
	now := time.Date(2025, time.August, 2, 10, 0, 0, 0, time.UTC)

	t.Run("booked to cancelled", func(t *testing.T) {
		a := builder.NewAppointmentBuilder().BuildReconstructed()
		require.NoError(t, a.Cancel(now))

		assert.Equal(t, appointment.StatusCancelled, a.Status())
		assert.True(t, a.IsCancelled())
		assert.Equal(t, now, a.UpdatedAt())
	})

	t.Run("already cancelled is idempotent", func(t *testing.T) {
		a := builder.NewAppointmentBuilder().BuildReconstructed()
		require.NoError(t, a.Cancel(now))

		for i := 0; i < 3; i++ {
			err := a.Cancel(now.Add(time.Hour))
			assert.True(t, errs.Is(err, errs.ErrAlreadyCancelled))
		}
		assert.Equal(t, now, a.UpdatedAt(), "rejected cancels must not mutate")
	})

	t.Run("completed cannot be cancelled", func(t *testing.T) {
		a := builder.NewAppointmentBuilder().With(func(b *builder.AppointmentBuilder) {
			b.Status = appointment.StatusCompleted
		}).BuildReconstructed()

		err := a.Cancel(now)
		assert.True(t, errs.Is(err, appointment.ErrNotCancellable))
		assert.True(t, errs.Is(err, errs.ErrConflict))
		assert.Equal(t, appointment.StatusCompleted, a.Status())
	})
}

func TestParseStatus(t *testing.T) {
	s, err := appointment.ParseStatus("CANCELLED")
	require.NoError(t, err)
	assert.Equal(t, appointment.StatusCancelled, s)

	_, err = appointment.ParseStatus("cancelled")
	assert.True(t, errs.Is(err, appointment.ErrInvalidStatus))
}
