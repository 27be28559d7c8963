package shared

import (
	"context"
	"time"

	"appointment-scheduler/internal/domain/appointment"
	"appointment-scheduler/internal/domain/availability"
	"appointment-scheduler/internal/domain/civil"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: read-committed transaction for writes, retried on serialization failures
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinProviderDay: like Within, but holds the exclusive booking scope of
	// (providerID, date) from before fn runs until commit. Waiting for the scope
	// is bounded; running out of time surfaces as errs.ErrTryLater.
	WithinProviderDay(ctx context.Context, providerID uuid.UUID, date civil.Date, fn func(ctx context.Context, tx Tx) error) error
	// Reads: lock-free reads outside any transaction
	Reads() Reads
}

type Tx interface {
	Appointments() AppointmentRepository
	Availability() AvailabilityRepository
	Holidays() HolidayRepository
	Reads() Reads
}

type AppointmentRepository interface {
	Create(ctx context.Context, a *appointment.Appointment) error
	// FindForUpdate loads the appointment and keeps other writers off it until the transaction ends.
	FindForUpdate(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error)
	UpdateStatus(ctx context.Context, a *appointment.Appointment) error
}

type AvailabilityRepository interface {
	Create(ctx context.Context, a *availability.Availability) error
	FindByID(ctx context.Context, id uuid.UUID) (*availability.Availability, error)
	SetActive(ctx context.Context, a *availability.Availability) error
}

type HolidayRepository interface {
	Create(ctx context.Context, h *availability.Holiday) error
	FindByID(ctx context.Context, id uuid.UUID) (*availability.Holiday, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Reads interface {
	AppointmentByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error)
	// BookedIntervals returns the intervals of Booked appointments on the provider's date.
	BookedIntervals(ctx context.Context, providerID uuid.UUID, date civil.Date) ([]civil.Interval, error)
	AppointmentsInRange(ctx context.Context, providerID uuid.UUID, from, to civil.Date) ([]*appointment.Appointment, error)
	// BookedStartingBetween returns Booked appointments whose naive start lies in [from, to).
	BookedStartingBetween(ctx context.Context, from, to time.Time) ([]*appointment.Appointment, error)

	AvailabilityFor(ctx context.Context, providerID uuid.UUID, day time.Weekday) ([]*availability.Availability, error)
	ListAvailability(ctx context.Context, providerID uuid.UUID) ([]*availability.Availability, error)
	HolidaysOn(ctx context.Context, providerID uuid.UUID, date civil.Date) ([]*availability.Holiday, error)
	ListHolidays(ctx context.Context, providerID uuid.UUID, from, to civil.Date) ([]*availability.Holiday, error)
}
