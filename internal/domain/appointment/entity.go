package appointment

import (
	"time"

	"appointment-scheduler/internal/domain/civil"
	"appointment-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus      = errs.Kind(errs.ErrValidation, "invalid appointment status")
	ErrInvalidDuration    = errs.Kind(errs.ErrValidation, "appointment duration must be positive")
	ErrCrossesMidnight    = errs.Kind(errs.ErrValidation, "appointment must end on the day it starts")
	ErrNotCancellable     = errs.Kind(errs.ErrConflict, "only booked appointments can be cancelled")
	ErrMissingParticipant = errs.Kind(errs.ErrValidation, "customer and provider are required")
)

// Appointment is one reservation of [start, end) on a provider's date.
// Everything but the status is fixed at creation.
type Appointment struct {
	id         uuid.UUID
	customerID uuid.UUID
	providerID uuid.UUID
	date       civil.Date
	start      civil.TimeOfDay
	end        civil.TimeOfDay
	status     Status
	service    ServiceMetadata
	createdAt  time.Time
	updatedAt  time.Time
}

func NewAppointment(
	customerID, providerID uuid.UUID,
	date civil.Date,
	start civil.TimeOfDay,
	durationMinutes int,
	service ServiceMetadata,
	now time.Time,
) (*Appointment, error) {
	if customerID == uuid.Nil || providerID == uuid.Nil {
		return nil, ErrMissingParticipant
	}
	if durationMinutes < 1 {
		return nil, ErrInvalidDuration
	}
	end := start.Minutes() + durationMinutes
	if end >= civil.MinutesPerDay {
		return nil, errs.Wrapf(ErrCrossesMidnight, "%s + %dm", start, durationMinutes)
	}

	return &Appointment{
		id:         uuid.New(),
		customerID: customerID,
		providerID: providerID,
		date:       date,
		start:      start,
		end:        civil.TimeOfDay(end),
		status:     StatusBooked,
		service:    service,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructAppointment(
	id, customerID, providerID uuid.UUID,
	date civil.Date,
	start, end civil.TimeOfDay,
	status Status,
	service ServiceMetadata,
	createdAt, updatedAt time.Time,
) *Appointment {
	return &Appointment{
		id:         id,
		customerID: customerID,
		providerID: providerID,
		date:       date,
		start:      start,
		end:        end,
		status:     status,
		service:    service,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// Cancel is the only transition this package performs: Booked -> Cancelled.
func (a *Appointment) Cancel(now time.Time) error {
	switch a.status {
	case StatusBooked:
		a.status = StatusCancelled
		a.updatedAt = now
		return nil
	case StatusCancelled:
		return errs.Wrapf(errs.ErrAlreadyCancelled, "appointment %s", a.id)
	default:
		return errs.Wrapf(ErrNotCancellable, "appointment %s is %s", a.id, a.status)
	}
}

func (a *Appointment) IsBooked() bool    { return a.status == StatusBooked }
func (a *Appointment) IsCancelled() bool { return a.status == StatusCancelled }

func (a *Appointment) Interval() civil.Interval {
	return civil.Interval{Start: a.start.Minutes(), End: a.end.Minutes()}
}

// StartsAt is the naive start instant, comparable with civil.WallClock readings.
func (a *Appointment) StartsAt() time.Time {
	return a.date.At(a.start)
}

func (a *Appointment) ID() uuid.UUID              { return a.id }
func (a *Appointment) CustomerID() uuid.UUID      { return a.customerID }
func (a *Appointment) ProviderID() uuid.UUID      { return a.providerID }
func (a *Appointment) Date() civil.Date           { return a.date }
func (a *Appointment) StartTime() civil.TimeOfDay { return a.start }
func (a *Appointment) EndTime() civil.TimeOfDay   { return a.end }
func (a *Appointment) Status() Status             { return a.status }
func (a *Appointment) Service() ServiceMetadata   { return a.service }
func (a *Appointment) CreatedAt() time.Time       { return a.createdAt }
func (a *Appointment) UpdatedAt() time.Time       { return a.updatedAt }
