package readstore

import (
	"context"
	"log/slog"
	"time"

	"appointment-scheduler/internal/domain/appointment"
	"appointment-scheduler/internal/domain/availability"
	"appointment-scheduler/internal/domain/civil"
	"appointment-scheduler/internal/infra/db"

	"github.com/google/uuid"
)

// Reads serves the use-case read port from one connection or transaction.
type Reads struct {
	appointments *AppointmentReadStore
	schedules    *ScheduleReadStore
}

func NewReads(dbtx db.DBTX, logger *slog.Logger) *Reads {
	return &Reads{
		appointments: NewAppointmentReadStore(dbtx, logger),
		schedules:    NewScheduleReadStore(dbtx, logger),
	}
}

func (r *Reads) AppointmentByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	return r.appointments.FindByID(ctx, id)
}

func (r *Reads) BookedIntervals(ctx context.Context, providerID uuid.UUID, date civil.Date) ([]civil.Interval, error) {
	return r.appointments.BookedIntervals(ctx, providerID, date)
}

func (r *Reads) AppointmentsInRange(ctx context.Context, providerID uuid.UUID, from, to civil.Date) ([]*appointment.Appointment, error) {
	return r.appointments.FindInRange(ctx, providerID, from, to)
}

func (r *Reads) BookedStartingBetween(ctx context.Context, from, to time.Time) ([]*appointment.Appointment, error) {
	return r.appointments.FindBookedStartingBetween(ctx, from, to)
}

func (r *Reads) AvailabilityFor(ctx context.Context, providerID uuid.UUID, day time.Weekday) ([]*availability.Availability, error) {
	return r.schedules.AvailabilityFor(ctx, providerID, day)
}

func (r *Reads) ListAvailability(ctx context.Context, providerID uuid.UUID) ([]*availability.Availability, error) {
	return r.schedules.ListAvailability(ctx, providerID)
}

func (r *Reads) HolidaysOn(ctx context.Context, providerID uuid.UUID, date civil.Date) ([]*availability.Holiday, error) {
	return r.schedules.HolidaysBetween(ctx, providerID, date, date)
}

func (r *Reads) ListHolidays(ctx context.Context, providerID uuid.UUID, from, to civil.Date) ([]*availability.Holiday, error) {
	return r.schedules.HolidaysBetween(ctx, providerID, from, to)
}
