package commands

//go:generate mockgen -source=appointment.go -destination=../../../tests/mock/commands/appointment.go -package=commandsmock

import (
	"context"
	"fmt"

	"appointment-scheduler/internal/domain/civil"
	"appointment-scheduler/internal/domain/user"
	"appointment-scheduler/internal/pkg/errs"
	"appointment-scheduler/internal/usecase/queries"
	"appointment-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrSlotNotOffered = errs.Kind(errs.ErrValidation, "start time is not an offered slot")

// ConflictError reports the booked interval a new booking would overlap.
// It matches errs.ErrConflict.
type ConflictError struct {
	Interval civil.Interval
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: overlaps booked appointment %s", errs.ErrConflict, e.Interval)
}

func (e *ConflictError) Is(target error) bool {
	return target == errs.ErrConflict
}

type CreateBookingRequest struct {
	ProviderID    uuid.UUID
	Date          civil.Date
	StartTime     civil.TimeOfDay
	CustomerName  string
	CustomerPhone string
	ServiceType   string
	Notes         string
}

type RescheduleRequest struct {
	Date      civil.Date
	StartTime civil.TimeOfDay
}

type AppointmentCommands interface {
	CreateBooking(ctx context.Context, customerID uuid.UUID, req CreateBookingRequest) (*queries.AppointmentView, error)
	Cancel(ctx context.Context, actor user.Actor, appointmentID uuid.UUID) (*queries.AppointmentView, error)
	Reschedule(ctx context.Context, actor user.Actor, appointmentID uuid.UUID, req RescheduleRequest) (*queries.AppointmentView, error)
}

type appointmentCommandsImpl struct {
	uow      shared.UnitOfWork
	notifier shared.Notifier
	policies shared.PolicyProvider
	clock    *shared.ScheduleClock
	settings shared.ScheduleSettings
}

func NewAppointmentCommands(
	uow shared.UnitOfWork,
	notifier shared.Notifier,
	policies shared.PolicyProvider,
	clk *shared.ScheduleClock,
	settings shared.ScheduleSettings,
) AppointmentCommands {
	return &appointmentCommandsImpl{
		uow:      uow,
		notifier: notifier,
		policies: policies,
		clock:    clk,
		settings: settings,
	}
}
