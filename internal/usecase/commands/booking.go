package commands

import (
	"context"

	"appointment-scheduler/internal/domain/appointment"
	"appointment-scheduler/internal/domain/civil"
	"appointment-scheduler/internal/domain/notification"
	"appointment-scheduler/internal/domain/slot"
	"appointment-scheduler/internal/infra"
	"appointment-scheduler/internal/pkg/errs"
	"appointment-scheduler/internal/pkg/requestid"
	"appointment-scheduler/internal/usecase/queries"
	"appointment-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

// CreateBooking re-derives the slot from the provider's schedule and commits the
// appointment while holding the (provider, date) booking scope.
func (uc *appointmentCommandsImpl) CreateBooking(ctx context.Context, customerID uuid.UUID, req CreateBookingRequest) (*queries.AppointmentView, error) {
	svc, err := appointment.NewServiceMetadata(req.CustomerName, req.CustomerPhone, req.ServiceType, req.Notes)
	if err != nil {
		return nil, err
	}
	created, err := uc.book(ctx, customerID, req.ProviderID, req.Date, req.StartTime, svc)
	if err != nil {
		return nil, err
	}
	uc.notifier.Notify(ctx, notification.Booked(created, requestid.From(ctx)))
	return queries.AppointmentViewOf(created), nil
}

func (uc *appointmentCommandsImpl) book(
	ctx context.Context,
	customerID, providerID uuid.UUID,
	date civil.Date,
	start civil.TimeOfDay,
	svc appointment.ServiceMetadata,
) (*appointment.Appointment, error) {
	if customerID == uuid.Nil || providerID == uuid.Nil {
		return nil, appointment.ErrMissingParticipant
	}
	if !date.At(start).After(uc.clock.Wall()) {
		return nil, errs.Wrapf(errs.ErrPastAppointment, "%s %s", date, start)
	}

	var created *appointment.Appointment
	err := uc.uow.WithinProviderDay(ctx, providerID, date, func(ctx context.Context, tx shared.Tx) error {
		in, ok, err := shared.LoadSlotInput(ctx, tx.Reads(), providerID, date, uc.settings)
		if err != nil {
			return err
		}
		if !ok {
			return errs.Wrapf(ErrSlotNotOffered, "provider has no hours on %s", date)
		}

		candidate := civil.Span(start, in.Schedule.SlotMinutes)
		if hit, overlaps := slot.FirstOverlap(in.Booked, candidate); overlaps {
			return &ConflictError{Interval: hit}
		}
		if !slot.Offers(in, start) {
			return errs.Wrapf(ErrSlotNotOffered, "%s on %s", start, date)
		}

		a, err := appointment.NewAppointment(customerID, providerID, date, start, in.Schedule.SlotMinutes, svc, uc.clock.Now())
		if err != nil {
			return err
		}
		if err := tx.Appointments().Create(ctx, a); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return &ConflictError{Interval: candidate}
			}
			return err
		}
		created = a
		return nil
	})
	if err != nil {
		return nil, shared.Translate(err)
	}
	return created, nil
}
