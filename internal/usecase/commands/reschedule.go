package commands

import (
	"context"

	"appointment-scheduler/internal/domain/notification"
	"appointment-scheduler/internal/domain/user"
	"appointment-scheduler/internal/pkg/errs"
	"appointment-scheduler/internal/pkg/requestid"
	"appointment-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
)

// Reschedule cancels the appointment under the full cancellation rules and then
// books the new slot for the same customer through the booking path. A failed
// rebook leaves the cancellation in place.
func (uc *appointmentCommandsImpl) Reschedule(ctx context.Context, actor user.Actor, appointmentID uuid.UUID, req RescheduleRequest) (*queries.AppointmentView, error) {
	if !req.Date.At(req.StartTime).After(uc.clock.Wall()) {
		return nil, errs.Wrapf(errs.ErrPastAppointment, "%s %s", req.Date, req.StartTime)
	}

	old, err := uc.cancel(ctx, actor, appointmentID)
	if err != nil {
		return nil, err
	}
	correlationID := requestid.From(ctx)
	uc.notifier.Notify(ctx, notification.Cancelled(old, correlationID))

	created, err := uc.book(ctx, old.CustomerID(), old.ProviderID(), req.Date, req.StartTime, old.Service())
	if err != nil {
		return nil, errs.Wrapf(err, "rebooking cancelled appointment %s", old.ID())
	}
	uc.notifier.Notify(ctx, notification.Booked(created, correlationID))
	return queries.AppointmentViewOf(created), nil
}
