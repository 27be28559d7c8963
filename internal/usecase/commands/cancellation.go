package commands

import (
	"context"
	"log/slog"

	"appointment-scheduler/internal/domain/appointment"
	"appointment-scheduler/internal/domain/cancellation"
	"appointment-scheduler/internal/domain/notification"
	"appointment-scheduler/internal/domain/user"
	"appointment-scheduler/internal/pkg/requestid"
	"appointment-scheduler/internal/usecase/queries"
	"appointment-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

// Cancel moves a Booked appointment to Cancelled. Admins and the owning provider
// bypass the ownership and notice checks, never the past-start check.
func (uc *appointmentCommandsImpl) Cancel(ctx context.Context, actor user.Actor, appointmentID uuid.UUID) (*queries.AppointmentView, error) {
	cancelled, err := uc.cancel(ctx, actor, appointmentID)
	if err != nil {
		return nil, err
	}
	uc.notifier.Notify(ctx, notification.Cancelled(cancelled, requestid.From(ctx)))
	return queries.AppointmentViewOf(cancelled), nil
}

func (uc *appointmentCommandsImpl) cancel(ctx context.Context, actor user.Actor, appointmentID uuid.UUID) (*appointment.Appointment, error) {
	var cancelled *appointment.Appointment
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		a, err := tx.Appointments().FindForUpdate(ctx, appointmentID)
		if err != nil {
			return err
		}

		req := cancellation.Request{RequesterID: actor.ID, Override: actor.ActsFor(a.ProviderID())}
		policy := uc.policyFor(ctx, a.ProviderID())
		if err := cancellation.Evaluate(a, req, policy, uc.clock.Wall()); err != nil {
			return err
		}
		if err := a.Cancel(uc.clock.Now()); err != nil {
			return err
		}
		if err := tx.Appointments().UpdateStatus(ctx, a); err != nil {
			return err
		}
		cancelled = a
		return nil
	})
	if err != nil {
		return nil, shared.Translate(err)
	}
	return cancelled, nil
}

func (uc *appointmentCommandsImpl) policyFor(ctx context.Context, providerID uuid.UUID) cancellation.Policy {
	p, err := uc.policies.PolicyFor(ctx, providerID)
	if err != nil {
		slog.Warn("cancellation policy lookup failed, using default",
			"provider_id", providerID.String(),
			"error", err.Error())
		return cancellation.DefaultPolicy()
	}
	return p
}
