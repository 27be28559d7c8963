package queries

//go:generate mockgen -source=appointment.go -destination=../../../tests/mock/queries/appointment.go -package=queriesmock

import (
	"context"

	"appointment-scheduler/internal/domain/user"
	"appointment-scheduler/internal/pkg/errs"
	"appointment-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

type AppointmentQueries interface {
	GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*AppointmentView, error)
}

type appointmentQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewAppointmentQueries(uow shared.UnitOfWork) AppointmentQueries {
	return &appointmentQueriesImpl{uow: uow}
}

// GetByID is visible to the customer, the provider and admins.
func (q *appointmentQueriesImpl) GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*AppointmentView, error) {
	a, err := q.uow.Reads().AppointmentByID(ctx, id)
	if err != nil {
		return nil, shared.Translate(err)
	}
	if actor.ID != a.CustomerID() && !actor.ActsFor(a.ProviderID()) {
		return nil, errs.Wrapf(errs.ErrUnauthorized, "appointment %s", id)
	}
	return AppointmentViewOf(a), nil
}
