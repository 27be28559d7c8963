package queries

//go:generate mockgen -source=schedule.go -destination=../../../tests/mock/queries/schedule.go -package=queriesmock

import (
	"context"

	"appointment-scheduler/internal/domain/civil"
	"appointment-scheduler/internal/pkg/errs"
	"appointment-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrInvalidHolidayRange = errs.Kind(errs.ErrValidation, "holiday range start must not be after its end")

type ScheduleQueries interface {
	ListAvailability(ctx context.Context, providerID uuid.UUID) ([]*AvailabilityView, error)
	ListHolidays(ctx context.Context, providerID uuid.UUID, from, to civil.Date) ([]*HolidayView, error)
}

type scheduleQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewScheduleQueries(uow shared.UnitOfWork) ScheduleQueries {
	return &scheduleQueriesImpl{uow: uow}
}

func (q *scheduleQueriesImpl) ListAvailability(ctx context.Context, providerID uuid.UUID) ([]*AvailabilityView, error) {
	rows, err := q.uow.Reads().ListAvailability(ctx, providerID)
	if err != nil {
		return nil, shared.Translate(err)
	}
	views := make([]*AvailabilityView, 0, len(rows))
	for _, a := range rows {
		views = append(views, AvailabilityViewOf(a))
	}
	return views, nil
}

func (q *scheduleQueriesImpl) ListHolidays(ctx context.Context, providerID uuid.UUID, from, to civil.Date) ([]*HolidayView, error) {
	if from.After(to) {
		return nil, errs.Wrapf(ErrInvalidHolidayRange, "%s > %s", from, to)
	}
	rows, err := q.uow.Reads().ListHolidays(ctx, providerID, from, to)
	if err != nil {
		return nil, shared.Translate(err)
	}
	views := make([]*HolidayView, 0, len(rows))
	for _, h := range rows {
		views = append(views, HolidayViewOf(h))
	}
	return views, nil
}
