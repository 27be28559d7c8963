package queries

//go:generate mockgen -source=slots.go -destination=../../../tests/mock/queries/slots.go -package=queriesmock

import (
	"context"

	"appointment-scheduler/internal/domain/civil"
	"appointment-scheduler/internal/domain/slot"
	"appointment-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

type SlotQueries interface {
	GenerateSlots(ctx context.Context, providerID uuid.UUID, date civil.Date) (*SlotsView, error)
}

type slotQueriesImpl struct {
	uow      shared.UnitOfWork
	clock    *shared.ScheduleClock
	settings shared.ScheduleSettings
}

func NewSlotQueries(uow shared.UnitOfWork, clk *shared.ScheduleClock, settings shared.ScheduleSettings) SlotQueries {
	return &slotQueriesImpl{uow: uow, clock: clk, settings: settings}
}

// GenerateSlots lists the free start times of the provider's date. Starts that
// have already elapsed are left out since they cannot be booked.
func (q *slotQueriesImpl) GenerateSlots(ctx context.Context, providerID uuid.UUID, date civil.Date) (*SlotsView, error) {
	in, ok, err := shared.LoadSlotInput(ctx, q.uow.Reads(), providerID, date, q.settings)
	if err != nil {
		return nil, shared.Translate(err)
	}
	view := &SlotsView{ProviderID: providerID, Date: date, Slots: []civil.TimeOfDay{}}
	if !ok {
		return view, nil
	}
	view.SlotMinutes = in.Schedule.SlotMinutes
	view.DefaultSchedule = in.Schedule.Default

	now := q.clock.Wall()
	for _, t := range slot.Generate(in) {
		if date.At(t).After(now) {
			view.Slots = append(view.Slots, t)
		}
	}
	return view, nil
}
