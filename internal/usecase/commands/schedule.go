package commands

//go:generate mockgen -source=schedule.go -destination=../../../tests/mock/commands/schedule.go -package=commandsmock

import (
	"context"
	"time"

	"appointment-scheduler/internal/domain/availability"
	"appointment-scheduler/internal/domain/civil"
	"appointment-scheduler/internal/domain/user"
	"appointment-scheduler/internal/pkg/errs"
	"appointment-scheduler/internal/usecase/queries"
	"appointment-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateAvailabilityRequest struct {
	DayOfWeek   time.Weekday
	StartTime   civil.TimeOfDay
	EndTime     civil.TimeOfDay
	SlotMinutes int
	Breaks      []availability.BreakTime
}

type CreateHolidayRequest struct {
	Date      civil.Date
	Type      availability.HolidayType
	StartTime *civil.TimeOfDay
	EndTime   *civil.TimeOfDay
	Reason    string
}

// ScheduleCommands administers a provider's availability and holidays. Only the
// provider itself and admins may call them.
type ScheduleCommands interface {
	CreateAvailability(ctx context.Context, actor user.Actor, providerID uuid.UUID, req CreateAvailabilityRequest) (*queries.AvailabilityView, error)
	SetAvailabilityActive(ctx context.Context, actor user.Actor, providerID, availabilityID uuid.UUID, active bool) (*queries.AvailabilityView, error)
	CreateHoliday(ctx context.Context, actor user.Actor, providerID uuid.UUID, req CreateHolidayRequest) (*queries.HolidayView, error)
	DeleteHoliday(ctx context.Context, actor user.Actor, providerID, holidayID uuid.UUID) error
}

type scheduleCommandsImpl struct {
	uow   shared.UnitOfWork
	clock *shared.ScheduleClock
}

func NewScheduleCommands(uow shared.UnitOfWork, clk *shared.ScheduleClock) ScheduleCommands {
	return &scheduleCommandsImpl{uow: uow, clock: clk}
}

func authorizeProvider(actor user.Actor, providerID uuid.UUID) error {
	if !actor.ActsFor(providerID) {
		return errs.Wrapf(errs.ErrUnauthorized, "schedule of provider %s", providerID)
	}
	return nil
}

func (uc *scheduleCommandsImpl) CreateAvailability(ctx context.Context, actor user.Actor, providerID uuid.UUID, req CreateAvailabilityRequest) (*queries.AvailabilityView, error) {
	if err := authorizeProvider(actor, providerID); err != nil {
		return nil, err
	}
	a, err := availability.NewAvailability(providerID, req.DayOfWeek, req.StartTime, req.EndTime, req.SlotMinutes, req.Breaks, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Availability().Create(ctx, a)
	})
	if err != nil {
		return nil, shared.Translate(err)
	}
	return queries.AvailabilityViewOf(a), nil
}

func (uc *scheduleCommandsImpl) SetAvailabilityActive(ctx context.Context, actor user.Actor, providerID, availabilityID uuid.UUID, active bool) (*queries.AvailabilityView, error) {
	if err := authorizeProvider(actor, providerID); err != nil {
		return nil, err
	}

	var updated *availability.Availability
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		a, err := tx.Availability().FindByID(ctx, availabilityID)
		if err != nil {
			return err
		}
		if a.ProviderID() != providerID {
			return errs.Wrapf(errs.ErrNotFound, "availability %s", availabilityID)
		}
		a.SetActive(active, uc.clock.Now())
		if err := tx.Availability().SetActive(ctx, a); err != nil {
			return err
		}
		updated = a
		return nil
	})
	if err != nil {
		return nil, shared.Translate(err)
	}
	return queries.AvailabilityViewOf(updated), nil
}

func (uc *scheduleCommandsImpl) CreateHoliday(ctx context.Context, actor user.Actor, providerID uuid.UUID, req CreateHolidayRequest) (*queries.HolidayView, error) {
	if err := authorizeProvider(actor, providerID); err != nil {
		return nil, err
	}
	h, err := availability.NewHoliday(providerID, req.Date, req.Type, req.StartTime, req.EndTime, req.Reason, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Holidays().Create(ctx, h)
	})
	if err != nil {
		return nil, shared.Translate(err)
	}
	return queries.HolidayViewOf(h), nil
}

func (uc *scheduleCommandsImpl) DeleteHoliday(ctx context.Context, actor user.Actor, providerID, holidayID uuid.UUID) error {
	if err := authorizeProvider(actor, providerID); err != nil {
		return err
	}
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		h, err := tx.Holidays().FindByID(ctx, holidayID)
		if err != nil {
			return err
		}
		if h.ProviderID() != providerID {
			return errs.Wrapf(errs.ErrNotFound, "holiday %s", holidayID)
		}
		return tx.Holidays().Delete(ctx, holidayID)
	})
	return shared.Translate(err)
}
