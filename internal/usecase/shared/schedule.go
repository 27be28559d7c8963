package shared

import (
	"context"

	"appointment-scheduler/internal/domain/availability"
	"appointment-scheduler/internal/domain/civil"
	"appointment-scheduler/internal/domain/slot"
	"appointment-scheduler/internal/pkg/config"

	"github.com/google/uuid"
)

type ScheduleSettings struct {
	DefaultHoursEnabled bool
	DefaultSlotMinutes  int
}

func NewScheduleSettings(cfg config.Config) ScheduleSettings {
	return ScheduleSettings{
		DefaultHoursEnabled: cfg.Booking.DefaultHoursEnabled,
		DefaultSlotMinutes:  cfg.Booking.DefaultSlotMinutes,
	}
}

// LoadSlotInput gathers the generator input for one provider day. ok is false when
// the provider has no hours that day.
func LoadSlotInput(ctx context.Context, r Reads, providerID uuid.UUID, date civil.Date, s ScheduleSettings) (slot.Input, bool, error) {
	rows, err := r.AvailabilityFor(ctx, providerID, date.Weekday())
	if err != nil {
		return slot.Input{}, false, err
	}
	schedule, ok := availability.Resolve(rows, date.Weekday(), s.DefaultHoursEnabled, s.DefaultSlotMinutes)
	if !ok {
		return slot.Input{}, false, nil
	}

	holidays, err := r.HolidaysOn(ctx, providerID, date)
	if err != nil {
		return slot.Input{}, false, err
	}
	booked, err := r.BookedIntervals(ctx, providerID, date)
	if err != nil {
		return slot.Input{}, false, err
	}
	return slot.Input{Schedule: schedule, Holidays: holidays, Booked: booked}, true, nil
}
