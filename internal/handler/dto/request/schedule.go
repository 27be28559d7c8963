package request

import (
	"time"

	"appointment-scheduler/internal/domain/availability"
	"appointment-scheduler/internal/domain/civil"
	"appointment-scheduler/internal/pkg/patch"
	"appointment-scheduler/internal/usecase/commands"
)

type BreakRequest struct {
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
}

type CreateAvailabilityRequest struct {
	DayOfWeek           *int           `json:"dayOfWeek" binding:"required,min=0,max=6"`
	StartTime           string         `json:"startTime" binding:"required"`
	EndTime             string         `json:"endTime" binding:"required"`
	SlotDurationMinutes *int           `json:"slotDurationMinutes" binding:"omitempty"`
	Breaks              []BreakRequest `json:"breaks" binding:"omitempty,dive"`
}

// ToCommand fills an omitted slot duration with defaultSlotMinutes.
func (r *CreateAvailabilityRequest) ToCommand(defaultSlotMinutes int) (commands.CreateAvailabilityRequest, error) {
	start, err := civil.ParseTimeOfDay(r.StartTime)
	if err != nil {
		return commands.CreateAvailabilityRequest{}, err
	}
	end, err := civil.ParseTimeOfDay(r.EndTime)
	if err != nil {
		return commands.CreateAvailabilityRequest{}, err
	}
	breaks := make([]availability.BreakTime, 0, len(r.Breaks))
	for _, b := range r.Breaks {
		bs, err := civil.ParseTimeOfDay(b.StartTime)
		if err != nil {
			return commands.CreateAvailabilityRequest{}, err
		}
		be, err := civil.ParseTimeOfDay(b.EndTime)
		if err != nil {
			return commands.CreateAvailabilityRequest{}, err
		}
		breaks = append(breaks, availability.BreakTime{Start: bs, End: be})
	}
	return commands.CreateAvailabilityRequest{
		DayOfWeek:   time.Weekday(patch.Coalesce(r.DayOfWeek, 0)),
		StartTime:   start,
		EndTime:     end,
		SlotMinutes: patch.Coalesce(r.SlotDurationMinutes, defaultSlotMinutes),
		Breaks:      breaks,
	}, nil
}

type SetAvailabilityActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

type CreateHolidayRequest struct {
	Date      string  `json:"date" binding:"required"`
	Type      string  `json:"type" binding:"required,oneof=FULL_DAY PARTIAL_DAY"`
	StartTime *string `json:"startTime"`
	EndTime   *string `json:"endTime"`
	Reason    string  `json:"reason" binding:"omitempty,max=500"`
}

func (r *CreateHolidayRequest) ToCommand() (commands.CreateHolidayRequest, error) {
	date, err := civil.ParseDate(r.Date)
	if err != nil {
		return commands.CreateHolidayRequest{}, err
	}
	start, err := optionalTimeOfDay(r.StartTime)
	if err != nil {
		return commands.CreateHolidayRequest{}, err
	}
	end, err := optionalTimeOfDay(r.EndTime)
	if err != nil {
		return commands.CreateHolidayRequest{}, err
	}
	return commands.CreateHolidayRequest{
		Date:      date,
		Type:      availability.HolidayType(r.Type),
		StartTime: start,
		EndTime:   end,
		Reason:    r.Reason,
	}, nil
}

func optionalTimeOfDay(s *string) (*civil.TimeOfDay, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := civil.ParseTimeOfDay(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
