//go:build unit || e2e

package builder

import (
	"time"

	"appointment-scheduler/internal/domain/availability"
	"appointment-scheduler/internal/domain/civil"
	reqdto "appointment-scheduler/internal/handler/dto/request"
	"appointment-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
)

type AvailabilityBuilder struct {
	ID          uuid.UUID
	ProviderID  uuid.UUID
	DayOfWeek   time.Weekday
	Start       civil.TimeOfDay
	End         civil.TimeOfDay
	SlotMinutes int
	Breaks      []availability.BreakTime
	Active      bool
	CreatedAt   time.Time
}

func NewAvailabilityBuilder() *AvailabilityBuilder {
	return &AvailabilityBuilder{
		ID:          uuid.New(),
		ProviderID:  uuid.New(),
		DayOfWeek:   time.Monday,
		Start:       civil.MustTimeOfDay(9, 0),
		End:         civil.MustTimeOfDay(17, 0),
		SlotMinutes: 30,
		Breaks: []availability.BreakTime{
			{Start: civil.MustTimeOfDay(12, 0), End: civil.MustTimeOfDay(13, 0)},
		},
		Active:    true,
		CreatedAt: time.Date(2025, time.August, 1, 8, 0, 0, 0, time.UTC),
	}
}

func (b *AvailabilityBuilder) With(mutate func(*AvailabilityBuilder)) *AvailabilityBuilder {
	mutate(b)
	return b
}

func (b *AvailabilityBuilder) BuildReconstructed() *availability.Availability {
	return availability.ReconstructAvailability(
		b.ID, b.ProviderID, b.DayOfWeek, b.Start, b.End, b.SlotMinutes,
		b.Breaks, b.Active, b.CreatedAt, b.CreatedAt,
	)
}

func (b *AvailabilityBuilder) BuildView() *queries.AvailabilityView {
	return queries.AvailabilityViewOf(b.BuildReconstructed())
}

func (b *AvailabilityBuilder) BuildCreateRequestDTO() reqdto.CreateAvailabilityRequest {
	day := int(b.DayOfWeek)
	slot := b.SlotMinutes
	breaks := make([]reqdto.BreakRequest, len(b.Breaks))
	for i, br := range b.Breaks {
		breaks[i] = reqdto.BreakRequest{StartTime: br.Start.String(), EndTime: br.End.String()}
	}
	return reqdto.CreateAvailabilityRequest{
		DayOfWeek:           &day,
		StartTime:           b.Start.String(),
		EndTime:             b.End.String(),
		SlotDurationMinutes: &slot,
		Breaks:              breaks,
	}
}

type HolidayBuilder struct {
	ID         uuid.UUID
	ProviderID uuid.UUID
	Date       civil.Date
	Type       availability.HolidayType
	Start      *civil.TimeOfDay
	End        *civil.TimeOfDay
	Reason     string
	CreatedAt  time.Time
}

func NewHolidayBuilder() *HolidayBuilder {
	return &HolidayBuilder{
		ID:         uuid.New(),
		ProviderID: uuid.New(),
		Date:       civil.NewDate(2025, time.August, 11),
		Type:       availability.FullDay,
		Reason:     "public holiday",
		CreatedAt:  time.Date(2025, time.August, 1, 8, 0, 0, 0, time.UTC),
	}
}

func (b *HolidayBuilder) With(mutate func(*HolidayBuilder)) *HolidayBuilder {
	mutate(b)
	return b
}

// Partial turns the holiday into a partial-day block.
func (b *HolidayBuilder) Partial(start, end civil.TimeOfDay) *HolidayBuilder {
	b.Type = availability.PartialDay
	b.Start = &start
	b.End = &end
	return b
}

func (b *HolidayBuilder) BuildReconstructed() *availability.Holiday {
	return availability.ReconstructHoliday(b.ID, b.ProviderID, b.Date, b.Type, b.Start, b.End, b.Reason, b.CreatedAt)
}

func (b *HolidayBuilder) BuildView() *queries.HolidayView {
	return queries.HolidayViewOf(b.BuildReconstructed())
}

func (b *HolidayBuilder) BuildCreateRequestDTO() reqdto.CreateHolidayRequest {
	req := reqdto.CreateHolidayRequest{
		Date:   b.Date.String(),
		Type:   string(b.Type),
		Reason: b.Reason,
	}
	if b.Start != nil {
		s := b.Start.String()
		req.StartTime = &s
	}
	if b.End != nil {
		e := b.End.String()
		req.EndTime = &e
	}
	return req
}
