package queries

import (
	"time"

	"appointment-scheduler/internal/domain/appointment"
	"appointment-scheduler/internal/domain/availability"
	"appointment-scheduler/internal/domain/civil"

	"github.com/google/uuid"
)

// Read models
type AppointmentView struct {
	ID            uuid.UUID
	CustomerID    uuid.UUID
	ProviderID    uuid.UUID
	Date          civil.Date
	StartTime     civil.TimeOfDay
	EndTime       civil.TimeOfDay
	Status        appointment.Status
	CustomerName  string
	CustomerPhone string
	ServiceType   string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func AppointmentViewOf(a *appointment.Appointment) *AppointmentView {
	svc := a.Service()
	return &AppointmentView{
		ID:            a.ID(),
		CustomerID:    a.CustomerID(),
		ProviderID:    a.ProviderID(),
		Date:          a.Date(),
		StartTime:     a.StartTime(),
		EndTime:       a.EndTime(),
		Status:        a.Status(),
		CustomerName:  svc.CustomerName,
		CustomerPhone: svc.CustomerPhone,
		ServiceType:   svc.ServiceType,
		Notes:         svc.Notes,
		CreatedAt:     a.CreatedAt(),
		UpdatedAt:     a.UpdatedAt(),
	}
}

type SlotsView struct {
	ProviderID  uuid.UUID
	Date        civil.Date
	SlotMinutes int
	// DefaultSchedule is set when the slots come from built-in hours rather than configured availability.
	DefaultSchedule bool
	Slots           []civil.TimeOfDay
}

type BreakView struct {
	StartTime civil.TimeOfDay
	EndTime   civil.TimeOfDay
}

type AvailabilityView struct {
	ID          uuid.UUID
	ProviderID  uuid.UUID
	DayOfWeek   time.Weekday
	StartTime   civil.TimeOfDay
	EndTime     civil.TimeOfDay
	SlotMinutes int
	Breaks      []BreakView
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func AvailabilityViewOf(a *availability.Availability) *AvailabilityView {
	breaks := make([]BreakView, 0, len(a.Breaks()))
	for _, b := range a.Breaks() {
		breaks = append(breaks, BreakView{StartTime: b.Start, EndTime: b.End})
	}
	return &AvailabilityView{
		ID:          a.ID(),
		ProviderID:  a.ProviderID(),
		DayOfWeek:   a.DayOfWeek(),
		StartTime:   a.StartTime(),
		EndTime:     a.EndTime(),
		SlotMinutes: a.SlotMinutes(),
		Breaks:      breaks,
		IsActive:    a.IsActive(),
		CreatedAt:   a.CreatedAt(),
		UpdatedAt:   a.UpdatedAt(),
	}
}

type HolidayView struct {
	ID         uuid.UUID
	ProviderID uuid.UUID
	Date       civil.Date
	Type       availability.HolidayType
	StartTime  *civil.TimeOfDay
	EndTime    *civil.TimeOfDay
	Reason     string
	CreatedAt  time.Time
}

func HolidayViewOf(h *availability.Holiday) *HolidayView {
	return &HolidayView{
		ID:         h.ID(),
		ProviderID: h.ProviderID(),
		Date:       h.Date(),
		Type:       h.Type(),
		StartTime:  h.StartTime(),
		EndTime:    h.EndTime(),
		Reason:     h.Reason(),
		CreatedAt:  h.CreatedAt(),
	}
}
