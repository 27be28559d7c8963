package response

import (
	"time"

	"appointment-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
)

type AppointmentResponse struct {
	ID            uuid.UUID `json:"id"`
	CustomerID    uuid.UUID `json:"customerId"`
	ProviderID    uuid.UUID `json:"providerId"`
	Date          string    `json:"date"`
	StartTime     string    `json:"startTime"`
	EndTime       string    `json:"endTime"`
	Status        string    `json:"status"`
	CustomerName  string    `json:"customerName"`
	CustomerPhone string    `json:"customerPhone,omitempty"`
	ServiceType   string    `json:"serviceType,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func FromAppointmentView(v *queries.AppointmentView) (*AppointmentResponse, error) {
	return project[AppointmentResponse](v)
}

type SlotsResponse struct {
	ProviderID      uuid.UUID `json:"providerId"`
	Date            string    `json:"date"`
	SlotMinutes     int       `json:"slotDurationMinutes"`
	DefaultSchedule bool      `json:"defaultSchedule"`
	Slots           []string  `json:"slots"`
}

func FromSlotsView(v *queries.SlotsView) *SlotsResponse {
	slots := make([]string, len(v.Slots))
	for i, s := range v.Slots {
		slots[i] = s.String()
	}
	return &SlotsResponse{
		ProviderID:      v.ProviderID,
		Date:            v.Date.String(),
		SlotMinutes:     v.SlotMinutes,
		DefaultSchedule: v.DefaultSchedule,
		Slots:           slots,
	}
}
