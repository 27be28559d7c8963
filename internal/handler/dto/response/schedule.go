package response

import (
	"time"

	"appointment-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
)

type BreakResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type AvailabilityResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProviderID  uuid.UUID       `json:"providerId"`
	DayOfWeek   int             `json:"dayOfWeek"`
	StartTime   string          `json:"startTime"`
	EndTime     string          `json:"endTime"`
	SlotMinutes int             `json:"slotDurationMinutes"`
	Breaks      []BreakResponse `json:"breaks"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func FromAvailabilityView(v *queries.AvailabilityView) (*AvailabilityResponse, error) {
	res, err := project[AvailabilityResponse](v)
	if err != nil {
		return nil, err
	}
	if res.Breaks == nil {
		res.Breaks = []BreakResponse{}
	}
	return res, nil
}

func FromAvailabilityList(vs []*queries.AvailabilityView) ([]*AvailabilityResponse, error) {
	res := make([]*AvailabilityResponse, 0, len(vs))
	for _, v := range vs {
		r, err := FromAvailabilityView(v)
		if err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, nil
}

type HolidayResponse struct {
	ID         uuid.UUID `json:"id"`
	ProviderID uuid.UUID `json:"providerId"`
	Date       string    `json:"date"`
	Type       string    `json:"type"`
	StartTime  *string   `json:"startTime,omitempty"`
	EndTime    *string   `json:"endTime,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func FromHolidayView(v *queries.HolidayView) (*HolidayResponse, error) {
	return project[HolidayResponse](v)
}

func FromHolidayList(vs []*queries.HolidayView) ([]*HolidayResponse, error) {
	res := make([]*HolidayResponse, 0, len(vs))
	for _, v := range vs {
		r, err := FromHolidayView(v)
		if err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, nil
}
