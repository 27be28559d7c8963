package response

import (
	"appointment-scheduler/internal/domain/calendar"

	"github.com/google/uuid"
)

type CalendarItemResponse struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customerId"`
	Date       string    `json:"date"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	Status     string    `json:"status"`
}

type CalendarBucketResponse struct {
	Key      string                 `json:"key"`
	Start    string                 `json:"start"`
	End      string                 `json:"end"`
	WeekYear int                    `json:"weekYear,omitempty"`
	Week     int                    `json:"week,omitempty"`
	Total    int                    `json:"total"`
	Items    []CalendarItemResponse `json:"items"`
}

type CalendarResponse struct {
	ProviderID  uuid.UUID                `json:"providerId"`
	RangeStart  string                   `json:"rangeStart"`
	RangeEnd    string                   `json:"rangeEnd"`
	Granularity string                   `json:"granularity"`
	Total       int                      `json:"total"`
	Buckets     []CalendarBucketResponse `json:"buckets"`
}

func FromCalendarReport(r *calendar.Report) (*CalendarResponse, error) {
	res, err := project[CalendarResponse](r)
	if err != nil {
		return nil, err
	}
	if res.Buckets == nil {
		res.Buckets = []CalendarBucketResponse{}
	}
	return res, nil
}
