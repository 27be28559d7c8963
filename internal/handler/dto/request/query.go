package request

import (
	"appointment-scheduler/internal/domain/civil"
	"appointment-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
)

type SlotsQuery struct {
	Date string `form:"date" binding:"required"`
}

func (q *SlotsQuery) ParseDate() (civil.Date, error) {
	return civil.ParseDate(q.Date)
}

type CalendarQuery struct {
	Granularity      string `form:"granularity" binding:"required"`
	From             string `form:"from" binding:"required"`
	To               string `form:"to" binding:"required"`
	IncludeCancelled bool   `form:"includeCancelled"`
	Locale           string `form:"locale"`
}

func (q *CalendarQuery) ToQuery(providerID uuid.UUID) (queries.CalendarRequest, error) {
	from, err := civil.ParseDate(q.From)
	if err != nil {
		return queries.CalendarRequest{}, err
	}
	to, err := civil.ParseDate(q.To)
	if err != nil {
		return queries.CalendarRequest{}, err
	}
	return queries.CalendarRequest{
		ProviderID:       providerID,
		From:             from,
		To:               to,
		Granularity:      q.Granularity,
		IncludeCancelled: q.IncludeCancelled,
		Locale:           q.Locale,
	}, nil
}

type DateRangeQuery struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

func (q *DateRangeQuery) Parse() (civil.Date, civil.Date, error) {
	from, err := civil.ParseDate(q.From)
	if err != nil {
		return civil.Date{}, civil.Date{}, err
	}
	to, err := civil.ParseDate(q.To)
	if err != nil {
		return civil.Date{}, civil.Date{}, err
	}
	return from, to, nil
}
