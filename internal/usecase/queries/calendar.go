package queries

//go:generate mockgen -source=calendar.go -destination=../../../tests/mock/queries/calendar.go -package=queriesmock

import (
	"context"
	"strings"

	"appointment-scheduler/internal/domain/calendar"
	"appointment-scheduler/internal/domain/civil"
	"appointment-scheduler/internal/domain/user"
	"appointment-scheduler/internal/pkg/config"
	"appointment-scheduler/internal/pkg/errs"
	"appointment-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

type CalendarRequest struct {
	ProviderID       uuid.UUID
	From             civil.Date
	To               civil.Date
	Granularity      string
	IncludeCancelled bool
	// Locale picks the week rule; empty means the configured default.
	Locale string
}

type CalendarQueries interface {
	Aggregate(ctx context.Context, actor user.Actor, req CalendarRequest) (*calendar.Report, error)
}

type calendarQueriesImpl struct {
	uow           shared.UnitOfWork
	defaultLocale string
}

func NewCalendarQueries(uow shared.UnitOfWork, cfg config.Config) CalendarQueries {
	return &calendarQueriesImpl{uow: uow, defaultLocale: cfg.Calendar.DefaultLocale}
}

// Aggregate reads without locks; the report is advisory.
func (q *calendarQueriesImpl) Aggregate(ctx context.Context, actor user.Actor, req CalendarRequest) (*calendar.Report, error) {
	if !actor.ActsFor(req.ProviderID) {
		return nil, errs.Wrapf(errs.ErrUnauthorized, "calendar of provider %s", req.ProviderID)
	}
	granularity, err := calendar.ParseGranularity(req.Granularity)
	if err != nil {
		return nil, err
	}
	locale := strings.TrimSpace(req.Locale)
	if locale == "" {
		locale = q.defaultLocale
	}
	rule, err := calendar.RuleForLocale(locale)
	if err != nil {
		return nil, err
	}

	query := calendar.Query{
		ProviderID:       req.ProviderID,
		From:             req.From,
		To:               req.To,
		Granularity:      granularity,
		IncludeCancelled: req.IncludeCancelled,
		WeekRule:         rule,
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := q.uow.Reads().AppointmentsInRange(ctx, req.ProviderID, req.From, req.To)
	if err != nil {
		return nil, shared.Translate(err)
	}
	items := make([]calendar.Item, 0, len(rows))
	for _, a := range rows {
		items = append(items, calendar.ItemOf(a))
	}

	report, err := calendar.Aggregate(query, items)
	if err != nil {
		return nil, err
	}
	return &report, nil
}
