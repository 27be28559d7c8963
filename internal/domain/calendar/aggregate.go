package calendar

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"appointment-scheduler/internal/domain/appointment"
	"appointment-scheduler/internal/domain/civil"
	"appointment-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
)

// MaxRangeDays bounds a single report.
const MaxRangeDays = 366

var (
	ErrInvalidGranularity = errs.Kind(errs.ErrValidation, "granularity must be day, week or month")
	ErrInvalidRange       = errs.Kind(errs.ErrValidation, "calendar range start must not be after its end")
	ErrRangeTooLong       = errs.Kind(errs.ErrValidation, "calendar range too long")
)

type Granularity string

const (
	Day   Granularity = "day"
	Week  Granularity = "week"
	Month Granularity = "month"
)

func ParseGranularity(s string) (Granularity, error) {
	g := Granularity(strings.ToLower(strings.TrimSpace(s)))
	switch g {
	case Day, Week, Month:
		return g, nil
	default:
		return "", errs.Wrapf(ErrInvalidGranularity, "%q", s)
	}
}

// Item is the flattened appointment projection placed in buckets.
type Item struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	ProviderID uuid.UUID
	Date       civil.Date
	StartTime  civil.TimeOfDay
	EndTime    civil.TimeOfDay
	Status     appointment.Status
}

func ItemOf(a *appointment.Appointment) Item {
	return Item{
		ID:         a.ID(),
		CustomerID: a.CustomerID(),
		ProviderID: a.ProviderID(),
		Date:       a.Date(),
		StartTime:  a.StartTime(),
		EndTime:    a.EndTime(),
		Status:     a.Status(),
	}
}

// Bucket groups the items of one period. WeekYear and Week are set for week buckets only.
type Bucket struct {
	Key      string
	Start    civil.Date
	End      civil.Date
	WeekYear int
	Week     int
	Items    []Item
	Total    int
}

type Report struct {
	ProviderID  uuid.UUID
	RangeStart  civil.Date
	RangeEnd    civil.Date
	Granularity Granularity
	Total       int
	Buckets     []Bucket
}

type Query struct {
	ProviderID       uuid.UUID
	From             civil.Date
	To               civil.Date
	Granularity      Granularity
	IncludeCancelled bool
	WeekRule         WeekRule
}

func (q Query) Validate() error {
	switch q.Granularity {
	case Day, Week, Month:
	default:
		return errs.Wrapf(ErrInvalidGranularity, "%q", q.Granularity)
	}
	if q.From.After(q.To) {
		return errs.Wrapf(ErrInvalidRange, "%s > %s", q.From, q.To)
	}
	if days := q.From.DaysUntil(q.To) + 1; days > MaxRangeDays {
		return errs.Wrapf(ErrRangeTooLong, "%d days, at most %d", days, MaxRangeDays)
	}
	return nil
}

// Aggregate partitions items into sparse buckets ordered by period. Items outside
// the provider or the inclusive range are ignored, as are non-booked ones unless
// IncludeCancelled is set.
func Aggregate(q Query, items []Item) (Report, error) {
	if err := q.Validate(); err != nil {
		return Report{}, err
	}
	if q.Granularity == Week && q.WeekRule.MinimalDays == 0 {
		q.WeekRule = ISOWeek
	}

	kept := make([]Item, 0, len(items))
	for _, it := range items {
		if it.ProviderID != q.ProviderID || it.Date.Before(q.From) || it.Date.After(q.To) {
			continue
		}
		if !q.IncludeCancelled && it.Status != appointment.StatusBooked {
			continue
		}
		kept = append(kept, it)
	}
	sort.SliceStable(kept, func(i, j int) bool {
		a, b := kept[i], kept[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.StartTime != b.StartTime {
			return a.StartTime < b.StartTime
		}
		return bytes.Compare(a.ID[:], b.ID[:]) < 0
	})

	// kept is date ordered, so buckets come out in period order.
	index := map[string]int{}
	var buckets []Bucket
	for _, it := range kept {
		b := q.bucketFor(it.Date)
		i, ok := index[b.Key]
		if !ok {
			i = len(buckets)
			index[b.Key] = i
			buckets = append(buckets, b)
		}
		buckets[i].Items = append(buckets[i].Items, it)
		buckets[i].Total++
	}

	return Report{
		ProviderID:  q.ProviderID,
		RangeStart:  q.From,
		RangeEnd:    q.To,
		Granularity: q.Granularity,
		Total:       len(kept),
		Buckets:     buckets,
	}, nil
}

func (q Query) bucketFor(d civil.Date) Bucket {
	switch q.Granularity {
	case Week:
		year, week := q.WeekRule.Week(d)
		start, end := q.WeekRule.WeekBounds(year, week)
		return Bucket{
			Key:      fmt.Sprintf("%d-W%02d", year, week),
			Start:    start,
			End:      end,
			WeekYear: year,
			Week:     week,
		}
	case Month:
		first := civil.NewDate(d.Year(), d.Month(), 1)
		last := civil.NewDate(d.Year(), d.Month()+1, 1).AddDays(-1)
		return Bucket{
			Key:   fmt.Sprintf("%04d-%02d", d.Year(), int(d.Month())),
			Start: first,
			End:   last,
		}
	default:
		return Bucket{Key: d.String(), Start: d, End: d}
	}
}
