//go:build unit

package calendar_test

import (
	"testing"
	"time"

	"appointment-scheduler/internal/domain/appointment"
	"appointment-scheduler/internal/domain/calendar"
	"appointment-scheduler/internal/domain/civil"
	"appointment-scheduler/internal/pkg/errs"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	provider = uuid.MustParse("6f1c2a4e-5b7d-4c3e-9a10-3d2b1c0e9f01")
	customer = uuid.MustParse("0a9e8d7c-6b5a-4f3e-8d2c-1b0a9f8e7d6c")
)

func item(date civil.Date, hour int, status appointment.Status) calendar.Item {
	start := civil.MustTimeOfDay(hour, 0)
	return calendar.Item{
		ID:         uuid.New(),
		CustomerID: customer,
		ProviderID: provider,
		Date:       date,
		StartTime:  start,
		EndTime:    civil.TimeOfDay(start.Minutes() + 30),
		Status:     status,
	}
}

type bucketSummary struct {
	Key   string
	Start string
	End   string
	Total int
}

func summarize(r calendar.Report) []bucketSummary {
	out := make([]bucketSummary, 0, len(r.Buckets))
	for _, b := range r.Buckets {
		out = append(out, bucketSummary{b.Key, b.Start.String(), b.End.String(), b.Total})
	}
	return out
}

func TestAggregate(t *testing.T) {
	monday := civil.NewDate(2025, time.August, 4)
	wednesday := civil.NewDate(2025, time.August, 6)
	sunday := civil.NewDate(2025, time.August, 10)
	nextTuesday := civil.NewDate(2025, time.August, 12)
	september := civil.NewDate(2025, time.September, 2)

	items := []calendar.Item{
		item(september, 9, appointment.StatusBooked),
		item(wednesday, 11, appointment.StatusBooked),
		item(monday, 9, appointment.StatusBooked),
		item(monday, 10, appointment.StatusCancelled),
		item(sunday, 9, appointment.StatusBooked),
		item(nextTuesday, 14, appointment.StatusCompleted),
	}
	base := calendar.Query{
		ProviderID: provider,
		From:       civil.NewDate(2025, time.August, 1),
		To:         civil.NewDate(2025, time.September, 30),
	}

	tests := []struct {
		name   string
		mutate func(q *calendar.Query)
		total  int
		want   []bucketSummary
	}{
		{
			name:   "day buckets skip cancelled",
			mutate: func(q *calendar.Query) { q.Granularity = calendar.Day },
			total:  4,
			want: []bucketSummary{
				{"2025-08-04", "2025-08-04", "2025-08-04", 1},
				{"2025-08-06", "2025-08-06", "2025-08-06", 1},
				{"2025-08-10", "2025-08-10", "2025-08-10", 1},
				{"2025-09-02", "2025-09-02", "2025-09-02", 1},
			},
		},
		{
			name: "day buckets with cancelled",
			mutate: func(q *calendar.Query) {
				q.Granularity = calendar.Day
				q.IncludeCancelled = true
			},
			total: 6,
			want: []bucketSummary{
				{"2025-08-04", "2025-08-04", "2025-08-04", 2},
				{"2025-08-06", "2025-08-06", "2025-08-06", 1},
				{"2025-08-10", "2025-08-10", "2025-08-10", 1},
				{"2025-08-12", "2025-08-12", "2025-08-12", 1},
				{"2025-09-02", "2025-09-02", "2025-09-02", 1},
			},
		},
		{
			name: "iso weeks start monday",
			mutate: func(q *calendar.Query) {
				q.Granularity = calendar.Week
				q.WeekRule = calendar.ISOWeek
			},
			total: 4,
			want: []bucketSummary{
				{"2025-W32", "2025-08-04", "2025-08-10", 3},
				{"2025-W36", "2025-09-01", "2025-09-07", 1},
			},
		},
		{
			name: "us weeks start sunday",
			mutate: func(q *calendar.Query) {
				q.Granularity = calendar.Week
				q.WeekRule = calendar.USWeek
			},
			total: 4,
			want: []bucketSummary{
				{"2025-W32", "2025-08-03", "2025-08-09", 2},
				{"2025-W33", "2025-08-10", "2025-08-16", 1},
				{"2025-W36", "2025-08-31", "2025-09-06", 1},
			},
		},
		{
			name:   "zero week rule falls back to iso",
			mutate: func(q *calendar.Query) { q.Granularity = calendar.Week },
			total:  4,
			want: []bucketSummary{
				{"2025-W32", "2025-08-04", "2025-08-10", 3},
				{"2025-W36", "2025-09-01", "2025-09-07", 1},
			},
		},
		{
			name: "month buckets",
			mutate: func(q *calendar.Query) {
				q.Granularity = calendar.Month
				q.IncludeCancelled = true
			},
			total: 6,
			want: []bucketSummary{
				{"2025-08", "2025-08-01", "2025-08-31", 5},
				{"2025-09", "2025-09-01", "2025-09-30", 1},
			},
		},
		{
			name: "range is inclusive on both ends",
			mutate: func(q *calendar.Query) {
				q.Granularity = calendar.Day
				q.From = monday
				q.To = wednesday
			},
			total: 2,
			want: []bucketSummary{
				{"2025-08-04", "2025-08-04", "2025-08-04", 1},
				{"2025-08-06", "2025-08-06", "2025-08-06", 1},
			},
		},
		{
			name: "other providers are ignored",
			mutate: func(q *calendar.Query) {
				q.Granularity = calendar.Month
				q.ProviderID = uuid.New()
			},
			total: 0,
			want:  []bucketSummary{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := base
			tt.mutate(&q)

			report, err := calendar.Aggregate(q, items)
			require.NoError(t, err)

			assert.Equal(t, tt.total, report.Total)
			if diff := cmp.Diff(tt.want, summarize(report)); diff != "" {
				t.Errorf("buckets mismatch (-want +got):\n%s", diff)
			}
			sum := 0
			for _, b := range report.Buckets {
				assert.Len(t, b.Items, b.Total)
				sum += b.Total
			}
			assert.Equal(t, report.Total, sum)
			assert.Equal(t, q.From, report.RangeStart)
			assert.Equal(t, q.To, report.RangeEnd)
		})
	}
}

func TestAggregate_WeekBucketCarriesKey(t *testing.T) {
	d := civil.NewDate(2024, time.December, 31)
	report, err := calendar.Aggregate(calendar.Query{
		ProviderID:  provider,
		From:        d,
		To:          d,
		Granularity: calendar.Week,
		WeekRule:    calendar.ISOWeek,
	}, []calendar.Item{item(d, 9, appointment.StatusBooked)})
	require.NoError(t, err)
	require.Len(t, report.Buckets, 1)

	b := report.Buckets[0]
	assert.Equal(t, "2025-W01", b.Key)
	assert.Equal(t, 2025, b.WeekYear)
	assert.Equal(t, 1, b.Week)
	assert.Equal(t, "2024-12-30", b.Start.String())
}

func TestAggregate_ItemsOrderedWithinBucket(t *testing.T) {
	d := civil.NewDate(2025, time.August, 4)
	late := item(d, 15, appointment.StatusBooked)
	early := item(d, 8, appointment.StatusBooked)

	report, err := calendar.Aggregate(calendar.Query{
		ProviderID: provider, From: d, To: d, Granularity: calendar.Day,
	}, []calendar.Item{late, early})
	require.NoError(t, err)

	require.Len(t, report.Buckets, 1)
	assert.Equal(t, []calendar.Item{early, late}, report.Buckets[0].Items)
}

func TestQuery_Validate(t *testing.T) {
	d := civil.NewDate(2025, time.August, 4)

	_, err := calendar.Aggregate(calendar.Query{ProviderID: provider, From: d, To: d.AddDays(-1), Granularity: calendar.Day}, nil)
	assert.True(t, errs.Is(err, calendar.ErrInvalidRange))

	_, err = calendar.Aggregate(calendar.Query{ProviderID: provider, From: d, To: d, Granularity: "year"}, nil)
	assert.True(t, errs.Is(err, calendar.ErrInvalidGranularity))

	_, err = calendar.Aggregate(calendar.Query{ProviderID: provider, From: d, To: d.AddDays(calendar.MaxRangeDays), Granularity: calendar.Day}, nil)
	assert.True(t, errs.Is(err, calendar.ErrRangeTooLong))

	_, err = calendar.Aggregate(calendar.Query{ProviderID: provider, From: d, To: d.AddDays(calendar.MaxRangeDays - 1), Granularity: calendar.Day}, nil)
	assert.NoError(t, err)
}

func TestParseGranularity(t *testing.T) {
	g, err := calendar.ParseGranularity(" Week ")
	require.NoError(t, err)
	assert.Equal(t, calendar.Week, g)

	_, err = calendar.ParseGranularity("quarter")
	assert.True(t, errs.Is(err, errs.ErrValidation))
}
