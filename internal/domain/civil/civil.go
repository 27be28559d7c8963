// Package civil holds provider-local calendar values. Nothing here carries a time zone.
package civil

import (
	"fmt"
	"time"

	"appointment-scheduler/internal/pkg/errs"
)

var (
	ErrInvalidDate      = errs.Kind(errs.ErrValidation, "invalid date, expected YYYY-MM-DD")
	ErrInvalidTimeOfDay = errs.Kind(errs.ErrValidation, "invalid time of day, expected HH:MM")
	ErrEmptyInterval    = errs.Kind(errs.ErrValidation, "interval start must be before end")
)

const (
	DateLayout = "2006-01-02"
	timeLayout = "15:04"

	MinutesPerDay = 24 * 60
)

// Date is a calendar day. The zero value is not a valid date.
type Date struct {
	t time.Time // midnight UTC
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, errs.Wrapf(ErrInvalidDate, "parse date %q", s)
	}
	return Date{t: t}, nil
}

// DateOf reads the wall-clock day of t in its own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func (d Date) IsZero() bool                 { return d.t.IsZero() }
func (d Date) Year() int                    { return d.t.Year() }
func (d Date) Month() time.Month            { return d.t.Month() }
func (d Date) Day() int                     { return d.t.Day() }
func (d Date) Weekday() time.Weekday        { return d.t.Weekday() }
func (d Date) YearDay() int                 { return d.t.YearDay() }
func (d Date) AddDays(n int) Date           { return Date{t: d.t.AddDate(0, 0, n)} }
func (d Date) Before(o Date) bool           { return d.t.Before(o.t) }
func (d Date) After(o Date) bool            { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool            { return d.t.Equal(o.t) }
func (d Date) String() string               { return d.t.Format(DateLayout) }
func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DaysUntil returns o - d in whole days.
func (d Date) DaysUntil(o Date) int {
	return int(o.t.Sub(d.t).Hours() / 24)
}

// Time returns midnight of the date in UTC, for drivers that want a time.Time.
func (d Date) Time() time.Time { return d.t }

// At combines the date with a time of day into a naive instant used only for arithmetic.
func (d Date) At(tod TimeOfDay) time.Time {
	return d.t.Add(time.Duration(tod) * time.Minute)
}

// TimeOfDay is minutes since midnight, 00:00 to 23:59.
type TimeOfDay int

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, errs.Wrapf(ErrInvalidTimeOfDay, "%02d:%02d out of range", hour, minute)
	}
	return TimeOfDay(hour*60 + minute), nil
}

// MustTimeOfDay is for literals in tests and defaults.
func MustTimeOfDay(hour, minute int) TimeOfDay {
	tod, err := NewTimeOfDay(hour, minute)
	if err != nil {
		panic(err)
	}
	return tod
}

// ParseTimeOfDay accepts HH:MM and HH:MM:SS (seconds must be zero).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	layout := timeLayout
	if len(s) == len("15:04:05") {
		layout = "15:04:05"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, errs.Wrapf(ErrInvalidTimeOfDay, "parse time %q", s)
	}
	if t.Second() != 0 {
		return 0, errs.Wrapf(ErrInvalidTimeOfDay, "time %q has seconds", s)
	}
	return NewTimeOfDay(t.Hour(), t.Minute())
}

// TimeOfDayOf reads the wall-clock time of t, truncated to the minute.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

func (t TimeOfDay) Hour() int    { return int(t) / 60 }
func (t TimeOfDay) Minute() int  { return int(t) % 60 }
func (t TimeOfDay) Minutes() int { return int(t) }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

func (t TimeOfDay) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *TimeOfDay) UnmarshalText(b []byte) error {
	parsed, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Duration returns the span from midnight; convenient for pgtype.Time.
func (t TimeOfDay) Duration() time.Duration {
	return time.Duration(t) * time.Minute
}

// Interval is the half-open span [Start, End) in minutes since midnight.
// End may equal MinutesPerDay when a span closes at midnight.
type Interval struct {
	Start int
	End   int
}

func NewInterval(start, end TimeOfDay) (Interval, error) {
	if start >= end {
		return Interval{}, errs.Wrapf(ErrEmptyInterval, "%s-%s", start, end)
	}
	return Interval{Start: int(start), End: int(end)}, nil
}

// Span builds [start, start+minutes).
func Span(start TimeOfDay, minutes int) Interval {
	return Interval{Start: int(start), End: int(start) + minutes}
}

// Overlaps is the strict half-open test: a.Start < b.End && b.Start < a.End.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && o.Start < i.End
}

// Within reports whether i lies entirely inside o.
func (i Interval) Within(o Interval) bool {
	return i.Start >= o.Start && i.End <= o.End
}

func (i Interval) Minutes() int { return i.End - i.Start }

func (i Interval) StartTime() TimeOfDay { return TimeOfDay(i.Start) }

// EndTime is only valid when End < MinutesPerDay.
func (i Interval) EndTime() TimeOfDay { return TimeOfDay(i.End) }

func (i Interval) String() string {
	end := TimeOfDay(i.End).String()
	if i.End >= MinutesPerDay {
		end = "24:00"
	}
	return TimeOfDay(i.Start).String() + "-" + end
}

// WallClock drops the location of t, keeping its wall-clock reading. The result is
// comparable with Date.At.
func WallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
