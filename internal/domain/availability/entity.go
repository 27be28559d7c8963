package availability

import (
	"bytes"
	"sort"
	"time"

	"appointment-scheduler/internal/domain/civil"
	"appointment-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidWeekday      = errs.Kind(errs.ErrValidation, "day of week out of range")
	ErrInvalidWindow       = errs.Kind(errs.ErrValidation, "availability start must be before end")
	ErrInvalidSlotDuration = errs.Kind(errs.ErrValidation, "slot duration must be at least one minute")
	ErrInvalidBreak        = errs.Kind(errs.ErrValidation, "break start must be before end")
	ErrBreakOutsideWindow  = errs.Kind(errs.ErrValidation, "break must lie within the availability window")
)

type BreakTime struct {
	Start civil.TimeOfDay
	End   civil.TimeOfDay
}

func (b BreakTime) Interval() civil.Interval {
	return civil.Interval{Start: int(b.Start), End: int(b.End)}
}

// Availability is a provider's recurring open window for one weekday.
type Availability struct {
	id          uuid.UUID
	providerID  uuid.UUID
	dayOfWeek   time.Weekday
	window      civil.Interval
	slotMinutes int
	breaks      []BreakTime
	active      bool
	createdAt   time.Time
	updatedAt   time.Time
}

func NewAvailability(
	providerID uuid.UUID,
	dayOfWeek time.Weekday,
	start, end civil.TimeOfDay,
	slotMinutes int,
	breaks []BreakTime,
	now time.Time,
) (*Availability, error) {
	if dayOfWeek < time.Sunday || dayOfWeek > time.Saturday {
		return nil, ErrInvalidWeekday
	}
	if start >= end {
		return nil, errs.Wrapf(ErrInvalidWindow, "%s-%s", start, end)
	}
	window := civil.Interval{Start: int(start), End: int(end)}
	if slotMinutes < 1 {
		return nil, ErrInvalidSlotDuration
	}
	for _, b := range breaks {
		if b.Start >= b.End {
			return nil, errs.Wrapf(ErrInvalidBreak, "break %s-%s", b.Start, b.End)
		}
		if !b.Interval().Within(window) {
			return nil, errs.Wrapf(ErrBreakOutsideWindow, "break %s-%s", b.Start, b.End)
		}
	}

	sorted := append([]BreakTime(nil), breaks...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	return &Availability{
		id:          uuid.New(),
		providerID:  providerID,
		dayOfWeek:   dayOfWeek,
		window:      window,
		slotMinutes: slotMinutes,
		breaks:      sorted,
		active:      true,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructAvailability(
	id, providerID uuid.UUID,
	dayOfWeek time.Weekday,
	start, end civil.TimeOfDay,
	slotMinutes int,
	breaks []BreakTime,
	active bool,
	createdAt, updatedAt time.Time,
) *Availability {
	return &Availability{
		id:          id,
		providerID:  providerID,
		dayOfWeek:   dayOfWeek,
		window:      civil.Interval{Start: int(start), End: int(end)},
		slotMinutes: slotMinutes,
		breaks:      breaks,
		active:      active,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (a *Availability) SetActive(active bool, now time.Time) {
	a.active = active
	a.updatedAt = now
}

// Schedule projects the row into the generator input.
func (a *Availability) Schedule() Schedule {
	breaks := make([]civil.Interval, len(a.breaks))
	for i, b := range a.breaks {
		breaks[i] = b.Interval()
	}
	return Schedule{
		Window:      a.window,
		SlotMinutes: a.slotMinutes,
		Breaks:      breaks,
	}
}

func (a *Availability) ID() uuid.UUID              { return a.id }
func (a *Availability) ProviderID() uuid.UUID      { return a.providerID }
func (a *Availability) DayOfWeek() time.Weekday    { return a.dayOfWeek }
func (a *Availability) StartTime() civil.TimeOfDay { return a.window.StartTime() }
func (a *Availability) EndTime() civil.TimeOfDay   { return a.window.EndTime() }
func (a *Availability) SlotMinutes() int           { return a.slotMinutes }
func (a *Availability) Breaks() []BreakTime        { return append([]BreakTime(nil), a.breaks...) }
func (a *Availability) IsActive() bool             { return a.active }
func (a *Availability) CreatedAt() time.Time       { return a.createdAt }
func (a *Availability) UpdatedAt() time.Time       { return a.updatedAt }

// Schedule is the resolved open window for one date.
type Schedule struct {
	Window      civil.Interval
	SlotMinutes int
	Breaks      []civil.Interval
	// Default marks the built-in weekday hours used when a provider has configured nothing.
	Default bool
}

// DefaultSchedule is Monday to Friday 09:00-17:00; weekends have no schedule.
func DefaultSchedule(day time.Weekday, slotMinutes int) (Schedule, bool) {
	if day == time.Saturday || day == time.Sunday {
		return Schedule{}, false
	}
	return Schedule{
		Window:      civil.Interval{Start: 9 * 60, End: 17 * 60},
		SlotMinutes: slotMinutes,
		Default:     true,
	}, true
}

// Select picks the schedule for day out of a provider's rows. Several active rows for the
// same weekday is a data anomaly; the lowest id wins so the choice is stable.
func Select(rows []*Availability, day time.Weekday) (*Availability, bool) {
	var picked *Availability
	for _, a := range rows {
		if !a.active || a.dayOfWeek != day {
			continue
		}
		if picked == nil || bytes.Compare(a.id[:], picked.id[:]) < 0 {
			picked = a
		}
	}
	return picked, picked != nil
}

// Resolve returns the schedule for day, falling back to DefaultSchedule when allowed.
func Resolve(rows []*Availability, day time.Weekday, fallback bool, defaultSlotMinutes int) (Schedule, bool) {
	if a, ok := Select(rows, day); ok {
		return a.Schedule(), true
	}
	if !fallback {
		return Schedule{}, false
	}
	return DefaultSchedule(day, defaultSlotMinutes)
}
