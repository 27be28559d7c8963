package availability

import (
	"strings"
	"time"

	"appointment-scheduler/internal/domain/civil"
	"appointment-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
)

const MaxReasonLength = 500

var (
	ErrInvalidHolidayType  = errs.Kind(errs.ErrValidation, "holiday type must be FULL_DAY or PARTIAL_DAY")
	ErrPartialHolidayTimes = errs.Kind(errs.ErrValidation, "partial-day holiday needs start and end with start before end")
	ErrReasonTooLong       = errs.Kind(errs.ErrValidation, "holiday reason too long")
)

type HolidayType string

const (
	FullDay    HolidayType = "FULL_DAY"
	PartialDay HolidayType = "PARTIAL_DAY"
)

func (t HolidayType) String() string { return string(t) }

func (t HolidayType) IsValid() bool {
	return t == FullDay || t == PartialDay
}

// Holiday blocks a provider's date entirely or a sub-interval of it.
type Holiday struct {
	id         uuid.UUID
	providerID uuid.UUID
	date       civil.Date
	kind       HolidayType
	blocked    civil.Interval
	reason     string
	createdAt  time.Time
}

func NewHoliday(
	providerID uuid.UUID,
	date civil.Date,
	kind HolidayType,
	start, end *civil.TimeOfDay,
	reason string,
	now time.Time,
) (*Holiday, error) {
	if !kind.IsValid() {
		return nil, ErrInvalidHolidayType
	}
	reason = strings.TrimSpace(reason)
	if len([]rune(reason)) > MaxReasonLength {
		return nil, ErrReasonTooLong
	}

	blocked := civil.Interval{Start: 0, End: civil.MinutesPerDay}
	if kind == PartialDay {
		if start == nil || end == nil || *start >= *end {
			return nil, ErrPartialHolidayTimes
		}
		blocked = civil.Interval{Start: int(*start), End: int(*end)}
	}

	return &Holiday{
		id:         uuid.New(),
		providerID: providerID,
		date:       date,
		kind:       kind,
		blocked:    blocked,
		reason:     reason,
		createdAt:  now,
	}, nil
}

func ReconstructHoliday(
	id, providerID uuid.UUID,
	date civil.Date,
	kind HolidayType,
	start, end *civil.TimeOfDay,
	reason string,
	createdAt time.Time,
) *Holiday {
	blocked := civil.Interval{Start: 0, End: civil.MinutesPerDay}
	if kind == PartialDay && start != nil && end != nil {
		blocked = civil.Interval{Start: int(*start), End: int(*end)}
	}
	return &Holiday{
		id:         id,
		providerID: providerID,
		date:       date,
		kind:       kind,
		blocked:    blocked,
		reason:     reason,
		createdAt:  createdAt,
	}
}

// Blocks reports whether the holiday removes a candidate interval.
func (h *Holiday) Blocks(iv civil.Interval) bool {
	if h.kind == FullDay {
		return true
	}
	return h.blocked.Overlaps(iv)
}

func (h *Holiday) ID() uuid.UUID         { return h.id }
func (h *Holiday) ProviderID() uuid.UUID { return h.providerID }
func (h *Holiday) Date() civil.Date      { return h.date }
func (h *Holiday) Type() HolidayType     { return h.kind }
func (h *Holiday) Reason() string        { return h.reason }
func (h *Holiday) CreatedAt() time.Time  { return h.createdAt }

// StartTime and EndTime are nil for full-day holidays.
func (h *Holiday) StartTime() *civil.TimeOfDay {
	if h.kind != PartialDay {
		return nil
	}
	t := h.blocked.StartTime()
	return &t
}

func (h *Holiday) EndTime() *civil.TimeOfDay {
	if h.kind != PartialDay {
		return nil
	}
	t := h.blocked.EndTime()
	return &t
}
