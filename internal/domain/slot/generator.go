// Package slot enumerates the free start times of one provider day.
package slot

import (
	"sort"

	"appointment-scheduler/internal/domain/availability"
	"appointment-scheduler/internal/domain/civil"
)

// Input is everything the generator needs for one (provider, date).
// Booked holds the intervals of Booked appointments only.
type Input struct {
	Schedule availability.Schedule
	Holidays []*availability.Holiday
	Booked   []civil.Interval
}

// Generate returns free start times in ascending order. It has no side effects and
// emits at most window/duration values.
func Generate(in Input) []civil.TimeOfDay {
	dur := in.Schedule.SlotMinutes
	if dur < 1 {
		return nil
	}
	window := in.Schedule.Window

	var out []civil.TimeOfDay
	for t := window.Start; t+dur <= window.End; t += dur {
		candidate := civil.Interval{Start: t, End: t + dur}
		if blocked(in, candidate) {
			continue
		}
		out = append(out, civil.TimeOfDay(t))
	}
	return out
}

// Offers reports whether start is one of the values Generate would return.
func Offers(in Input, start civil.TimeOfDay) bool {
	slots := Generate(in)
	i := sort.Search(len(slots), func(i int) bool { return slots[i] >= start })
	return i < len(slots) && slots[i] == start
}

// FirstOverlap returns the earliest booked interval that overlaps candidate.
func FirstOverlap(booked []civil.Interval, candidate civil.Interval) (civil.Interval, bool) {
	var hit civil.Interval
	found := false
	for _, b := range booked {
		if b.Overlaps(candidate) && (!found || b.Start < hit.Start) {
			hit, found = b, true
		}
	}
	return hit, found
}

func blocked(in Input, candidate civil.Interval) bool {
	for _, b := range in.Schedule.Breaks {
		if b.Overlaps(candidate) {
			return true
		}
	}
	for _, h := range in.Holidays {
		if h.Blocks(candidate) {
			return true
		}
	}
	_, hit := FirstOverlap(in.Booked, candidate)
	return hit
}
