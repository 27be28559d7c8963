package memstore

import (
	"bytes"
	"context"
	"sort"
	"time"

	"appointment-scheduler/internal/domain/appointment"
	"appointment-scheduler/internal/domain/availability"
	"appointment-scheduler/internal/domain/civil"
	"appointment-scheduler/internal/infra"

	"github.com/google/uuid"
)

func (s *Store) AppointmentByID(_ context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.appointments[id]
	if !ok {
		return nil, infra.WrapRepoErr(s.logger, infra.KindNotFound, "appointment not found", nil)
	}
	return &row, nil
}

func (s *Store) BookedIntervals(_ context.Context, providerID uuid.UUID, date civil.Date) ([]civil.Interval, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []civil.Interval
	for _, a := range s.appointments {
		if a.IsBooked() && a.ProviderID() == providerID && a.Date().Equal(date) {
			out = append(out, a.Interval())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out, nil
}

func (s *Store) AppointmentsInRange(_ context.Context, providerID uuid.UUID, from, to civil.Date) ([]*appointment.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*appointment.Appointment
	for _, a := range s.appointments {
		if a.ProviderID() != providerID || a.Date().Before(from) || a.Date().After(to) {
			continue
		}
		row := a
		out = append(out, &row)
	}
	sortAppointments(out)
	return out, nil
}

func (s *Store) BookedStartingBetween(_ context.Context, from, to time.Time) ([]*appointment.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*appointment.Appointment
	for _, a := range s.appointments {
		start := a.StartsAt()
		if !a.IsBooked() || start.Before(from) || !start.Before(to) {
			continue
		}
		row := a
		out = append(out, &row)
	}
	sortAppointments(out)
	return out, nil
}

func (s *Store) AvailabilityFor(_ context.Context, providerID uuid.UUID, day time.Weekday) ([]*availability.Availability, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*availability.Availability
	for _, a := range s.availability {
		if a.ProviderID() == providerID && a.DayOfWeek() == day {
			row := a
			out = append(out, &row)
		}
	}
	sortAvailability(out)
	return out, nil
}

func (s *Store) ListAvailability(_ context.Context, providerID uuid.UUID) ([]*availability.Availability, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*availability.Availability
	for _, a := range s.availability {
		if a.ProviderID() == providerID {
			row := a
			out = append(out, &row)
		}
	}
	sortAvailability(out)
	return out, nil
}

func (s *Store) HolidaysOn(_ context.Context, providerID uuid.UUID, date civil.Date) ([]*availability.Holiday, error) {
	return s.holidaysBetween(providerID, date, date), nil
}

func (s *Store) ListHolidays(_ context.Context, providerID uuid.UUID, from, to civil.Date) ([]*availability.Holiday, error) {
	return s.holidaysBetween(providerID, from, to), nil
}

func (s *Store) holidaysBetween(providerID uuid.UUID, from, to civil.Date) []*availability.Holiday {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*availability.Holiday
	for _, h := range s.holidays {
		if h.ProviderID() != providerID || h.Date().Before(from) || h.Date().After(to) {
			continue
		}
		row := h
		out = append(out, &row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date().Before(out[j].Date()) })
	return out
}

func sortAppointments(rows []*appointment.Appointment) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.Date().Equal(b.Date()) {
			return a.Date().Before(b.Date())
		}
		if a.StartTime() != b.StartTime() {
			return a.StartTime() < b.StartTime()
		}
		ida, idb := a.ID(), b.ID()
		return bytes.Compare(ida[:], idb[:]) < 0
	})
}

func sortAvailability(rows []*availability.Availability) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.DayOfWeek() != b.DayOfWeek() {
			return a.DayOfWeek() < b.DayOfWeek()
		}
		ida, idb := a.ID(), b.ID()
		return bytes.Compare(ida[:], idb[:]) < 0
	})
}
