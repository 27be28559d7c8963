package memstore

import (
	"context"

	"appointment-scheduler/internal/domain/appointment"
	"appointment-scheduler/internal/domain/availability"
	"appointment-scheduler/internal/infra"
	"appointment-scheduler/internal/pkg/errs"
	"appointment-scheduler/internal/pkg/keylock"

	"github.com/google/uuid"
)

type appointmentRepo struct {
	tx *memTx
}

func (r *appointmentRepo) Create(_ context.Context, a *appointment.Appointment) error {
	s := r.tx.store
	row := *a
	r.tx.stage(op{
		check: func() error {
			if !row.IsBooked() {
				return nil
			}
			for _, other := range s.appointments {
				if other.IsBooked() && other.ProviderID() == row.ProviderID() &&
					other.Date().Equal(row.Date()) && other.StartTime() == row.StartTime() {
					return infra.WrapRepoErr(s.logger, infra.KindDuplicateKey, "booked appointment already starts at this time", nil)
				}
			}
			return nil
		},
		apply: func() { s.appointments[row.ID()] = row },
	})
	return nil
}

// FindForUpdate holds the row lock until the transaction ends.
func (r *appointmentRepo) FindForUpdate(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	s := r.tx.store
	release, err := s.rows.AcquireWithin(ctx, id.String(), s.lockTimeout)
	if err != nil {
		if errs.Is(err, keylock.ErrTimeout) {
			return nil, infra.WrapRepoErr(s.logger, infra.KindLockTimeout, "waiting for appointment row", err)
		}
		return nil, err
	}
	r.tx.releases = append(r.tx.releases, release)
	return s.AppointmentByID(ctx, id)
}

func (r *appointmentRepo) UpdateStatus(_ context.Context, a *appointment.Appointment) error {
	s := r.tx.store
	row := *a
	r.tx.stage(op{
		check: func() error {
			if _, ok := s.appointments[row.ID()]; !ok {
				return infra.WrapRepoErr(s.logger, infra.KindNotFound, "appointment not found", nil)
			}
			return nil
		},
		apply: func() { s.appointments[row.ID()] = row },
	})
	return nil
}

type availabilityRepo struct {
	tx *memTx
}

func (r *availabilityRepo) Create(_ context.Context, a *availability.Availability) error {
	s := r.tx.store
	row := *a
	r.tx.stage(op{
		check: func() error {
			for _, other := range s.availability {
				if other.ProviderID() == row.ProviderID() && other.DayOfWeek() == row.DayOfWeek() {
					return infra.WrapRepoErr(s.logger, infra.KindDuplicateKey, "availability already exists for this weekday", nil)
				}
			}
			return nil
		},
		apply: func() { s.availability[row.ID()] = row },
	})
	return nil
}

func (r *availabilityRepo) FindByID(_ context.Context, id uuid.UUID) (*availability.Availability, error) {
	s := r.tx.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.availability[id]
	if !ok {
		return nil, infra.WrapRepoErr(s.logger, infra.KindNotFound, "availability not found", nil)
	}
	return &row, nil
}

func (r *availabilityRepo) SetActive(_ context.Context, a *availability.Availability) error {
	s := r.tx.store
	row := *a
	r.tx.stage(op{
		check: func() error {
			if _, ok := s.availability[row.ID()]; !ok {
				return infra.WrapRepoErr(s.logger, infra.KindNotFound, "availability not found", nil)
			}
			return nil
		},
		apply: func() { s.availability[row.ID()] = row },
	})
	return nil
}

type holidayRepo struct {
	tx *memTx
}

func (r *holidayRepo) Create(_ context.Context, h *availability.Holiday) error {
	s := r.tx.store
	row := *h
	r.tx.stage(op{
		check: func() error {
			for _, other := range s.holidays {
				if other.ProviderID() == row.ProviderID() && other.Date().Equal(row.Date()) {
					return infra.WrapRepoErr(s.logger, infra.KindDuplicateKey, "holiday already exists on this date", nil)
				}
			}
			return nil
		},
		apply: func() { s.holidays[row.ID()] = row },
	})
	return nil
}

func (r *holidayRepo) FindByID(_ context.Context, id uuid.UUID) (*availability.Holiday, error) {
	s := r.tx.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.holidays[id]
	if !ok {
		return nil, infra.WrapRepoErr(s.logger, infra.KindNotFound, "holiday not found", nil)
	}
	return &row, nil
}

func (r *holidayRepo) Delete(_ context.Context, id uuid.UUID) error {
	s := r.tx.store
	r.tx.stage(op{
		check: func() error {
			if _, ok := s.holidays[id]; !ok {
				return infra.WrapRepoErr(s.logger, infra.KindNotFound, "holiday not found", nil)
			}
			return nil
		},
		apply: func() { delete(s.holidays, id) },
	})
	return nil
}
