package memstore

import (
	"context"

	"appointment-scheduler/internal/domain/civil"
	"appointment-scheduler/internal/infra"
	"appointment-scheduler/internal/pkg/errs"
	"appointment-scheduler/internal/pkg/keylock"
	"appointment-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

type UoW struct {
	store *Store
}

func NewUoW(store *Store) shared.UnitOfWork {
	return &UoW{store: store}
}

// Within stages writes and applies them atomically when fn succeeds.
func (u *UoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	tx := &memTx{store: u.store}
	defer tx.release()

	if err := fn(ctx, tx); err != nil {
		return err
	}
	return tx.commit()
}

func (u *UoW) WithinProviderDay(ctx context.Context, providerID uuid.UUID, date civil.Date, fn func(ctx context.Context, tx shared.Tx) error) error {
	key := dayKey(providerID, date)
	release, err := u.store.days.AcquireWithin(ctx, key, u.store.lockTimeout)
	if err != nil {
		if errs.Is(err, keylock.ErrTimeout) {
			return infra.WrapRepoErr(u.store.logger, infra.KindLockTimeout, "waiting for booking scope "+key, err)
		}
		return err
	}
	defer release()

	return u.Within(ctx, fn)
}

func (u *UoW) Reads() shared.Reads {
	return u.store
}

// op is a staged write. check runs against committed state before any apply.
type op struct {
	check func() error
	apply func()
}

type memTx struct {
	store    *Store
	ops      []op
	releases []func()
}

func (t *memTx) stage(o op) {
	t.ops = append(t.ops, o)
}

func (t *memTx) commit() error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	for _, o := range t.ops {
		if o.check == nil {
			continue
		}
		if err := o.check(); err != nil {
			return err
		}
	}
	for _, o := range t.ops {
		o.apply()
	}
	return nil
}

func (t *memTx) release() {
	for i := len(t.releases) - 1; i >= 0; i-- {
		t.releases[i]()
	}
}

func (t *memTx) Appointments() shared.AppointmentRepository  { return &appointmentRepo{tx: t} }
func (t *memTx) Availability() shared.AvailabilityRepository { return &availabilityRepo{tx: t} }
func (t *memTx) Holidays() shared.HolidayRepository          { return &holidayRepo{tx: t} }
func (t *memTx) Reads() shared.Reads                         { return t.store }
