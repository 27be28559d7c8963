package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"appointment-scheduler/internal/domain/civil"
	"appointment-scheduler/internal/infra"
	"appointment-scheduler/internal/infra/db"
	"appointment-scheduler/internal/infra/readstore"
	"appointment-scheduler/internal/infra/repository"
	"appointment-scheduler/internal/pkg/config"
	"appointment-scheduler/internal/pkg/errs"
	"appointment-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	setLockTimeoutSQL = `SELECT set_config('lock_timeout', $1, true)`
	// The booking scope of one provider day is a transaction-level advisory lock.
	lockProviderDaySQL = `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool        *pgxpool.Pool
	logger      *slog.Logger
	lockTimeout time.Duration
}

func NewPostgresUoW(pool *pgxpool.Pool, cfg config.Config, logger *slog.Logger) shared.UnitOfWork {
	return &PostgresUoW{
		pool:        pool,
		logger:      logger,
		lockTimeout: cfg.Booking.LockTimeout,
	}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// WithinProviderDay takes the provider-day advisory lock before fn runs. Every
// statement of the transaction sees the bookings committed before the lock was granted.
func (u *PostgresUoW) WithinProviderDay(ctx context.Context, providerID uuid.UUID, date civil.Date, fn func(ctx context.Context, tx shared.Tx) error) error {
	key := fmt.Sprintf("%s|%s", providerID, date)
	return u.runInTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.(*pgTx).dbtx.Exec(ctx, lockProviderDaySQL, key); err != nil {
			return infra.WrapPgErr(u.logger, "waiting for booking scope "+key, err)
		}
		return fn(ctx, tx)
	})
}

func (u *PostgresUoW) Reads() shared.Reads {
	return readstore.NewReads(u.pool, u.logger)
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return infra.WrapRepoErr(u.logger, infra.KindDBFailure, "begin transaction", errs.Mark(err, errTransactionBegin))
		}

		tx := &pgTx{dbtx: pgxTx, logger: u.logger}

		err = u.boundLockWaits(ctx, pgxTx)
		if err == nil {
			err = fn(ctx, tx)
		}
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = infra.WrapPgErr(u.logger, "commit transaction", errs.Mark(err, errTransactionCommit))
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

// boundLockWaits makes row and advisory lock waits fail with 55P03 instead of blocking.
func (u *PostgresUoW) boundLockWaits(ctx context.Context, tx pgx.Tx) error {
	if u.lockTimeout <= 0 {
		return nil
	}
	ms := fmt.Sprintf("%dms", u.lockTimeout.Milliseconds())
	if _, err := tx.Exec(ctx, setLockTimeoutSQL, ms); err != nil {
		return infra.WrapPgErr(u.logger, "set lock timeout", err)
	}
	return nil
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	// Mask the sign bit so the conversion stays positive.
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- masked above
	return int64(uval) % n
}

// Serialization failures and deadlocks are classified as KindConflict.
func isRetryableError(err error) bool {
	return infra.IsKind(err, infra.KindConflict)
}

type pgTx struct {
	dbtx   db.DBTX
	logger *slog.Logger

	// Lazy-initialized repositories
	appointmentRepo  shared.AppointmentRepository
	availabilityRepo shared.AvailabilityRepository
	holidayRepo      shared.HolidayRepository
	reads            shared.Reads
}

func (t *pgTx) Appointments() shared.AppointmentRepository {
	if t.appointmentRepo == nil {
		t.appointmentRepo = repository.NewAppointmentRepository(t.dbtx, t.logger)
	}
	return t.appointmentRepo
}

func (t *pgTx) Availability() shared.AvailabilityRepository {
	if t.availabilityRepo == nil {
		t.availabilityRepo = repository.NewAvailabilityRepository(t.dbtx, t.logger)
	}
	return t.availabilityRepo
}

func (t *pgTx) Holidays() shared.HolidayRepository {
	if t.holidayRepo == nil {
		t.holidayRepo = repository.NewHolidayRepository(t.dbtx, t.logger)
	}
	return t.holidayRepo
}

func (t *pgTx) Reads() shared.Reads {
	if t.reads == nil {
		t.reads = readstore.NewReads(t.dbtx, t.logger)
	}
	return t.reads
}
