package readstore

import (
	"context"
	"log/slog"
	"time"

	"appointment-scheduler/internal/domain/appointment"
	"appointment-scheduler/internal/domain/civil"
	"appointment-scheduler/internal/infra"
	"appointment-scheduler/internal/infra/db"
	"appointment-scheduler/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const SelectAppointmentSQL = `
SELECT id, customer_id, provider_id, appointment_date, start_time, end_time, status,
       customer_name, customer_phone, service_type, notes, created_at, updated_at
FROM appointments`

const bookedIntervalsSQL = `
SELECT start_time, end_time
FROM appointments
WHERE provider_id = $1 AND appointment_date = $2 AND status = 'BOOKED'
ORDER BY start_time`

const orderAppointmentsSQL = ` ORDER BY appointment_date, start_time, id`

// ScanAppointment reads one row selected with SelectAppointmentSQL.
func ScanAppointment(row pgx.Row) (*appointment.Appointment, error) {
	var (
		id, customerID, providerID      uuid.UUID
		date                            pgtype.Date
		start, end                      pgtype.Time
		status                          string
		name, phone, serviceType, notes string
		createdAt, updatedAt            pgtype.Timestamptz
	)
	if err := row.Scan(&id, &customerID, &providerID, &date, &start, &end, &status,
		&name, &phone, &serviceType, &notes, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	st, err := appointment.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	return appointment.ReconstructAppointment(
		id, customerID, providerID,
		pgconv.DateFromPgtype(date),
		pgconv.TimeOfDayFromPgtype(start),
		pgconv.TimeOfDayFromPgtype(end),
		st,
		appointment.ServiceMetadata{
			CustomerName:  name,
			CustomerPhone: phone,
			ServiceType:   serviceType,
			Notes:         notes,
		},
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}

type AppointmentReadStore struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewAppointmentReadStore(dbtx db.DBTX, logger *slog.Logger) *AppointmentReadStore {
	return &AppointmentReadStore{db: dbtx, logger: logger}
}

func (r *AppointmentReadStore) FindByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	a, err := ScanAppointment(r.db.QueryRow(ctx, SelectAppointmentSQL+` WHERE id = $1`, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "appointment not found", err)
		}
		return nil, infra.WrapPgErr(r.logger, "failed to find appointment by ID", err)
	}
	return a, nil
}

func (r *AppointmentReadStore) BookedIntervals(ctx context.Context, providerID uuid.UUID, date civil.Date) ([]civil.Interval, error) {
	rows, err := r.db.Query(ctx, bookedIntervalsSQL, providerID, pgconv.DateToPgtype(date))
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to list booked intervals", err)
	}
	defer rows.Close()

	var out []civil.Interval
	for rows.Next() {
		var start, end pgtype.Time
		if err := rows.Scan(&start, &end); err != nil {
			return nil, infra.WrapPgErr(r.logger, "failed to scan booked interval", err)
		}
		out = append(out, civil.Interval{
			Start: pgconv.TimeOfDayFromPgtype(start).Minutes(),
			End:   pgconv.TimeOfDayFromPgtype(end).Minutes(),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to list booked intervals", err)
	}
	return out, nil
}

func (r *AppointmentReadStore) FindInRange(ctx context.Context, providerID uuid.UUID, from, to civil.Date) ([]*appointment.Appointment, error) {
	return r.list(ctx, "failed to list appointments in range",
		SelectAppointmentSQL+` WHERE provider_id = $1 AND appointment_date BETWEEN $2 AND $3`+orderAppointmentsSQL,
		providerID, pgconv.DateToPgtype(from), pgconv.DateToPgtype(to))
}

// FindBookedStartingBetween compares naive start instants, so from and to are wall-clock readings.
func (r *AppointmentReadStore) FindBookedStartingBetween(ctx context.Context, from, to time.Time) ([]*appointment.Appointment, error) {
	return r.list(ctx, "failed to list upcoming appointments",
		SelectAppointmentSQL+` WHERE status = 'BOOKED'
  AND (appointment_date + start_time) >= $1
  AND (appointment_date + start_time) < $2`+orderAppointmentsSQL,
		pgconv.NaiveToPgtype(from), pgconv.NaiveToPgtype(to))
}

func (r *AppointmentReadStore) list(ctx context.Context, msg, sql string, args ...any) ([]*appointment.Appointment, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, msg, err)
	}
	defer rows.Close()

	var out []*appointment.Appointment
	for rows.Next() {
		a, err := ScanAppointment(rows)
		if err != nil {
			return nil, infra.WrapPgErr(r.logger, msg, err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapPgErr(r.logger, msg, err)
	}
	return out, nil
}
