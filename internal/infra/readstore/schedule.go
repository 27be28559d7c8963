package readstore

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"appointment-scheduler/internal/domain/availability"
	"appointment-scheduler/internal/domain/civil"
	"appointment-scheduler/internal/infra"
	"appointment-scheduler/internal/infra/db"
	"appointment-scheduler/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const SelectAvailabilitySQL = `
SELECT id, provider_id, day_of_week, start_time, end_time, slot_minutes, breaks, is_active, created_at, updated_at
FROM availability`

const SelectHolidaySQL = `
SELECT id, provider_id, holiday_date, holiday_type, start_time, end_time, reason, created_at
FROM holidays`

// breakJSON is the element shape of the availability.breaks column.
type breakJSON struct {
	Start civil.TimeOfDay `json:"start"`
	End   civil.TimeOfDay `json:"end"`
}

func EncodeBreaks(breaks []availability.BreakTime) ([]byte, error) {
	out := make([]breakJSON, 0, len(breaks))
	for _, b := range breaks {
		out = append(out, breakJSON{Start: b.Start, End: b.End})
	}
	return json.Marshal(out)
}

func decodeBreaks(raw []byte) ([]availability.BreakTime, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var in []breakJSON
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, err
	}
	out := make([]availability.BreakTime, 0, len(in))
	for _, b := range in {
		out = append(out, availability.BreakTime{Start: b.Start, End: b.End})
	}
	return out, nil
}

func ScanAvailability(row pgx.Row) (*availability.Availability, error) {
	var (
		id, providerID       uuid.UUID
		day                  int16
		start, end           pgtype.Time
		slotMinutes          int32
		breaksRaw            []byte
		active               bool
		createdAt, updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(&id, &providerID, &day, &start, &end, &slotMinutes, &breaksRaw, &active, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	breaks, err := decodeBreaks(breaksRaw)
	if err != nil {
		return nil, err
	}
	return availability.ReconstructAvailability(
		id, providerID, time.Weekday(day),
		pgconv.TimeOfDayFromPgtype(start),
		pgconv.TimeOfDayFromPgtype(end),
		int(slotMinutes), breaks, active,
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}

func ScanHoliday(row pgx.Row) (*availability.Holiday, error) {
	var (
		id, providerID uuid.UUID
		date           pgtype.Date
		kind           string
		start, end     pgtype.Time
		reason         string
		createdAt      pgtype.Timestamptz
	)
	if err := row.Scan(&id, &providerID, &date, &kind, &start, &end, &reason, &createdAt); err != nil {
		return nil, err
	}
	return availability.ReconstructHoliday(
		id, providerID,
		pgconv.DateFromPgtype(date),
		availability.HolidayType(kind),
		pgconv.TimeOfDayPtrFromPgtype(start),
		pgconv.TimeOfDayPtrFromPgtype(end),
		reason,
		pgconv.TimeFromPgtype(createdAt),
	), nil
}

type ScheduleReadStore struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewScheduleReadStore(dbtx db.DBTX, logger *slog.Logger) *ScheduleReadStore {
	return &ScheduleReadStore{db: dbtx, logger: logger}
}

func (r *ScheduleReadStore) AvailabilityFor(ctx context.Context, providerID uuid.UUID, day time.Weekday) ([]*availability.Availability, error) {
	return r.availability(ctx, SelectAvailabilitySQL+` WHERE provider_id = $1 AND day_of_week = $2 ORDER BY id`,
		providerID, int16(day))
}

func (r *ScheduleReadStore) ListAvailability(ctx context.Context, providerID uuid.UUID) ([]*availability.Availability, error) {
	return r.availability(ctx, SelectAvailabilitySQL+` WHERE provider_id = $1 ORDER BY day_of_week, id`, providerID)
}

func (r *ScheduleReadStore) HolidaysBetween(ctx context.Context, providerID uuid.UUID, from, to civil.Date) ([]*availability.Holiday, error) {
	const msg = "failed to list holidays"
	rows, err := r.db.Query(ctx, SelectHolidaySQL+` WHERE provider_id = $1 AND holiday_date BETWEEN $2 AND $3 ORDER BY holiday_date`,
		providerID, pgconv.DateToPgtype(from), pgconv.DateToPgtype(to))
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, msg, err)
	}
	defer rows.Close()

	var out []*availability.Holiday
	for rows.Next() {
		h, err := ScanHoliday(rows)
		if err != nil {
			return nil, infra.WrapPgErr(r.logger, msg, err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapPgErr(r.logger, msg, err)
	}
	return out, nil
}

func (r *ScheduleReadStore) availability(ctx context.Context, sql string, args ...any) ([]*availability.Availability, error) {
	const msg = "failed to list availability"
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, msg, err)
	}
	defer rows.Close()

	var out []*availability.Availability
	for rows.Next() {
		a, err := ScanAvailability(rows)
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
