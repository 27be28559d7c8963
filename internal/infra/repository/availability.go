package repository

import (
	"context"
	"log/slog"

	"appointment-scheduler/internal/domain/availability"
	"appointment-scheduler/internal/infra"
	"appointment-scheduler/internal/infra/db"
	"appointment-scheduler/internal/infra/readstore"
	"appointment-scheduler/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const insertAvailabilitySQL = `
INSERT INTO availability (
    id, provider_id, day_of_week, start_time, end_time, slot_minutes, breaks, is_active, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

const updateAvailabilityActiveSQL = `
UPDATE availability SET is_active = $2, updated_at = $3 WHERE id = $1`

type AvailabilityRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewAvailabilityRepository(dbtx db.DBTX, logger *slog.Logger) *AvailabilityRepository {
	return &AvailabilityRepository{db: dbtx, logger: logger}
}

func (r *AvailabilityRepository) Create(ctx context.Context, a *availability.Availability) error {
	breaks, err := readstore.EncodeBreaks(a.Breaks())
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to encode breaks", err)
	}
	_, err = r.db.Exec(ctx, insertAvailabilitySQL,
		a.ID(), a.ProviderID(), int16(a.DayOfWeek()),
		pgconv.TimeOfDayToPgtype(a.StartTime()),
		pgconv.TimeOfDayToPgtype(a.EndTime()),
		a.SlotMinutes(), breaks, a.IsActive(),
		pgconv.TimeToPgtype(a.CreatedAt()),
		pgconv.TimeToPgtype(a.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapPgErr(r.logger, "failed to create availability", err)
	}
	return nil
}

func (r *AvailabilityRepository) FindByID(ctx context.Context, id uuid.UUID) (*availability.Availability, error) {
	row := r.db.QueryRow(ctx, readstore.SelectAvailabilitySQL+` WHERE id = $1`, id)
	a, err := readstore.ScanAvailability(row)
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to find availability", err)
	}
	return a, nil
}

func (r *AvailabilityRepository) SetActive(ctx context.Context, a *availability.Availability) error {
	tag, err := r.db.Exec(ctx, updateAvailabilityActiveSQL, a.ID(), a.IsActive(), pgconv.TimeToPgtype(a.UpdatedAt()))
	if err != nil {
		return infra.WrapPgErr(r.logger, "failed to update availability", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "availability not found", nil)
	}
	return nil
}
