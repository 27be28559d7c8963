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

const insertHolidaySQL = `
INSERT INTO holidays (id, provider_id, holiday_date, holiday_type, start_time, end_time, reason, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

type HolidayRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewHolidayRepository(dbtx db.DBTX, logger *slog.Logger) *HolidayRepository {
	return &HolidayRepository{db: dbtx, logger: logger}
}

func (r *HolidayRepository) Create(ctx context.Context, h *availability.Holiday) error {
	_, err := r.db.Exec(ctx, insertHolidaySQL,
		h.ID(), h.ProviderID(),
		pgconv.DateToPgtype(h.Date()),
		h.Type().String(),
		pgconv.TimeOfDayPtrToPgtype(h.StartTime()),
		pgconv.TimeOfDayPtrToPgtype(h.EndTime()),
		h.Reason(),
		pgconv.TimeToPgtype(h.CreatedAt()),
	)
	if err != nil {
		return infra.WrapPgErr(r.logger, "failed to create holiday", err)
	}
	return nil
}

func (r *HolidayRepository) FindByID(ctx context.Context, id uuid.UUID) (*availability.Holiday, error) {
	row := r.db.QueryRow(ctx, readstore.SelectHolidaySQL+` WHERE id = $1`, id)
	h, err := readstore.ScanHoliday(row)
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to find holiday", err)
	}
	return h, nil
}

func (r *HolidayRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return infra.WrapPgErr(r.logger, "failed to delete holiday", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "holiday not found", nil)
	}
	return nil
}
