package repository

import (
	"context"
	"log/slog"

	"appointment-scheduler/internal/domain/appointment"
	"appointment-scheduler/internal/infra"
	"appointment-scheduler/internal/infra/db"
	"appointment-scheduler/internal/infra/readstore"
	"appointment-scheduler/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const insertAppointmentSQL = `
INSERT INTO appointments (
    id, customer_id, provider_id, appointment_date, start_time, end_time, status,
    customer_name, customer_phone, service_type, notes, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

const updateAppointmentStatusSQL = `
UPDATE appointments SET status = $2, updated_at = $3 WHERE id = $1`

type AppointmentRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewAppointmentRepository(dbtx db.DBTX, logger *slog.Logger) *AppointmentRepository {
	return &AppointmentRepository{db: dbtx, logger: logger}
}

func (r *AppointmentRepository) Create(ctx context.Context, a *appointment.Appointment) error {
	svc := a.Service()
	_, err := r.db.Exec(ctx, insertAppointmentSQL,
		a.ID(), a.CustomerID(), a.ProviderID(),
		pgconv.DateToPgtype(a.Date()),
		pgconv.TimeOfDayToPgtype(a.StartTime()),
		pgconv.TimeOfDayToPgtype(a.EndTime()),
		a.Status().String(),
		svc.CustomerName, svc.CustomerPhone, svc.ServiceType, svc.Notes,
		pgconv.TimeToPgtype(a.CreatedAt()),
		pgconv.TimeToPgtype(a.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapPgErr(r.logger, "failed to create appointment", err)
	}
	return nil
}

// FindForUpdate row-locks the appointment until the surrounding transaction ends.
func (r *AppointmentRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	row := r.db.QueryRow(ctx, readstore.SelectAppointmentSQL+` WHERE id = $1 FOR UPDATE`, id)
	a, err := readstore.ScanAppointment(row)
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to lock appointment", err)
	}
	return a, nil
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, a *appointment.Appointment) error {
	tag, err := r.db.Exec(ctx, updateAppointmentStatusSQL, a.ID(), a.Status().String(), pgconv.TimeToPgtype(a.UpdatedAt()))
	if err != nil {
		return infra.WrapPgErr(r.logger, "failed to update appointment status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "appointment not found", nil)
	}
	return nil
}
