package repository

import (
	"context"
	"log/slog"

	"appointment-scheduler/internal/domain/notification"
	"appointment-scheduler/internal/infra"
	"appointment-scheduler/internal/infra/db"
	"appointment-scheduler/internal/pkg/pgconv"
)

const insertNotificationLogSQL = `
INSERT INTO notification_logs (
    id, event_type, channel, recipient_id, appointment_id, subject, content,
    correlation_id, status, error_message, created_at, sent_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

// NotificationLogRepository appends delivery records; rows are never updated.
type NotificationLogRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewNotificationLogRepository(dbtx db.DBTX, logger *slog.Logger) *NotificationLogRepository {
	return &NotificationLogRepository{db: dbtx, logger: logger}
}

func (r *NotificationLogRepository) Insert(ctx context.Context, rec notification.Record) error {
	_, err := r.db.Exec(ctx, insertNotificationLogSQL,
		rec.ID, string(rec.EventType), string(rec.Channel), rec.RecipientID, rec.AppointmentID,
		rec.Subject, rec.Content, rec.CorrelationID, string(rec.Status),
		pgconv.StringToNullablePgtype(rec.ErrorMessage),
		pgconv.TimeToPgtype(rec.CreatedAt),
		pgconv.TimePtrToPgtype(rec.SentAt),
	)
	if err != nil {
		return infra.WrapPgErr(r.logger, "failed to insert notification log", err)
	}
	return nil
}
