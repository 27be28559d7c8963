package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"appointment-scheduler/internal/domain/notification"
	"appointment-scheduler/internal/pkg/clock"
	"appointment-scheduler/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

// LogSink writes each attempt as a structured log line.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Deliver(_ context.Context, a notification.Attempt) error {
	s.logger.Info("notification",
		"event_type", string(a.EventType),
		"channel", string(a.Channel),
		"recipient_id", a.RecipientID.String(),
		"appointment_id", a.AppointmentID.String(),
		"subject", a.Subject,
		"content", a.Content,
		"correlation_id", a.CorrelationID)
	return nil
}

// RecordWriter stores delivery records, e.g. the notification_logs table.
type RecordWriter interface {
	Insert(ctx context.Context, rec notification.Record) error
}

// RecordSink treats the stored record as the in-app delivery.
type RecordSink struct {
	writer RecordWriter
	clock  clock.Clock
}

func NewRecordSink(writer RecordWriter, clk clock.Clock) *RecordSink {
	return &RecordSink{writer: writer, clock: clk}
}

func (s *RecordSink) Deliver(ctx context.Context, a notification.Attempt) error {
	return s.writer.Insert(ctx, notification.NewRecord(a, nil, s.clock.Now().UTC()))
}

// MessageWriter is the part of *kafka.Writer the sink uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink publishes attempts keyed by appointment id so events of one appointment stay ordered.
type KafkaSink struct {
	writer MessageWriter
	clock  clock.Clock
}

func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}
}

func NewKafkaSink(writer MessageWriter, clk clock.Clock) *KafkaSink {
	return &KafkaSink{writer: writer, clock: clk}
}

func (s *KafkaSink) Deliver(ctx context.Context, a notification.Attempt) error {
	msg, err := KafkaMessage(a, s.clock.Now().UTC())
	if err != nil {
		return err
	}
	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		return errs.Wrapf(err, "publish %s for appointment %s", a.EventType, a.AppointmentID)
	}
	return nil
}

func (s *KafkaSink) Close() error {
	return s.writer.Close()
}

type kafkaEvent struct {
	EventType     string    `json:"event_type"`
	Channel       string    `json:"channel"`
	RecipientID   string    `json:"recipient_id"`
	AppointmentID string    `json:"appointment_id"`
	Subject       string    `json:"subject"`
	Content       string    `json:"content"`
	CorrelationID string    `json:"correlation_id,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func KafkaMessage(a notification.Attempt, now time.Time) (kafka.Message, error) {
	payload, err := json.Marshal(kafkaEvent{
		EventType:     string(a.EventType),
		Channel:       string(a.Channel),
		RecipientID:   a.RecipientID.String(),
		AppointmentID: a.AppointmentID.String(),
		Subject:       a.Subject,
		Content:       a.Content,
		CorrelationID: a.CorrelationID,
		OccurredAt:    now,
	})
	if err != nil {
		return kafka.Message{}, errs.Wrap(err, "encode notification event")
	}
	return kafka.Message{
		Key:   []byte(a.AppointmentID.String()),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(a.EventType)},
			{Key: "correlation_id", Value: []byte(a.CorrelationID)},
		},
		Time: now,
	}, nil
}
