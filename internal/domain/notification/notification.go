// Package notification models attempts handed to the notification sink and the records it keeps.
package notification

import (
	"fmt"
	"time"

	"appointment-scheduler/internal/domain/appointment"

	"github.com/google/uuid"
)

type EventType string

const (
	EventBooked    EventType = "APPOINTMENT_BOOKED"
	EventCancelled EventType = "APPOINTMENT_CANCELLED"
	EventReminder  EventType = "APPOINTMENT_REMINDER"
)

type Channel string

const (
	ChannelEmail Channel = "EMAIL"
	ChannelSMS   Channel = "SMS"
	ChannelPush  Channel = "PUSH"
	ChannelInApp Channel = "IN_APP"
)

type Status string

const (
	StatusSent   Status = "SENT"
	StatusFailed Status = "FAILED"
)

// Attempt is one message to deliver.
type Attempt struct {
	EventType     EventType
	Channel       Channel
	RecipientID   uuid.UUID
	AppointmentID uuid.UUID
	Subject       string
	Content       string
	CorrelationID string
}

// Record is what a sink stores after trying to deliver an Attempt.
type Record struct {
	ID uuid.UUID
	Attempt
	Status       Status
	ErrorMessage string
	CreatedAt    time.Time
	SentAt       *time.Time
}

func NewRecord(a Attempt, deliveryErr error, now time.Time) Record {
	r := Record{
		ID:        uuid.New(),
		Attempt:   a,
		Status:    StatusSent,
		CreatedAt: now,
	}
	if deliveryErr != nil {
		r.Status = StatusFailed
		r.ErrorMessage = deliveryErr.Error()
		return r
	}
	r.SentAt = &now
	return r
}

func Booked(a *appointment.Appointment, correlationID string) Attempt {
	return Attempt{
		EventType:     EventBooked,
		Channel:       ChannelInApp,
		RecipientID:   a.CustomerID(),
		AppointmentID: a.ID(),
		Subject:       "Appointment Booked",
		Content:       fmt.Sprintf("Your appointment on %s at %s is confirmed.", a.Date(), a.StartTime()),
		CorrelationID: correlationID,
	}
}

func Cancelled(a *appointment.Appointment, correlationID string) Attempt {
	return Attempt{
		EventType:     EventCancelled,
		Channel:       ChannelInApp,
		RecipientID:   a.CustomerID(),
		AppointmentID: a.ID(),
		Subject:       "Appointment Cancelled",
		Content:       fmt.Sprintf("Your appointment on %s at %s has been cancelled.", a.Date(), a.StartTime()),
		CorrelationID: correlationID,
	}
}

func Reminder(a *appointment.Appointment, correlationID string) Attempt {
	return Attempt{
		EventType:     EventReminder,
		Channel:       ChannelInApp,
		RecipientID:   a.CustomerID(),
		AppointmentID: a.ID(),
		Subject:       "Appointment Reminder",
		Content:       fmt.Sprintf("Reminder: you have an upcoming appointment on %s at %s.", a.Date(), a.StartTime()),
		CorrelationID: correlationID,
	}
}
