//go:build unit || e2e

package builder

import (
	"time"

	"appointment-scheduler/internal/domain/appointment"
	"appointment-scheduler/internal/domain/civil"
	reqdto "appointment-scheduler/internal/handler/dto/request"
	"appointment-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
)

type AppointmentBuilder struct {
	ID              uuid.UUID
	CustomerID      uuid.UUID
	ProviderID      uuid.UUID
	Date            civil.Date
	Start           civil.TimeOfDay
	DurationMinutes int
	Status          appointment.Status
	CustomerName    string
	CustomerPhone   string
	ServiceType     string
	Notes           string
	CreatedAt       time.Time
}

func NewAppointmentBuilder() *AppointmentBuilder {
	return &AppointmentBuilder{
		ID:              uuid.New(),
		CustomerID:      uuid.New(),
		ProviderID:      uuid.New(),
		Date:            civil.NewDate(2025, time.August, 4), // Monday
		Start:           civil.MustTimeOfDay(9, 0),
		DurationMinutes: 30,
		Status:          appointment.StatusBooked,
		CustomerName:    "Aisha Al Balushi",
		CustomerPhone:   "+968 9000 0000",
		ServiceType:     "consultation",
		Notes:           "first visit",
		CreatedAt:       time.Date(2025, time.August, 1, 8, 0, 0, 0, time.UTC),
	}
}

func (b *AppointmentBuilder) With(mutate func(*AppointmentBuilder)) *AppointmentBuilder {
	mutate(b)
	return b
}

func (b *AppointmentBuilder) BuildService() (appointment.ServiceMetadata, error) {
	return appointment.NewServiceMetadata(b.CustomerName, b.CustomerPhone, b.ServiceType, b.Notes)
}

// Build methods
func (b *AppointmentBuilder) BuildDomain() (*appointment.Appointment, error) {
	svc, err := b.BuildService()
	if err != nil {
		return nil, err
	}
	return appointment.NewAppointment(b.CustomerID, b.ProviderID, b.Date, b.Start, b.DurationMinutes, svc, b.CreatedAt)
}

// BuildReconstructed skips validation and keeps ID and Status as set on the builder.
func (b *AppointmentBuilder) BuildReconstructed() *appointment.Appointment {
	return appointment.ReconstructAppointment(
		b.ID, b.CustomerID, b.ProviderID,
		b.Date, b.Start, civil.TimeOfDay(b.Start.Minutes()+b.DurationMinutes),
		b.Status,
		appointment.ServiceMetadata{
			CustomerName:  b.CustomerName,
			CustomerPhone: b.CustomerPhone,
			ServiceType:   b.ServiceType,
			Notes:         b.Notes,
		},
		b.CreatedAt, b.CreatedAt,
	)
}

func (b *AppointmentBuilder) BuildView() *queries.AppointmentView {
	return queries.AppointmentViewOf(b.BuildReconstructed())
}

func (b *AppointmentBuilder) BuildCreateRequestDTO() reqdto.CreateAppointmentRequest {
	return reqdto.CreateAppointmentRequest{
		ProviderID:    b.ProviderID,
		Date:          b.Date.String(),
		StartTime:     b.Start.String(),
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		ServiceType:   b.ServiceType,
		Notes:         b.Notes,
	}
}
