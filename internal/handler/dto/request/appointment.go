package request

import (
	"appointment-scheduler/internal/domain/civil"
	"appointment-scheduler/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateAppointmentRequest struct {
	ProviderID    uuid.UUID `json:"providerId" binding:"required"`
	Date          string    `json:"date" binding:"required"`
	StartTime     string    `json:"startTime" binding:"required"`
	CustomerName  string    `json:"customerName" binding:"required,max=200"`
	CustomerPhone string    `json:"customerPhone" binding:"omitempty,max=50"`
	ServiceType   string    `json:"serviceType" binding:"omitempty,max=100"`
	Notes         string    `json:"notes" binding:"omitempty,max=1000"`
}

func (r *CreateAppointmentRequest) ToCommand() (commands.CreateBookingRequest, error) {
	date, err := civil.ParseDate(r.Date)
	if err != nil {
		return commands.CreateBookingRequest{}, err
	}
	start, err := civil.ParseTimeOfDay(r.StartTime)
	if err != nil {
		return commands.CreateBookingRequest{}, err
	}
	return commands.CreateBookingRequest{
		ProviderID:    r.ProviderID,
		Date:          date,
		StartTime:     start,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		ServiceType:   r.ServiceType,
		Notes:         r.Notes,
	}, nil
}

type RescheduleAppointmentRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
}

func (r *RescheduleAppointmentRequest) ToCommand() (commands.RescheduleRequest, error) {
	date, err := civil.ParseDate(r.Date)
	if err != nil {
		return commands.RescheduleRequest{}, err
	}
	start, err := civil.ParseTimeOfDay(r.StartTime)
	if err != nil {
		return commands.RescheduleRequest{}, err
	}
	return commands.RescheduleRequest{Date: date, StartTime: start}, nil
}
