package appointment

import (
	"strings"

	"appointment-scheduler/internal/pkg/errs"
)

const (
	MaxCustomerNameLength = 200
	MaxPhoneLength        = 32
	MaxServiceTypeLength  = 100
	MaxNotesLength        = 1000
)

var (
	ErrCustomerNameRequired = errs.Kind(errs.ErrValidation, "customer name is required")
	ErrServiceFieldTooLong  = errs.Kind(errs.ErrValidation, "service metadata field too long")
)

// ServiceMetadata describes what the customer booked. It does not affect scheduling.
type ServiceMetadata struct {
	CustomerName  string
	CustomerPhone string
	ServiceType   string
	Notes         string
}

func NewServiceMetadata(name, phone, serviceType, notes string) (ServiceMetadata, error) {
	m := ServiceMetadata{
		CustomerName:  strings.TrimSpace(name),
		CustomerPhone: strings.TrimSpace(phone),
		ServiceType:   strings.TrimSpace(serviceType),
		Notes:         strings.TrimSpace(notes),
	}
	if m.CustomerName == "" {
		return ServiceMetadata{}, ErrCustomerNameRequired
	}
	limits := []struct {
		field string
		value string
		max   int
	}{
		{"customer name", m.CustomerName, MaxCustomerNameLength},
		{"customer phone", m.CustomerPhone, MaxPhoneLength},
		{"service type", m.ServiceType, MaxServiceTypeLength},
		{"notes", m.Notes, MaxNotesLength},
	}
	for _, l := range limits {
		if len([]rune(l.value)) > l.max {
			return ServiceMetadata{}, errs.Wrapf(ErrServiceFieldTooLong, "%s exceeds %d characters", l.field, l.max)
		}
	}
	return m, nil
}
