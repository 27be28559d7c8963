// Package memstore keeps appointments and schedules in process memory. It implements
// the same ports as the PostgreSQL store and is used for tests and single-node runs.
package memstore

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"appointment-scheduler/internal/domain/appointment"
	"appointment-scheduler/internal/domain/availability"
	"appointment-scheduler/internal/domain/civil"
	"appointment-scheduler/internal/pkg/config"
	"appointment-scheduler/internal/pkg/keylock"

	"github.com/google/uuid"
)

type Store struct {
	mu           sync.RWMutex
	appointments map[uuid.UUID]appointment.Appointment
	availability map[uuid.UUID]availability.Availability
	holidays     map[uuid.UUID]availability.Holiday

	// days serializes bookings per (provider, date); rows guards single appointments.
	days        *keylock.Table
	rows        *keylock.Table
	lockTimeout time.Duration
	logger      *slog.Logger
}

func NewStore(cfg config.Config, logger *slog.Logger) *Store {
	return &Store{
		appointments: make(map[uuid.UUID]appointment.Appointment),
		availability: make(map[uuid.UUID]availability.Availability),
		holidays:     make(map[uuid.UUID]availability.Holiday),
		days:         keylock.New(),
		rows:         keylock.New(),
		lockTimeout:  cfg.Booking.LockTimeout,
		logger:       logger,
	}
}

func dayKey(providerID uuid.UUID, date civil.Date) string {
	return fmt.Sprintf("%s|%s", providerID, date)
}
