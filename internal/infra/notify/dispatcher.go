// Package notify hands notification attempts to a sink off the request path.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"appointment-scheduler/internal/domain/notification"
	"appointment-scheduler/internal/pkg/config"
)

const deliveryTimeout = 5 * time.Second

// Sink delivers one attempt. Implementations may block; the dispatcher bounds each call.
type Sink interface {
	Deliver(ctx context.Context, a notification.Attempt) error
}

// Dispatcher is a bounded queue drained by a single worker. Attempts that do not
// fit in the queue are dropped and logged.
type Dispatcher struct {
	sink   Sink
	logger *slog.Logger
	queue  chan notification.Attempt
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
	start  sync.Once
}

func NewDispatcher(sink Sink, cfg config.Config, logger *slog.Logger) *Dispatcher {
	size := cfg.Notify.QueueSize
	if size < 1 {
		size = 1
	}
	return &Dispatcher{
		sink:   sink,
		logger: logger,
		queue:  make(chan notification.Attempt, size),
		done:   make(chan struct{}),
	}
}

// Notify never blocks the caller.
func (d *Dispatcher) Notify(_ context.Context, a notification.Attempt) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.logger.Warn("notification dispatcher stopped, dropping attempt",
			"event_type", string(a.EventType),
			"appointment_id", a.AppointmentID.String())
		return
	}
	select {
	case d.queue <- a:
	default:
		d.logger.Warn("notification queue full, dropping attempt",
			"event_type", string(a.EventType),
			"appointment_id", a.AppointmentID.String(),
			"correlation_id", a.CorrelationID)
	}
}

func (d *Dispatcher) Start() {
	d.start.Do(func() { go d.run() })
}

// Stop closes the queue and waits for queued attempts to drain or ctx to end.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	d.Start()
	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for a := range d.queue {
		d.deliver(a)
	}
}

func (d *Dispatcher) deliver(a notification.Attempt) {
	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()

	if err := d.sink.Deliver(ctx, a); err != nil {
		d.logger.Warn("notification delivery failed",
			"event_type", string(a.EventType),
			"appointment_id", a.AppointmentID.String(),
			"correlation_id", a.CorrelationID,
			"error", err.Error())
	}
}
