//go:build unit

// Package scenario wires use cases onto the in-memory store with a fixed clock.
package scenario

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"appointment-scheduler/internal/domain/availability"
	"appointment-scheduler/internal/domain/cancellation"
	"appointment-scheduler/internal/domain/civil"
	"appointment-scheduler/internal/domain/notification"
	"appointment-scheduler/internal/infra/memstore"
	"appointment-scheduler/internal/pkg/clock"
	"appointment-scheduler/internal/pkg/config"
	"appointment-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Friday 2025-08-01 08:00 UTC; Monday 2025-08-04 is three days out.
var DefaultNow = time.Date(2025, time.August, 1, 8, 0, 0, 0, time.UTC)

var Monday = civil.NewDate(2025, time.August, 4)

type Harness struct {
	Config   config.Config
	UoW      shared.UnitOfWork
	Clock    *clock.MockClock
	Schedule *shared.ScheduleClock
	Settings shared.ScheduleSettings
	Notifier *RecordingNotifier
	Policies *StaticPolicies
}

func New(t *testing.T, mutate ...func(*config.Config)) *Harness {
	t.Helper()
	cfg := config.NewTestConfig()
	for _, m := range mutate {
		m(&cfg)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mc := clock.NewMockClock(DefaultNow)
	sc, err := shared.NewScheduleClock(mc, cfg)
	require.NoError(t, err)

	return &Harness{
		Config:   cfg,
		UoW:      memstore.NewUoW(memstore.NewStore(cfg, logger)),
		Clock:    mc,
		Schedule: sc,
		Settings: shared.NewScheduleSettings(cfg),
		Notifier: &RecordingNotifier{},
		Policies: &StaticPolicies{Default: cancellation.DefaultPolicy()},
	}
}

// Open stores an active availability row for providerID.
func (h *Harness) Open(t *testing.T, providerID uuid.UUID, day time.Weekday, start, end string, slotMinutes int, breaks ...availability.BreakTime) *availability.Availability {
	t.Helper()
	a, err := availability.NewAvailability(providerID, day, tod(t, start), tod(t, end), slotMinutes, breaks, h.Clock.Now())
	require.NoError(t, err)
	require.NoError(t, h.UoW.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		return tx.Availability().Create(ctx, a)
	}))
	return a
}

// Close stores a holiday; empty start and end make it a full day.
func (h *Harness) Close(t *testing.T, providerID uuid.UUID, date civil.Date, start, end string) *availability.Holiday {
	t.Helper()
	kind := availability.FullDay
	var from, to *civil.TimeOfDay
	if start != "" {
		kind = availability.PartialDay
		s, e := tod(t, start), tod(t, end)
		from, to = &s, &e
	}
	hol, err := availability.NewHoliday(providerID, date, kind, from, to, "closed", h.Clock.Now())
	require.NoError(t, err)
	require.NoError(t, h.UoW.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		return tx.Holidays().Create(ctx, hol)
	}))
	return hol
}

// At moves the clock to the civil instant date+hh:mm in the schedule zone.
func (h *Harness) At(t *testing.T, date civil.Date, hhmm string) {
	t.Helper()
	loc, err := h.Config.Booking.Location()
	require.NoError(t, err)
	wall := date.At(tod(t, hhmm))
	h.Clock.Set(time.Date(wall.Year(), wall.Month(), wall.Day(), wall.Hour(), wall.Minute(), 0, 0, loc))
}

func Break(t *testing.T, start, end string) availability.BreakTime {
	t.Helper()
	return availability.BreakTime{Start: tod(t, start), End: tod(t, end)}
}

func Times(t *testing.T, values ...string) []civil.TimeOfDay {
	t.Helper()
	out := make([]civil.TimeOfDay, 0, len(values))
	for _, v := range values {
		out = append(out, tod(t, v))
	}
	return out
}

func tod(t *testing.T, s string) civil.TimeOfDay {
	t.Helper()
	v, err := civil.ParseTimeOfDay(s)
	require.NoError(t, err)
	return v
}

type RecordingNotifier struct {
	mu       sync.Mutex
	attempts []notification.Attempt
}

func (n *RecordingNotifier) Notify(_ context.Context, a notification.Attempt) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.attempts = append(n.attempts, a)
}

func (n *RecordingNotifier) Events() []notification.EventType {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]notification.EventType, 0, len(n.attempts))
	for _, a := range n.attempts {
		out = append(out, a.EventType)
	}
	return out
}

func (n *RecordingNotifier) Attempts() []notification.Attempt {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notification.Attempt(nil), n.attempts...)
}

// StaticPolicies serves per-provider policies; Err makes every lookup fail.
type StaticPolicies struct {
	mu       sync.Mutex
	Default  cancellation.Policy
	Provider map[uuid.UUID]cancellation.Policy
	Err      error
}

func (p *StaticPolicies) PolicyFor(_ context.Context, providerID uuid.UUID) (cancellation.Policy, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return cancellation.Policy{}, p.Err
	}
	if policy, ok := p.Provider[providerID]; ok {
		return policy, nil
	}
	return p.Default, nil
}

func (p *StaticPolicies) Set(providerID uuid.UUID, policy cancellation.Policy) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Provider == nil {
		p.Provider = make(map[uuid.UUID]cancellation.Policy)
	}
	p.Provider[providerID] = policy
}
