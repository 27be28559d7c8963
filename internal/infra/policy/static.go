// Package policy resolves cancellation policies for providers.
package policy

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"appointment-scheduler/internal/domain/cancellation"
	"appointment-scheduler/internal/pkg/config"
	"appointment-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
)

// StaticProvider serves the deployment-wide policy unless a provider has an override.
type StaticProvider struct {
	fallback cancellation.Policy

	mu        sync.RWMutex
	overrides map[uuid.UUID]cancellation.Policy
}

func NewStaticProvider(cfg config.Config) (*StaticProvider, error) {
	p, err := cancellation.NewPolicy(cfg.Cancellation.LimitHours, cfg.Cancellation.GraceMinutes)
	if err != nil {
		return nil, errs.Wrap(err, "cancellation config")
	}
	s := &StaticProvider{
		fallback:  p,
		overrides: make(map[uuid.UUID]cancellation.Policy, len(cfg.Cancellation.ProviderPolicies)),
	}
	for rawID, rawPolicy := range cfg.Cancellation.ProviderPolicies {
		providerID, err := uuid.Parse(strings.TrimSpace(rawID))
		if err != nil {
			return nil, errs.Wrapf(err, "CANCELLATION_PROVIDER_POLICIES: provider id %q", rawID)
		}
		override, err := parsePolicy(rawPolicy)
		if err != nil {
			return nil, errs.Wrapf(err, "CANCELLATION_PROVIDER_POLICIES: provider %s", providerID)
		}
		if err := s.Override(providerID, override); err != nil {
			return nil, errs.Wrapf(err, "CANCELLATION_PROVIDER_POLICIES: provider %s", providerID)
		}
	}
	return s, nil
}

// parsePolicy reads "<limitHours>/<graceMinutes>".
func parsePolicy(raw string) (cancellation.Policy, error) {
	hours, grace, ok := strings.Cut(strings.TrimSpace(raw), "/")
	if !ok {
		return cancellation.Policy{}, errs.Wrapf(cancellation.ErrInvalidPolicy, "%q is not hours/grace", raw)
	}
	h, err := strconv.Atoi(hours)
	if err != nil {
		return cancellation.Policy{}, errs.Wrapf(cancellation.ErrInvalidPolicy, "limit hours %q", hours)
	}
	g, err := strconv.Atoi(grace)
	if err != nil {
		return cancellation.Policy{}, errs.Wrapf(cancellation.ErrInvalidPolicy, "grace minutes %q", grace)
	}
	return cancellation.Policy{LimitHours: h, GraceMinutes: g}, nil
}

func (s *StaticProvider) PolicyFor(_ context.Context, providerID uuid.UUID) (cancellation.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.overrides[providerID]; ok {
		return p, nil
	}
	return s.fallback, nil
}

// Override installs a provider-specific policy.
func (s *StaticProvider) Override(providerID uuid.UUID, p cancellation.Policy) error {
	if _, err := cancellation.NewPolicy(p.LimitHours, p.GraceMinutes); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[providerID] = p
	return nil
}

func (s *StaticProvider) Default() cancellation.Policy {
	return s.fallback
}
