//go:build unit

package policy_test

import (
	"context"
	"testing"

	"appointment-scheduler/internal/domain/cancellation"
	"appointment-scheduler/internal/infra/policy"
	"appointment-scheduler/internal/pkg/config"
	"appointment-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticProvider(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.Cancellation.LimitHours = 24
	cfg.Cancellation.GraceMinutes = 15

	p, err := policy.NewStaticProvider(cfg)
	require.NoError(t, err)

	t.Run("unknown provider gets the configured default", func(t *testing.T) {
		got, err := p.PolicyFor(context.Background(), uuid.New())
		require.NoError(t, err)
		assert.Equal(t, cancellation.Policy{LimitHours: 24, GraceMinutes: 15}, got)
		assert.Equal(t, got, p.Default())
	})

	t.Run("override wins for its provider only", func(t *testing.T) {
		providerID := uuid.New()
		require.NoError(t, p.Override(providerID, cancellation.Policy{LimitHours: 2, GraceMinutes: 0}))

		got, err := p.PolicyFor(context.Background(), providerID)
		require.NoError(t, err)
		assert.Equal(t, 2, got.LimitHours)

		other, err := p.PolicyFor(context.Background(), uuid.New())
		require.NoError(t, err)
		assert.Equal(t, 24, other.LimitHours)
	})

	t.Run("invalid override rejected", func(t *testing.T) {
		err := p.Override(uuid.New(), cancellation.Policy{LimitHours: 1, GraceMinutes: 90})
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})
}

func TestNewStaticProvider_InvalidConfig(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.Cancellation.LimitHours = -1

	_, err := policy.NewStaticProvider(cfg)
	require.Error(t, err)
	assert.True(t, errs.Is(err, cancellation.ErrInvalidPolicy))
}

func TestNewStaticProvider_ConfiguredOverrides(t *testing.T) {
	strict := uuid.New()
	relaxed := uuid.New()

	t.Run("overrides installed from config", func(t *testing.T) {
		cfg := config.NewTestConfig()
		cfg.Cancellation.ProviderPolicies = map[string]string{
			strict.String():  "48/30",
			relaxed.String(): " 2/0 ",
		}

		p, err := policy.NewStaticProvider(cfg)
		require.NoError(t, err)

		got, err := p.PolicyFor(context.Background(), strict)
		require.NoError(t, err)
		assert.Equal(t, cancellation.Policy{LimitHours: 48, GraceMinutes: 30}, got)

		got, err = p.PolicyFor(context.Background(), relaxed)
		require.NoError(t, err)
		assert.Equal(t, cancellation.Policy{LimitHours: 2, GraceMinutes: 0}, got)

		got, err = p.PolicyFor(context.Background(), uuid.New())
		require.NoError(t, err)
		assert.Equal(t, p.Default(), got)
	})

	tests := []struct {
		name     string
		policies map[string]string
	}{
		{"bad provider id", map[string]string{"not-a-uuid": "24/15"}},
		{"missing separator", map[string]string{strict.String(): "24"}},
		{"non numeric hours", map[string]string{strict.String(): "a/15"}},
		{"non numeric grace", map[string]string{strict.String(): "24/b"}},
		{"grace beyond limit", map[string]string{strict.String(): "1/90"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewTestConfig()
			cfg.Cancellation.ProviderPolicies = tt.policies

			_, err := policy.NewStaticProvider(cfg)
			assert.ErrorContains(t, err, "CANCELLATION_PROVIDER_POLICIES")
		})
	}
}
