//go:build unit

package shared_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"appointment-scheduler/internal/infra"
	"appointment-scheduler/internal/pkg/errs"
	"appointment-scheduler/internal/usecase/shared"

	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repoErr := func(kind infra.RepositoryErrorKind) error {
		return infra.WrapRepoErr(logger, kind, "appointment", errs.New("driver says no"))
	}

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"not found", repoErr(infra.KindNotFound), errs.ErrNotFound},
		{"duplicate key", repoErr(infra.KindDuplicateKey), errs.ErrConflict},
		{"conflict", repoErr(infra.KindConflict), errs.ErrConflict},
		{"lock timeout", repoErr(infra.KindLockTimeout), errs.ErrTryLater},
		{"db failure", repoErr(infra.KindDBFailure), errs.ErrTryLater},
		{"deadline", errs.Wrap(context.DeadlineExceeded, "booking"), errs.ErrTryLater},
		{"business kind passes", errs.Wrap(errs.ErrUnauthorized, "cancel"), errs.ErrUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errs.Is(shared.Translate(tt.in), tt.want))
		})
	}

	assert.NoError(t, shared.Translate(nil))

	plain := errs.New("unexpected")
	assert.Equal(t, plain, shared.Translate(plain))
}
