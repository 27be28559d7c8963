//go:build unit

package infra_test

import (
	"io"
	"log/slog"
	"testing"

	"appointment-scheduler/internal/infra"
	"appointment-scheduler/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErr(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	driver := errs.New("connection reset")

	err := infra.WrapRepoErr(logger, infra.KindDBFailure, "insert appointment", driver)

	assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	assert.False(t, infra.IsKind(err, infra.KindNotFound))
	assert.True(t, errs.Is(err, driver))
	assert.Contains(t, err.Error(), "DB_FAILURE: insert appointment")
	assert.Contains(t, err.Error(), "connection reset")

	bare := infra.WrapRepoErr(logger, infra.KindNotFound, "holiday not found", nil)
	assert.Equal(t, "NOT_FOUND: holiday not found", bare.Error())
}

func TestIsTransient(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	for kind, want := range map[infra.RepositoryErrorKind]bool{
		infra.KindDBFailure:          true,
		infra.KindLockTimeout:        true,
		infra.KindConflict:           false,
		infra.KindDuplicateKey:       false,
		infra.KindNotFound:           false,
		infra.KindForeignKeyViolated: false,
	} {
		err := errs.Wrap(infra.WrapRepoErr(logger, kind, "op", nil), "outer")
		assert.Equal(t, want, infra.IsTransient(err), kind)
	}
	assert.False(t, infra.IsTransient(errs.New("plain")))
}
