//go:build unit

package infra_test

import (
	"io"
	"log/slog"
	"testing"

	"appointment-scheduler/internal/infra"
	"appointment-scheduler/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPgKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want infra.RepositoryErrorKind
	}{
		{"no rows", pgx.ErrNoRows, infra.KindNotFound},
		{"wrapped no rows", errs.Wrap(pgx.ErrNoRows, "scan"), infra.KindNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, infra.KindDuplicateKey},
		{"foreign key", &pgconn.PgError{Code: "23503"}, infra.KindForeignKeyViolated},
		{"lock timeout", &pgconn.PgError{Code: "55P03"}, infra.KindLockTimeout},
		{"serialization", &pgconn.PgError{Code: "40001"}, infra.KindConflict},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, infra.KindConflict},
		{"other server error", &pgconn.PgError{Code: "42P01"}, infra.KindDBFailure},
		{"plain error", errs.New("connection reset"), infra.KindDBFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, infra.PgKind(tt.err))
		})
	}
}

func TestWrapPgErr(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	err := infra.WrapPgErr(logger, "failed to create appointment", &pgconn.PgError{Code: "23505"})

	assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
	assert.Contains(t, err.Error(), "failed to create appointment")

	var pgErr *pgconn.PgError
	assert.ErrorAs(t, err, &pgErr)
}
