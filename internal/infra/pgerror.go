package infra

import (
	"log/slog"

	"appointment-scheduler/internal/pkg/pgconv"
)

// SQLSTATE codes the repositories react to.
const (
	PgUniqueViolation      = "23505"
	PgForeignKeyViolation  = "23503"
	PgLockNotAvailable     = "55P03"
	PgSerializationFailure = "40001"
	PgDeadlockDetected     = "40P01"
)

// WrapPgErr classifies a pgx error and wraps it as a RepositoryError.
func WrapPgErr(slogger *slog.Logger, msg string, err error) error {
	return WrapRepoErr(slogger, PgKind(err), msg, err)
}

func PgKind(err error) RepositoryErrorKind {
	if pgconv.IsNoRows(err) {
		return KindNotFound
	}
	switch pgconv.ErrorCode(err) {
	case PgUniqueViolation:
		return KindDuplicateKey
	case PgForeignKeyViolation:
		return KindForeignKeyViolated
	case PgLockNotAvailable:
		return KindLockTimeout
	case PgSerializationFailure, PgDeadlockDetected:
		return KindConflict
	default:
		return KindDBFailure
	}
}
