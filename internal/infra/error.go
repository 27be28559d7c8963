package infra

import (
	"errors"
	"log/slog"

	"appointment-scheduler/internal/pkg/errs"
)

// RepositoryErrorKind classifies a storage failure independently of the driver.
type RepositoryErrorKind string

const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
	// KindConflict is a serialization failure or deadlock; the transaction may be replayed.
	KindConflict RepositoryErrorKind = "CONFLICT"
	// KindLockTimeout means a booking scope or row lock was not granted in time.
	KindLockTimeout RepositoryErrorKind = "LOCK_TIMEOUT"
)

// Transient reports whether a caller may reasonably try the same request again later.
func (k RepositoryErrorKind) Transient() bool {
	return k == KindDBFailure || k == KindLockTimeout
}

// RepositoryError is what both stores return; the driver error, when any, is kept as the cause.
type RepositoryError struct {
	Kind   RepositoryErrorKind
	What   string
	Driver error
}

func (e RepositoryError) Error() string {
	msg := string(e.Kind) + ": " + e.What
	if e.Driver == nil {
		return msg
	}
	return msg + ": " + e.Driver.Error()
}

func (e RepositoryError) Unwrap() error { return e.Driver }

// WrapRepoErr logs the failure once at the storage boundary and returns it classified.
func WrapRepoErr(logger *slog.Logger, kind RepositoryErrorKind, what string, cause error) error {
	attrs := []any{slog.String("kind", string(kind))}
	if cause != nil {
		attrs = append(attrs, slog.String("error", cause.Error()))
		cause = errs.Wrap(cause, what)
	}
	if kind == KindNotFound {
		logger.Debug("repository: "+what, attrs...)
	} else {
		logger.Error("repository: "+what, attrs...)
	}
	return RepositoryError{Kind: kind, What: what, Driver: cause}
}

func kindOf(err error) (RepositoryErrorKind, bool) {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	k, ok := kindOf(err)
	return ok && k == kind
}

// IsTransient is true for storage failures that a later retry may clear.
func IsTransient(err error) bool {
	k, ok := kindOf(err)
	return ok && k.Transient()
}
