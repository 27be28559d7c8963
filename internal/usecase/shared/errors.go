package shared

import (
	"context"

	"appointment-scheduler/internal/infra"
	"appointment-scheduler/internal/pkg/errs"
)

// Translate maps persistence failures onto the business error kinds. Errors that
// already carry a business kind pass through untouched.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	if errs.IsAny(err,
		errs.ErrNotFound, errs.ErrValidation, errs.ErrConflict, errs.ErrUnauthorized,
		errs.ErrAlreadyCancelled, errs.ErrTooLateToCancel, errs.ErrPolicyViolation,
		errs.ErrPastAppointment, errs.ErrTryLater,
	) {
		return err
	}

	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, errs.ErrNotFound)
	case infra.IsKind(err, infra.KindDuplicateKey), infra.IsKind(err, infra.KindConflict):
		return errs.Mark(err, errs.ErrConflict)
	case infra.IsTransient(err), errs.Is(err, context.DeadlineExceeded):
		return errs.Mark(err, errs.ErrTryLater)
	default:
		return err
	}
}
