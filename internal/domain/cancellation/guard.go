package cancellation

import (
	"time"

	"appointment-scheduler/internal/domain/appointment"
	"appointment-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
)

// Request describes who asks for the cancellation. Override is granted to admins
// and to the provider that owns the appointment.
type Request struct {
	RequesterID uuid.UUID
	Override    bool
}

// Evaluate runs the transition guards in order and returns the first failure.
// now must be a wall clock reading in the schedule's civil time.
func Evaluate(a *appointment.Appointment, req Request, p Policy, now time.Time) error {
	switch a.Status() {
	case appointment.StatusBooked:
	case appointment.StatusCancelled:
		return errs.Wrapf(errs.ErrAlreadyCancelled, "appointment %s", a.ID())
	default:
		return errs.Wrapf(appointment.ErrNotCancellable, "appointment %s is %s", a.ID(), a.Status())
	}

	if !req.Override && req.RequesterID != a.CustomerID() {
		return errs.Wrapf(errs.ErrUnauthorized, "requester %s", req.RequesterID)
	}

	start := a.StartsAt()
	if !now.Before(start) {
		return errs.Wrapf(errs.ErrTooLateToCancel, "started at %s", start.Format("2006-01-02 15:04"))
	}
	if req.Override {
		return nil
	}

	minutes := int(start.Sub(now) / time.Minute)
	if minutes < p.CutoffMinutes() {
		return &PolicyViolationError{
			LimitHours:        p.LimitHours,
			GraceMinutes:      p.GraceMinutes,
			MinutesUntilStart: minutes,
		}
	}
	return nil
}
