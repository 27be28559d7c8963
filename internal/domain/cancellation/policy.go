package cancellation

import (
	"fmt"

	"appointment-scheduler/internal/pkg/errs"
)

const (
	DefaultLimitHours   = 24
	DefaultGraceMinutes = 15
)

var ErrInvalidPolicy = errs.Kind(errs.ErrValidation, "invalid cancellation policy")

// Policy is the customer cancellation window of one provider.
type Policy struct {
	LimitHours   int
	GraceMinutes int
}

func DefaultPolicy() Policy {
	return Policy{LimitHours: DefaultLimitHours, GraceMinutes: DefaultGraceMinutes}
}

func NewPolicy(limitHours, graceMinutes int) (Policy, error) {
	if limitHours < 0 || graceMinutes < 0 {
		return Policy{}, errs.Wrapf(ErrInvalidPolicy, "limit %dh grace %dm", limitHours, graceMinutes)
	}
	if graceMinutes > limitHours*60 {
		return Policy{}, errs.Wrapf(ErrInvalidPolicy, "grace %dm exceeds limit %dh", graceMinutes, limitHours)
	}
	return Policy{LimitHours: limitHours, GraceMinutes: graceMinutes}, nil
}

// CutoffMinutes is the least number of minutes before start at which a customer may still cancel.
func (p Policy) CutoffMinutes() int {
	return p.LimitHours*60 - p.GraceMinutes
}

// PolicyViolationError matches errs.ErrPolicyViolation.
type PolicyViolationError struct {
	LimitHours        int
	GraceMinutes      int
	MinutesUntilStart int
}

func (e *PolicyViolationError) Error() string {
	return fmt.Sprintf("%s: cancellations require %dh notice (grace %dm), %dm left",
		errs.ErrPolicyViolation, e.LimitHours, e.GraceMinutes, e.MinutesUntilStart)
}

func (e *PolicyViolationError) Is(target error) bool {
	return target == errs.ErrPolicyViolation
}
