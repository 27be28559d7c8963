package errs

// Outcome kinds shared by the domain, use case and handler layers.
// Leaf errors are Mark-ed with one of these so callers can switch on the kind.
var (
	ErrNotFound         = New("not found")
	ErrValidation       = New("validation failed")
	ErrConflict         = New("conflict")
	ErrUnauthorized     = New("not authorized for this appointment")
	ErrAlreadyCancelled = New("appointment already cancelled")
	ErrTooLateToCancel  = New("appointment already started")
	ErrPolicyViolation  = New("cancellation window closed")
	ErrPastAppointment  = New("appointment slot has already elapsed")

	// Infrastructure outcome: lock timeout, connectivity. Retrying is meaningful.
	ErrTryLater = New("temporarily unavailable, try later")
)

type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Is(target error) bool { return target == e.kind }

// Kind declares a leaf sentinel that also matches kind under Is. Wrap leaves to add
// context; Mark-ing another error with a leaf would drop the kind.
func Kind(kind error, msg string) error {
	return &kindError{msg: msg, kind: kind}
}
