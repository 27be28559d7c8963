package httperr

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"appointment-scheduler/internal/domain/cancellation"
	"appointment-scheduler/internal/pkg/errs"
	"appointment-scheduler/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// RetryAfter is sent with 503 responses for transient persistence failures.
const RetryAfter = 2 * time.Second

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
		Code    string `json:"code,omitempty"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	abort(c, status, err, msg, "", detail)
}

func abort(c *gin.Context, status int, err error, msg, code string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Error.Code = code
	resp.Detail = detail

	_ = c.Error(&gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

type kindMapping struct {
	kind   error
	status int
	code   string
}

// Order matters: typed errors may carry more than one mark.
var kindMappings = []kindMapping{
	{errs.ErrTryLater, http.StatusServiceUnavailable, "TRY_LATER"},
	{errs.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	{errs.ErrUnauthorized, http.StatusForbidden, "UNAUTHORIZED"},
	{errs.ErrAlreadyCancelled, http.StatusConflict, "ALREADY_CANCELLED"},
	{errs.ErrConflict, http.StatusConflict, "CONFLICT"},
	{errs.ErrTooLateToCancel, http.StatusUnprocessableEntity, "TOO_LATE_TO_CANCEL"},
	{errs.ErrPolicyViolation, http.StatusUnprocessableEntity, "POLICY_VIOLATION"},
	{errs.ErrPastAppointment, http.StatusUnprocessableEntity, "PAST_APPOINTMENT"},
	{errs.ErrValidation, http.StatusBadRequest, "VALIDATION_ERROR"},
}

// Status returns the HTTP status and code for a use-case error; unknown errors are 500.
func Status(err error) (int, string) {
	for _, m := range kindMappings {
		if errs.Is(err, m.kind) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, "INTERNAL"
}

// Abort presents a use-case error. Business outcomes keep their message; infrastructure
// failures are reduced to a generic one.
func Abort(c *gin.Context, err error) {
	status, code := Status(err)

	var msg string
	switch status {
	case http.StatusInternalServerError:
		msg = "Internal server error"
	case http.StatusServiceUnavailable:
		msg = "Service temporarily unavailable, try again later"
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(RetryAfter.Seconds()))))
	default:
		msg = leafMessage(err)
	}
	abort(c, status, err, msg, code, detailOf(err))
}

// leafMessage strips wrap prefixes added on the way up so clients see the rule that failed.
func leafMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

func detailOf(err error) any {
	var conflict *commands.ConflictError
	if errors.As(err, &conflict) {
		return gin.H{
			"conflictStart": conflict.Interval.StartTime().String(),
			"conflictEnd":   conflict.Interval.EndTime().String(),
		}
	}
	var violation *cancellation.PolicyViolationError
	if errors.As(err, &violation) {
		return gin.H{
			"limitHours":        violation.LimitHours,
			"graceMinutes":      violation.GraceMinutes,
			"minutesUntilStart": violation.MinutesUntilStart,
		}
	}
	return nil
}
