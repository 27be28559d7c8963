//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"appointment-scheduler/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestMark(t *testing.T) {
	t.Run("marked error matches its kind", func(t *testing.T) {
		leaf := errs.New("slot duration must be positive")
		err := errs.Mark(leaf, errs.ErrValidation)

		assert.True(t, errs.Is(err, errs.ErrValidation))
		assert.True(t, errs.Is(err, leaf))
		assert.False(t, errs.Is(err, errs.ErrConflict))
	})

	t.Run("wrapping keeps the mark", func(t *testing.T) {
		err := errs.Wrap(errs.Mark(errs.New("row lock wait exceeded"), errs.ErrTryLater), "book")

		assert.True(t, errs.Is(err, errs.ErrTryLater))
		assert.Contains(t, err.Error(), "book")
	})

	t.Run("nil error returns the mark itself", func(t *testing.T) {
		assert.Equal(t, errs.ErrNotFound, errs.Mark(nil, errs.ErrNotFound))
	})

	t.Run("standard errors are still matched", func(t *testing.T) {
		std := errors.New("io")
		assert.True(t, errs.Is(errs.Wrap(std, "read"), std))
		assert.True(t, errs.IsAny(errs.Wrap(std, "read"), errs.ErrNotFound, std))
	})

	t.Run("kinds are distinct", func(t *testing.T) {
		kinds := []error{
			errs.ErrNotFound, errs.ErrValidation, errs.ErrConflict, errs.ErrUnauthorized,
			errs.ErrAlreadyCancelled, errs.ErrTooLateToCancel, errs.ErrPolicyViolation,
			errs.ErrPastAppointment, errs.ErrTryLater,
		}
		for i, a := range kinds {
			for j, b := range kinds {
				if i != j {
					assert.False(t, errs.Is(a, b), "%v should not match %v", a, b)
				}
			}
		}
	})
}

func TestKind(t *testing.T) {
	leaf := errs.Kind(errs.ErrValidation, "break must lie within the window")
	other := errs.Kind(errs.ErrValidation, "slot duration must be positive")

	wrapped := errs.Wrapf(leaf, "break %s", "12:00-13:00")

	assert.True(t, errs.Is(wrapped, leaf))
	assert.True(t, errs.Is(wrapped, errs.ErrValidation))
	assert.True(t, errors.Is(wrapped, errs.ErrValidation))
	assert.False(t, errs.Is(wrapped, other))
	assert.False(t, errs.Is(wrapped, errs.ErrConflict))
	assert.Equal(t, "break 12:00-13:00: break must lie within the window", wrapped.Error())
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, errs.Wrap(nil, "noop"))
	assert.NoError(t, errs.Wrapf(nil, "noop %d", 1))
}

func TestExtractStackLines(t *testing.T) {
	assert.Nil(t, errs.ExtractStackLines(nil, 3))
	lines := errs.ExtractStackLines(errs.New("boom"), 2)
	assert.LessOrEqual(t, len(lines), 2)
	assert.Contains(t, lines[0], "boom")
}
