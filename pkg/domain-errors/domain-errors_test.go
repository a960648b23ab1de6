package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New(CodeNotFound, "institution not found")

	assert.Equal(t, "institution not found", err.Error())
	assert.True(t, HasCode(err, CodeNotFound))
	assert.False(t, HasCode(err, CodeConflict))
}

func TestErrorMessageFallsBackToCode(t *testing.T) {
	err := &Error{Code: CodeUnavailable}
	assert.Equal(t, "unavailable", err.Error())
}

func TestWrap(t *testing.T) {
	t.Run("wraps infrastructure errors with the given code", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := Wrap(cause, CodeUnavailable, "balance lookup failed")

		assert.True(t, HasCode(err, CodeUnavailable))
		assert.ErrorIs(t, err, cause)
	})

	t.Run("preserves the code of an existing domain error", func(t *testing.T) {
		inner := New(CodeAlreadyEnrolled, "student already enrolled")
		err := Wrap(inner, CodeInternal, "commit failed")

		assert.True(t, HasCode(err, CodeAlreadyEnrolled))
		assert.False(t, HasCode(err, CodeInternal))
		assert.Equal(t, "commit failed", err.Error())
	})

	t.Run("preserves the code through fmt wrapping", func(t *testing.T) {
		inner := New(CodeCourseFull, "course is full")
		wrapped := fmt.Errorf("enroll: %w", inner)
		err := Wrap(wrapped, CodeInternal, "enroll failed")

		assert.True(t, HasCode(err, CodeCourseFull))
	})
}

func TestIsMatchesByCode(t *testing.T) {
	err := New(CodeForbidden, "actor is not the admin")

	assert.ErrorIs(t, err, &Error{Code: CodeForbidden})
	assert.NotErrorIs(t, err, &Error{Code: CodeUnauthorized})
	assert.NotErrorIs(t, err, errors.New("forbidden"))
}

func TestHasCodeOnForeignErrors(t *testing.T) {
	assert.False(t, HasCode(errors.New("plain"), CodeInternal))
	assert.False(t, HasCode(nil, CodeInternal))
}
