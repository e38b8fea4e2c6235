package failure_test

import (
	"dinebook/shared/failure"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"bad request from string", failure.BadRequestFromString("date must be YYYY-MM-DD"), http.StatusBadRequest, "date must be YYYY-MM-DD"},
		{"unauthorized", failure.Unauthorized("invalid credentials"), http.StatusUnauthorized, "invalid credentials"},
		{"forbidden", failure.Forbidden("not your reservation"), http.StatusForbidden, "not your reservation"},
		{"not found", failure.NotFound("restaurant"), http.StatusNotFound, "restaurant"},
		{"conflict", failure.Conflict("table already booked"), http.StatusConflict, "table already booked"},
		{"shared forbidden", failure.ErrForbidden, http.StatusForbidden, "You don't have the required permissions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.EqualError(t, tt.err, tt.msg)
		})
	}
}

func TestBadRequest(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))

	cause := errors.New("unexpected EOF")
	err := failure.BadRequest(cause)

	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.EqualError(t, err, "unexpected EOF")
	assert.ErrorIs(t, err, cause)
}

func TestInternalError(t *testing.T) {
	assert.NoError(t, failure.InternalError(nil))

	cause := errors.New("s3: access denied")
	err := failure.InternalError(cause)

	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, fmt.Sprintf("%+v", errors.Unwrap(err)), "TestInternalError")
}

func TestGetCode(t *testing.T) {
	wrapped := fmt.Errorf("create reservation: %w", failure.Conflict("slot taken"))

	assert.Equal(t, http.StatusConflict, failure.GetCode(wrapped))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("driver: bad connection")))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(nil))
}

func TestReason(t *testing.T) {
	err := failure.WithReason(http.StatusConflict, "SLOT_UNAVAILABLE", "table is not available")

	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	assert.Equal(t, "SLOT_UNAVAILABLE", failure.GetReason(fmt.Errorf("book: %w", err)))
	assert.Empty(t, failure.GetReason(failure.NotFound("table")))
	assert.Empty(t, failure.GetReason(errors.New("plain")))
}
