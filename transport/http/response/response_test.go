package response_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"dinebook/shared/failure"
	"dinebook/transport/http/response"
)

func TestWithError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantError  string
		wantReason string
	}{
		{
			name:      "dependency error is not leaked",
			err:       fmt.Errorf("failed to insert: %w", errors.New("pq: connection refused")),
			wantCode:  http.StatusInternalServerError,
			wantError: "internal server error",
		},
		{
			name:      "not found keeps message",
			err:       failure.NotFound("reservation not found"),
			wantCode:  http.StatusNotFound,
			wantError: "reservation not found",
		},
		{
			name:       "conflict carries reason",
			err:        fmt.Errorf("create: %w", failure.WithReason(http.StatusConflict, "slot_conflict", "time not available")),
			wantCode:   http.StatusConflict,
			wantError:  "time not available",
			wantReason: "slot_conflict",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			response.WithError(recorder, tt.err)

			assert.Equal(t, tt.wantCode, recorder.Code)

			var body map[string]string
			assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.wantError, body["error"])
			assert.Equal(t, tt.wantReason, body["reason"])
		})
	}
}

func TestWithJSON(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithJSON(recorder, http.StatusOK, map[string]bool{"is_valid": true})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"is_valid":true}}`, recorder.Body.String())
}

func TestWithMessage(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithMessage(recorder, http.StatusCreated, "reservation created")

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.JSONEq(t, `{"message":"reservation created"}`, recorder.Body.String())
}

func TestStatusReplies(t *testing.T) {
	tests := []struct {
		name     string
		reply    func(http.ResponseWriter)
		wantCode int
		wantBody string
	}{
		{name: "rate limited", reply: response.WithRequestLimitExceeded, wantCode: http.StatusTooManyRequests, wantBody: `{"message":"REQUEST LIMIT EXCEEDED"}`},
		{name: "shutting down", reply: response.WithPreparingShutdown, wantCode: http.StatusServiceUnavailable, wantBody: `{"message":"SERVER PREPARING TO SHUT DOWN"}`},
		{name: "unhealthy", reply: response.WithUnhealthy, wantCode: http.StatusServiceUnavailable, wantBody: `{"message":"SERVER UNHEALTHY"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			tt.reply(recorder)

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.JSONEq(t, tt.wantBody, recorder.Body.String())
		})
	}
}

func TestWithJSONUnencodable(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithJSON(recorder, http.StatusOK, map[string]any{"bad": make(chan int)})

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}
