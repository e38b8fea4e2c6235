package response

import (
	"dinebook/shared/constant"
	"dinebook/shared/failure"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Data wraps a successful payload: {"data": ...}.
type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

// Error is the body of every non-2xx reply. Reason is set for failures clients can branch on.
type Error struct {
	Error  *string `json:"error,omitempty"`
	Reason *string `json:"reason,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

func WithMessage(writer http.ResponseWriter, code int, message string) {
	write(writer, code, Message{Message: &message})
}

func WithJSON(writer http.ResponseWriter, code int, payload any) {
	write(writer, code, Data[any]{Data: &payload})
}

// WithError maps err to its status. Failures speak their own message without the wrapping
// context; anything unclassified becomes a generic 500 so driver or broker details stay in the logs.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)
	body := Error{}

	var fail *failure.Failure

	switch {
	case code >= http.StatusInternalServerError:
		msg := constant.ResponseErrorInternal
		body.Error = &msg
	case errors.As(err, &fail):
		body.Error = &fail.Message
	default:
		msg := err.Error()
		body.Error = &msg
	}

	if reason := failure.GetReason(err); reason != "" {
		body.Reason = &reason
	}

	write(writer, code, body)
}

func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

// write encodes before touching the writer, so a marshal failure still yields a clean 500.
func write(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Int("status", code).Msg("failed to encode response")
		http.Error(writer, constant.ResponseErrorInternal, http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err := writer.Write(body); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}
