package failure

import (
	"errors"
	"net/http"

	pkgErrors "github.com/pkg/errors"
)

// Failure is an error that knows its HTTP status. Reason is a stable, machine-checkable
// code for clients; cause is kept for logs and never serialised.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
	cause   error
}

var ErrForbidden = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

func (e *Failure) Error() string {
	return e.Message
}

func (e *Failure) Unwrap() error {
	return e.cause
}

func newFailure(code int, msg string) error {
	return &Failure{Code: code, Message: msg}
}

// BadRequest wraps err as a 400, keeping its message. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return &Failure{Code: http.StatusBadRequest, Message: err.Error(), cause: err}
}

func BadRequestFromString(msg string) error {
	return newFailure(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return newFailure(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) error {
	return newFailure(http.StatusForbidden, msg)
}

// NotFound takes the entity name, e.g. NotFound("restaurant").
func NotFound(entityName string) error {
	return newFailure(http.StatusNotFound, entityName)
}

func Conflict(msg string) error {
	return newFailure(http.StatusConflict, msg)
}

// InternalError marks err as a 500 and records a stack trace on it. A nil err stays nil.
func InternalError(err error) error {
	if err == nil {
		return nil
	}

	return &Failure{Code: http.StatusInternalServerError, Message: err.Error(), cause: pkgErrors.WithStack(err)}
}

// WithReason builds a failure whose reason lets clients branch without parsing the message.
func WithReason(code int, reason, msg string) *Failure {
	return &Failure{Code: code, Message: msg, Reason: reason}
}

// GetReason returns the reason of the first Failure in err's chain.
func GetReason(err error) string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Reason
	}

	return ""
}

// GetCode returns the status of the first Failure in err's chain, 500 for anything else.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}
