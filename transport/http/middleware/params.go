package middleware

import (
	"dinebook/shared/failure"
	"dinebook/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const canonicalUUIDLength = 36

// UUIDParam answers 400 when the named route parameter is not a canonical UUID.
// Mount it with chi's With on the endpoint so the parameter is already resolved.
func UUIDParam(name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			value := chi.URLParam(request, name)

			if len(value) != canonicalUUIDLength || uuid.Validate(value) != nil {
				response.WithError(writer, failure.BadRequestFromString(name+" must be a valid UUID"))

				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
