package auth

import (
	"context"
	"dinebook/infras/otel"
	"dinebook/internal/domains/auth/model/dto"
	"dinebook/internal/domains/auth/service"
	"dinebook/shared/constant"
	"dinebook/shared/validator"
	"dinebook/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Auth
	otel    otel.Otel
}

func New(service service.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", handler.Register)
		r.Post("/login", handler.Login)
		r.Post("/refresh-token", handler.RefreshToken)
		r.Post("/change-password", handler.ChangePassword)
	})
}

// serve decodes a Req body, runs call and hands its result to reply. Every auth route has this shape.
func serve[Req, Res any](
	handler *Handler,
	operation string,
	call func(context.Context, Req) (Res, error),
	reply func(http.ResponseWriter, Res),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".auth."+operation)
		defer scope.End()

		var req Req

		err := validator.Validate(r.Body, &req)
		if err == nil {
			var res Res
			if res, err = call(ctx, req); err == nil {
				reply(w, res)

				return
			}
		}

		scope.TraceError(err)
		log.Warn().Err(err).Str("operation", operation).Msg("auth request failed")

		response.WithError(w, err)
	}
}

func message(code int, text string) func(http.ResponseWriter, struct{}) {
	return func(w http.ResponseWriter, _ struct{}) {
		response.WithMessage(w, code, text)
	}
}

func data[Res any](w http.ResponseWriter, res Res) {
	response.WithJSON(w, http.StatusOK, res)
}

// noResult adapts a call that only reports an error.
func noResult[Req any](call func(context.Context, Req) error) func(context.Context, Req) (struct{}, error) {
	return func(ctx context.Context, req Req) (struct{}, error) {
		return struct{}{}, call(ctx, req)
	}
}

// Register creates a diner account. Staff accounts are created through the users admin routes.
// @Summary Register
// @Description Creates a diner account for the given email.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Register Request"
// @Success 201 {object} response.Message "User registered successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/register [post]
func (handler *Handler) Register(w http.ResponseWriter, r *http.Request) {
	serve(handler, "Register", noResult(handler.service.Register), message(http.StatusCreated, "User registered successfully"))(w, r)
}

// @Summary Login
// @Description Exchanges email and password for an access/refresh token pair.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Data[dto.LoginResponse] "User logged in successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/login [post]
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	serve(handler, "Login", handler.service.Login, data[dto.LoginResponse])(w, r)
}

// RefreshToken reissues both tokens from the account's current role and status.
// @Summary Refresh tokens
// @Description Exchanges a refresh token for a new token pair.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh Token Request"
// @Success 200 {object} response.Data[dto.RefreshTokenResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/refresh-token [post]
func (handler *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	serve(handler, "RefreshToken", handler.service.RefreshToken, data[dto.RefreshTokenResponse])(w, r)
}

// ChangePassword replaces the caller's password after checking the current one.
// @Summary Change password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Change Password Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/auth/change-password [post]
// @Security BearerAuth
func (handler *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	serve(handler, "ChangePassword", noResult(handler.service.ChangePassword), message(http.StatusOK, "Password changed successfully"))(w, r)
}
