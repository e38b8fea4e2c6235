package reservation

import (
	"dinebook/infras/otel"
	"dinebook/internal/domains/reservation/model/dto"
	"dinebook/internal/domains/reservation/service"
	"dinebook/shared/constant"
	gDto "dinebook/shared/dto"
	"dinebook/shared/validator"
	"dinebook/transport/http/middleware"
	"dinebook/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Reservation
	otel    otel.Otel
}

func New(service service.Reservation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.With(middleware.UUIDParam(constant.RequestParamID)).
		Get("/restaurants/{id}/reservations", handler.GetRestaurantReservations)

	router.Route("/reservations", func(routerGroup chi.Router) {
		byID := routerGroup.With(middleware.UUIDParam(constant.RequestParamID))

		routerGroup.Post("/", handler.CreateReservation)
		routerGroup.Get("/", handler.GetReservations)
		routerGroup.Post("/quote", handler.Quote)
		routerGroup.Get("/me", handler.GetMyReservations)
		routerGroup.Get("/confirm/{token}", handler.Confirm)
		byID.Get("/{id}", handler.GetReservationByID)
		byID.Patch("/{id}", handler.UpdateReservation)
		byID.Patch("/{id}/payment", handler.UpdatePayment)
		byID.Post("/{id}/resend-confirmation", handler.ResendConfirmation)
		byID.Post("/{id}/cancel", handler.Cancel)
		byID.Post("/{id}/complete", handler.Complete)
	})
}

type scopedError interface {
	TraceError(err error)
}

func fail(writer http.ResponseWriter, scope scopedError, err error, msg string) {
	scope.TraceError(err)
	log.Error().Err(err).Msg(msg)

	response.WithError(writer, err)
}

func listFilter(request *http.Request) (gDto.QueryParams, dto.ListFilter, error) {
	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	filter := dto.ListFilter{}
	filter.FromRequest(request)

	return queryParams, filter, validator.ValidateStruct(&filter)
}

// CreateReservation books a table and emails a confirmation link.
// @Summary Create reservation
// @Description Books a table for a time window. The reservation stays pending until the emailed link is opened.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.CreateReservationRequest true "Create Reservation Request"
// @Success 201 {object} response.Data[dto.CreateReservationResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations [post]
// @Security BearerAuth
func (handler *Handler) CreateReservation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReservation")
	defer scope.End()

	req := dto.CreateReservationRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		fail(writer, scope, err, "failed to validate request body")

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		fail(writer, scope, err, "failed to create reservation")

		return
	}

	scope.AddEvent("Reservation created " + res.ID)

	response.WithJSON(writer, http.StatusCreated, res)
}

// Quote prices a party without booking.
// @Summary Quote price
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.QuoteRequest true "Quote Request"
// @Success 200 {object} response.Data[dto.QuoteResponse]
// @Failure 400 {object} response.Error
// @Router /v1/reservations/quote [post]
func (handler *Handler) Quote(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Quote")
	defer scope.End()

	req := dto.QuoteRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		fail(writer, scope, err, "failed to validate request body")

		return
	}

	res, err := handler.service.Quote(ctx, req)
	if err != nil {
		fail(writer, scope, err, "failed to quote reservation")

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// Confirm is the target of the emailed link.
// @Summary Confirm reservation
// @Tags Reservation
// @Produce json
// @Param token path string true "Confirmation token"
// @Success 200 {object} response.Data[dto.ReservationResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/reservations/confirm/{token} [get]
func (handler *Handler) Confirm(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Confirm")
	defer scope.End()

	res, err := handler.service.Confirm(ctx, chi.URLParam(request, constant.RequestParamToken))
	if err != nil {
		fail(writer, scope, err, "failed to confirm reservation")

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetReservations lists every reservation.
// @Summary List reservations
// @Tags Reservation
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "pending, confirmed, cancelled or completed"
// @Param date query string false "Reservation date (YYYY-MM-DD)"
// @Param restaurant_id query string false "Restaurant ID"
// @Success 200 {object} response.Data[dto.GetReservationsResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/reservations [get]
// @Security BearerAuth
func (handler *Handler) GetReservations(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservations")
	defer scope.End()

	queryParams, filter, err := listFilter(request)
	if err != nil {
		fail(writer, scope, err, "invalid reservation filter")

		return
	}

	res, err := handler.service.ListAll(ctx, queryParams, filter)
	if err != nil {
		fail(writer, scope, err, "failed to get reservations")

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetMyReservations lists the caller's reservations.
// @Summary My reservations
// @Tags Reservation
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "pending, confirmed, cancelled or completed"
// @Param date query string false "Reservation date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetReservationsResponse]
// @Failure 401 {object} response.Error
// @Router /v1/reservations/me [get]
// @Security BearerAuth
func (handler *Handler) GetMyReservations(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyReservations")
	defer scope.End()

	queryParams, filter, err := listFilter(request)
	if err != nil {
		fail(writer, scope, err, "invalid reservation filter")

		return
	}

	res, err := handler.service.ListMine(ctx, queryParams, filter)
	if err != nil {
		fail(writer, scope, err, "failed to get my reservations")

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetRestaurantReservations lists the reservations of one restaurant.
// @Summary Restaurant reservations
// @Tags Reservation
// @Produce json
// @Param id path string true "Restaurant ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "pending, confirmed, cancelled or completed"
// @Param date query string false "Reservation date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetReservationsResponse]
// @Failure 404 {object} response.Error
// @Router /v1/restaurants/{id}/reservations [get]
// @Security BearerAuth
func (handler *Handler) GetRestaurantReservations(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRestaurantReservations")
	defer scope.End()

	queryParams, filter, err := listFilter(request)
	if err != nil {
		fail(writer, scope, err, "invalid reservation filter")

		return
	}

	res, err := handler.service.ListByRestaurant(ctx, chi.URLParam(request, constant.RequestParamID), queryParams, filter)
	if err != nil {
		fail(writer, scope, err, "failed to get restaurant reservations")

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetReservationByID
// @Summary Get reservation
// @Tags Reservation
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Data[dto.ReservationResponse]
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/reservations/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetReservationByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservationByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		fail(writer, scope, err, "failed to get reservation")

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateReservation moves or resizes an active reservation.
// @Summary Update reservation
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body dto.UpdateReservationRequest true "Update Reservation Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/reservations/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateReservation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateReservation")
	defer scope.End()

	req := dto.UpdateReservationRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		fail(writer, scope, err, "failed to validate request body")

		return
	}

	if err := handler.service.Update(ctx, chi.URLParam(request, constant.RequestParamID), req); err != nil {
		fail(writer, scope, err, "failed to update reservation")

		return
	}

	response.WithMessage(writer, http.StatusOK, "Reservation updated successfully")
}

// UpdatePayment
// @Summary Update reservation payment
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body dto.UpdatePaymentRequest true "Update Payment Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/reservations/{id}/payment [patch]
// @Security BearerAuth
func (handler *Handler) UpdatePayment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePayment")
	defer scope.End()

	req := dto.UpdatePaymentRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		fail(writer, scope, err, "failed to validate request body")

		return
	}

	if err := handler.service.UpdatePayment(ctx, chi.URLParam(request, constant.RequestParamID), req); err != nil {
		fail(writer, scope, err, "failed to update reservation payment")

		return
	}

	response.WithMessage(writer, http.StatusOK, "Reservation payment updated")
}

// ResendConfirmation
// @Summary Resend confirmation email
// @Tags Reservation
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/reservations/{id}/resend-confirmation [post]
// @Security BearerAuth
func (handler *Handler) ResendConfirmation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ResendConfirmation")
	defer scope.End()

	if err := handler.service.ResendConfirmation(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		fail(writer, scope, err, "failed to resend confirmation")

		return
	}

	response.WithMessage(writer, http.StatusOK, "Confirmation email sent")
}

// Cancel
// @Summary Cancel reservation
// @Tags Reservation
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/reservations/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) Cancel(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Cancel")
	defer scope.End()

	if err := handler.service.Cancel(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		fail(writer, scope, err, "failed to cancel reservation")

		return
	}

	response.WithMessage(writer, http.StatusOK, "Reservation cancelled")
}

// Complete
// @Summary Complete reservation
// @Tags Reservation
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/reservations/{id}/complete [post]
// @Security BearerAuth
func (handler *Handler) Complete(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Complete")
	defer scope.End()

	if err := handler.service.Complete(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		fail(writer, scope, err, "failed to complete reservation")

		return
	}

	response.WithMessage(writer, http.StatusOK, "Reservation completed")
}
