package promo

import (
	"dinebook/infras/otel"
	"dinebook/internal/domains/promo/model/dto"
	"dinebook/internal/domains/promo/service"
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
	service service.Promo
	otel    otel.Otel
}

func New(service service.Promo, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/promo-codes", func(routerGroup chi.Router) {
		byID := routerGroup.With(middleware.UUIDParam(constant.RequestParamID))

		routerGroup.Get("/validate/{code}", handler.ValidatePromoCode)
		routerGroup.Post("/", handler.CreatePromoCode)
		routerGroup.Get("/", handler.GetPromoCodes)
		byID.Get("/{id}", handler.GetPromoCodeByID)
		byID.Patch("/{id}", handler.UpdatePromoCode)
		byID.Delete("/{id}", handler.DeletePromoCode)
	})
}

// ValidatePromoCode reports whether a code can be used today.
// @Summary Validate promo code
// @Tags Promo
// @Produce json
// @Param code path string true "Promo code"
// @Success 200 {object} response.Data[dto.ValidateResponse]
// @Failure 500 {object} response.Error
// @Router /v1/promo-codes/validate/{code} [get]
func (handler *Handler) ValidatePromoCode(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ValidatePromoCode")
	defer scope.End()

	res, err := handler.service.Validate(ctx, chi.URLParam(request, constant.RequestParamCode))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate promo code")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// CreatePromoCode
// @Summary Create promo code
// @Tags Promo
// @Accept json
// @Produce json
// @Param request body dto.CreatePromoCodeRequest true "Create Promo Code Request"
// @Success 201 {object} response.Data[dto.PromoCodeResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/promo-codes [post]
// @Security BearerAuth
func (handler *Handler) CreatePromoCode(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePromoCode")
	defer scope.End()

	req := dto.CreatePromoCodeRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create promo code")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetPromoCodes
// @Summary List promo codes
// @Tags Promo
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetPromoCodesResponse]
// @Router /v1/promo-codes [get]
// @Security BearerAuth
func (handler *Handler) GetPromoCodes(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPromoCodes")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	res, err := handler.service.GetAll(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get promo codes")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetPromoCodeByID
// @Summary Get promo code
// @Tags Promo
// @Produce json
// @Param id path string true "Promo code ID"
// @Success 200 {object} response.Data[dto.PromoCodeResponse]
// @Failure 404 {object} response.Error
// @Router /v1/promo-codes/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPromoCodeByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPromoCodeByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to get promo code")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdatePromoCode
// @Summary Update promo code
// @Tags Promo
// @Accept json
// @Produce json
// @Param id path string true "Promo code ID"
// @Param request body dto.UpdatePromoCodeRequest true "Update Promo Code Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/promo-codes/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdatePromoCode(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePromoCode")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)
	req := dto.UpdatePromoCodeRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update promo code")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Promo code updated successfully")
}

// DeletePromoCode
// @Summary Delete promo code
// @Tags Promo
// @Produce json
// @Param id path string true "Promo code ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/promo-codes/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeletePromoCode(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePromoCode")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to delete promo code")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Promo code deleted successfully")
}
