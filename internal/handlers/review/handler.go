package review

import (
	"dinebook/infras/otel"
	"dinebook/internal/domains/review/model/dto"
	"dinebook/internal/domains/review/service"
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
	service service.Review
	otel    otel.Otel
}

func New(service service.Review, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	byID := router.With(middleware.UUIDParam(constant.RequestParamID))

	byID.Get("/restaurants/{id}/reviews", handler.GetReviews)
	byID.Post("/restaurants/{id}/reviews", handler.CreateReview)
	byID.Get("/users/me/restaurants/{id}/review", handler.GetMyReview)
	byID.Patch("/reviews/{id}", handler.UpdateReview)
	byID.Delete("/reviews/{id}", handler.DeleteReview)
}

// CreateReview posts the caller's review of a restaurant. One review per user and restaurant.
// @Summary Submit review
// @Tags Review
// @Accept json
// @Produce json
// @Param id path string true "Restaurant ID"
// @Param request body dto.CreateReviewRequest true "Create Review Request"
// @Success 201 {object} response.Data[dto.ReviewResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/restaurants/{id}/reviews [post]
// @Security BearerAuth
func (handler *Handler) CreateReview(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReview")
	defer scope.End()

	restaurantID := chi.URLParam(request, constant.RequestParamID)
	req := dto.CreateReviewRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, restaurantID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("restaurant_id", restaurantID).Msg("failed to create review")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetReviews
// @Summary List reviews
// @Tags Review
// @Produce json
// @Param id path string true "Restaurant ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetReviewsResponse]
// @Router /v1/restaurants/{id}/reviews [get]
func (handler *Handler) GetReviews(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReviews")
	defer scope.End()

	restaurantID := chi.URLParam(request, constant.RequestParamID)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	res, err := handler.service.GetByRestaurant(ctx, restaurantID, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("restaurant_id", restaurantID).Msg("failed to get reviews")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetMyReview
// @Summary My review of a restaurant
// @Tags Review
// @Produce json
// @Param id path string true "Restaurant ID"
// @Success 200 {object} response.Data[dto.ReviewResponse]
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/users/me/restaurants/{id}/review [get]
// @Security BearerAuth
func (handler *Handler) GetMyReview(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyReview")
	defer scope.End()

	res, err := handler.service.GetMine(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get my review")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateReview
// @Summary Update review
// @Tags Review
// @Accept json
// @Produce json
// @Param id path string true "Review ID"
// @Param request body dto.UpdateReviewRequest true "Update Review Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/reviews/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateReview(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateReview")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)
	req := dto.UpdateReviewRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update review")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Review updated successfully")
}

// DeleteReview
// @Summary Delete review
// @Tags Review
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/reviews/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteReview(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteReview")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to delete review")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Review deleted successfully")
}
