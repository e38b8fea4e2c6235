package restaurant

import (
	"dinebook/infras/otel"
	"dinebook/internal/domains/restaurant/model/dto"
	"dinebook/internal/domains/restaurant/service"
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
	service service.Restaurant
	otel    otel.Otel
}

func New(service service.Restaurant, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router registers flat paths; tables, reviews and reservations share the /restaurants prefix.
func (handler *Handler) Router(router chi.Router) {
	byID := router.With(middleware.UUIDParam(constant.RequestParamID))

	router.Get("/restaurants", handler.GetRestaurants)
	router.Post("/restaurants", handler.CreateRestaurant)
	byID.Get("/restaurants/{id}", handler.GetRestaurantByID)
	byID.Patch("/restaurants/{id}", handler.UpdateRestaurant)
	byID.Delete("/restaurants/{id}", handler.DeleteRestaurant)
}

// GetRestaurants lists active restaurants.
// @Summary List restaurants
// @Description List active restaurants. Passing date and time narrows the list to restaurants with a free table.
// @Tags Restaurant
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Name contains"
// @Param location query string false "City contains"
// @Param category query string false "Cuisine contains"
// @Param min_rating query number false "Minimum rating"
// @Param price_range query int false "Price range (1-4)"
// @Param date query string false "Date (YYYY-MM-DD)"
// @Param time query string false "Start time (HH:MM)"
// @Param end_time query string false "End time (HH:MM)"
// @Param party_size query int false "Party size"
// @Success 200 {object} response.Data[dto.GetRestaurantsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/restaurants [get]
func (handler *Handler) GetRestaurants(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRestaurants")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	filter := dto.ListFilter{}
	filter.FromRequest(request)

	if err := validator.ValidateStruct(&filter); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("invalid restaurant filter")

		response.WithError(writer, err)

		return
	}

	restaurants, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get restaurants")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, restaurants)
}

// GetRestaurantByID returns a restaurant with its tables.
// @Summary Get restaurant
// @Tags Restaurant
// @Produce json
// @Param id path string true "Restaurant ID"
// @Success 200 {object} response.Data[dto.RestaurantDetailResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/restaurants/{id} [get]
func (handler *Handler) GetRestaurantByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRestaurantByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	restaurant, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to get restaurant")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, restaurant)
}

// CreateRestaurant handles the creation of a restaurant.
// @Summary Create restaurant
// @Tags Restaurant
// @Accept json
// @Produce json
// @Param request body dto.CreateRestaurantRequest true "Create Restaurant Request"
// @Success 201 {object} response.Data[dto.RestaurantResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/restaurants [post]
// @Security BearerAuth
func (handler *Handler) CreateRestaurant(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRestaurant")
	defer scope.End()

	req := dto.CreateRestaurantRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	restaurant, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create restaurant")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Restaurant created " + restaurant.ID)

	response.WithJSON(writer, http.StatusCreated, restaurant)
}

// UpdateRestaurant applies a partial update.
// @Summary Update restaurant
// @Tags Restaurant
// @Accept json
// @Produce json
// @Param id path string true "Restaurant ID"
// @Param request body dto.UpdateRestaurantRequest true "Update Restaurant Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/restaurants/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRestaurant(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRestaurant")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)
	req := dto.UpdateRestaurantRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update restaurant")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Restaurant updated successfully")
}

// DeleteRestaurant removes a restaurant with its tables, reservations and reviews.
// @Summary Delete restaurant
// @Tags Restaurant
// @Produce json
// @Param id path string true "Restaurant ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/restaurants/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRestaurant(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRestaurant")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to delete restaurant")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Restaurant deleted successfully")
}
