package table

import (
	"dinebook/infras/otel"
	"dinebook/internal/domains/table/model/dto"
	"dinebook/internal/domains/table/service"
	"dinebook/shared/constant"
	"dinebook/shared/validator"
	"dinebook/transport/http/middleware"
	"dinebook/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Table
	otel    otel.Otel
}

func New(service service.Table, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	byID := router.With(middleware.UUIDParam(constant.RequestParamID))

	byID.Get("/restaurants/{id}/tables", handler.GetTables)
	byID.Post("/restaurants/{id}/tables", handler.CreateTable)
	byID.Get("/tables/{id}", handler.GetTableByID)
	byID.Patch("/tables/{id}", handler.UpdateTable)
	byID.Delete("/tables/{id}", handler.DeleteTable)
}

// GetTables lists the tables of a restaurant ordered by table number.
// @Summary List tables
// @Tags Table
// @Produce json
// @Param id path string true "Restaurant ID"
// @Success 200 {object} response.Data[[]dto.TableResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/restaurants/{id}/tables [get]
func (handler *Handler) GetTables(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTables")
	defer scope.End()

	restaurantID := chi.URLParam(request, constant.RequestParamID)

	tables, err := handler.service.GetByRestaurant(ctx, restaurantID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("restaurant_id", restaurantID).Msg("failed to get tables")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, tables)
}

// GetTableByID
// @Summary Get table
// @Tags Table
// @Produce json
// @Param id path string true "Table ID"
// @Success 200 {object} response.Data[dto.TableResponse]
// @Failure 404 {object} response.Error
// @Router /v1/tables/{id} [get]
func (handler *Handler) GetTableByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTableByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	table, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to get table")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, table)
}

// CreateTable adds a table to a restaurant.
// @Summary Create table
// @Tags Table
// @Accept json
// @Produce json
// @Param id path string true "Restaurant ID"
// @Param request body dto.CreateTableRequest true "Create Table Request"
// @Success 201 {object} response.Data[dto.TableResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/restaurants/{id}/tables [post]
// @Security BearerAuth
func (handler *Handler) CreateTable(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTable")
	defer scope.End()

	restaurantID := chi.URLParam(request, constant.RequestParamID)
	req := dto.CreateTableRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	table, err := handler.service.Create(ctx, restaurantID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("restaurant_id", restaurantID).Msg("failed to create table")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, table)
}

// UpdateTable
// @Summary Update table
// @Tags Table
// @Accept json
// @Produce json
// @Param id path string true "Table ID"
// @Param request body dto.UpdateTableRequest true "Update Table Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/tables/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateTable(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTable")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)
	req := dto.UpdateTableRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update table")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Table updated successfully")
}

// DeleteTable
// @Summary Delete table
// @Tags Table
// @Produce json
// @Param id path string true "Table ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/tables/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteTable(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTable")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to delete table")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Table deleted successfully")
}
