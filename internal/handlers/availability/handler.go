package availability

import (
	"dinebook/config"
	"dinebook/infras/otel"
	"dinebook/internal/domains/availability/model/dto"
	"dinebook/internal/domains/availability/service"
	"dinebook/shared/constant"
	"dinebook/shared/failure"
	"dinebook/shared/validator"
	"dinebook/transport/http/middleware"
	"dinebook/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Availability
	cfg     *config.Config
	otel    otel.Otel
}

func New(service service.Availability, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		service: service,
		cfg:     cfg,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	byID := router.With(middleware.UUIDParam(constant.RequestParamID))

	byID.Get("/restaurants/{id}/tables/availability", handler.CheckAvailability)
	byID.Get("/restaurants/{id}/available-tables", handler.GetAvailableTables)
	byID.Get("/restaurants/{id}/tables/reservations", handler.GetTablesWithReservations)
}

// window reads and validates the query string. A missing end time defaults to the standard sitting.
func (handler *Handler) window(request *http.Request) (dto.WindowRequest, string, error) {
	req := dto.WindowRequest{}
	req.FromRequest(request)

	if err := validator.ValidateStruct(&req); err != nil {
		return req, constant.Empty, err
	}

	end, err := handler.resolveEnd(req.Time, req.EndTime)

	return req, end, err
}

func (handler *Handler) resolveEnd(start, end string) (string, error) {
	if end != constant.Empty || start == constant.Empty {
		return end, nil
	}

	end, err := service.EndTime(start, handler.cfg.Reservation.DefaultDurationMinutes)
	if err != nil {
		return constant.Empty, failure.BadRequestFromString("time must use the HH:MM format") // nolint:wrapcheck
	}

	return end, nil
}

// CheckAvailability lists every table of a restaurant flagged with its availability for the window.
// @Summary Check table availability
// @Tags Availability
// @Produce json
// @Param id path string true "Restaurant ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param time query string true "Start time (HH:MM)"
// @Param endTime query string false "End time (HH:MM)"
// @Param partySize query int false "Party size"
// @Success 200 {object} response.Data[dto.TableAvailabilityResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/restaurants/{id}/tables/availability [get]
func (handler *Handler) CheckAvailability(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckAvailability")
	defer scope.End()

	restaurantID := chi.URLParam(request, constant.RequestParamID)

	req, end, err := handler.window(request)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("invalid availability window")

		response.WithError(writer, err)

		return
	}

	tables, err := handler.service.CheckRestaurantAvailability(ctx, req.ToQuery(restaurantID, end))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("restaurant_id", restaurantID).Msg("failed to check availability")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, dto.TableAvailabilityResponse{
		Date:   req.Date,
		Time:   req.Time,
		End:    end,
		Tables: tables,
	})
}

// GetAvailableTables returns the ids of the free tables seating the party.
// @Summary Available table ids
// @Tags Availability
// @Produce json
// @Param id path string true "Restaurant ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param time query string true "Start time (HH:MM)"
// @Param endTime query string false "End time (HH:MM)"
// @Param partySize query int false "Party size"
// @Success 200 {object} response.Data[dto.AvailableTablesResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/restaurants/{id}/available-tables [get]
func (handler *Handler) GetAvailableTables(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailableTables")
	defer scope.End()

	restaurantID := chi.URLParam(request, constant.RequestParamID)

	req, end, err := handler.window(request)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("invalid availability window")

		response.WithError(writer, err)

		return
	}

	ids, err := handler.service.GetAvailableTableIDs(ctx, req.ToQuery(restaurantID, end))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("restaurant_id", restaurantID).Msg("failed to get available tables")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, dto.AvailableTablesResponse{
		Date:     req.Date,
		Time:     req.Time,
		End:      end,
		TableIDs: ids,
	})
}

// GetTablesWithReservations lays out a restaurant's tables with their bookings for the day.
// @Summary Tables with reservations
// @Tags Availability
// @Produce json
// @Security BearerAuth
// @Param id path string true "Restaurant ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param time query string false "Window start (HH:MM)"
// @Param endTime query string false "Window end (HH:MM)"
// @Success 200 {object} response.Data[dto.TablesWithReservationsResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/restaurants/{id}/tables/reservations [get]
func (handler *Handler) GetTablesWithReservations(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTablesWithReservations")
	defer scope.End()

	restaurantID := chi.URLParam(request, constant.RequestParamID)

	req := dto.FloorRequest{}
	req.FromRequest(request)

	err := validator.ValidateStruct(&req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("invalid floor plan query")

		response.WithError(writer, err)

		return
	}

	end, err := handler.resolveEnd(req.Time, req.EndTime)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	tables, err := handler.service.TablesWithReservations(ctx, req.ToQuery(restaurantID, end))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("restaurant_id", restaurantID).Msg("failed to get tables with reservations")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, dto.TablesWithReservationsResponse{
		Date:   req.Date,
		Time:   req.Time,
		End:    end,
		Tables: tables,
	})
}
