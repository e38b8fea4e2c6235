package realtime

import (
	"dinebook/config"
	"dinebook/infras/otel"
	"dinebook/shared/constant"
	"dinebook/transport/http/middleware"
	"dinebook/transport/ws"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const headerOrigin = "Origin"

type Handler struct {
	hub      *ws.Hub
	cfg      *config.Config
	otel     otel.Otel
	upgrader websocket.Upgrader
}

func New(hub *ws.Hub, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		hub:  hub,
		cfg:  cfg,
		otel: otel,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.Websocket.ReadBufferSize,
			WriteBufferSize: cfg.Websocket.WriteBufferSize,
			CheckOrigin:     allowOrigin(cfg.Websocket.AllowedOrigins),
		},
	}
}

// allowOrigin accepts every origin when none are configured.
func allowOrigin(origins []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		if len(origins) == 0 || slices.Contains(origins, constant.Asterix) {
			return true
		}

		return slices.Contains(origins, r.Header.Get(headerOrigin))
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/ws", func(routerGroup chi.Router) {
		byID := routerGroup.With(middleware.UUIDParam(constant.RequestParamID))

		byID.Get("/restaurants/{id}", handler.SubscribeRestaurant)
	})
}

// SubscribeRestaurant upgrades the connection and streams the reservation events of one restaurant.
// @Summary Restaurant reservation feed
// @Description Websocket stream of reservation.created, reservation.confirmed, reservation.updated, reservation.cancelled and reservation.completed events.
// @Tags Realtime
// @Param id path string true "Restaurant ID"
// @Success 101
// @Router /v1/ws/restaurants/{id} [get]
func (handler *Handler) SubscribeRestaurant(writer http.ResponseWriter, request *http.Request) {
	_, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SubscribeRestaurant")
	defer scope.End()

	restaurantID := chi.URLParam(request, constant.RequestParamID)
	scope.SetAttribute("restaurant_id", restaurantID)

	conn, err := handler.upgrader.Upgrade(writer, request, nil)
	if err != nil {
		// the upgrader has already answered the request
		scope.TraceError(err)
		log.Error().Err(err).Str("restaurant_id", restaurantID).Msg("failed to upgrade websocket")

		return
	}

	client := ws.NewClient(handler.hub, conn, handler.cfg.Websocket.SendBuffer)
	handler.hub.Attach(client, ws.RestaurantTopic(restaurantID))

	go client.WritePump()
	go client.ReadPump()
}
