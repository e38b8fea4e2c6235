package router

import (
	"dinebook/internal/handlers/auth"
	"dinebook/internal/handlers/availability"
	"dinebook/internal/handlers/promo"
	"dinebook/internal/handlers/realtime"
	"dinebook/internal/handlers/reservation"
	"dinebook/internal/handlers/restaurant"
	"dinebook/internal/handlers/review"
	"dinebook/internal/handlers/table"
	"dinebook/internal/handlers/user"
	"dinebook/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth         auth.Handler
	User         user.Handler
	Restaurant   restaurant.Handler
	Table        table.Handler
	Availability availability.Handler
	Reservation  reservation.Handler
	Promo        promo.Handler
	Review       review.Handler
	Realtime     realtime.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthRole       middleware.AuthRole
}

// SetupRoutes mounts every domain under /v1 behind API key, JWT and role checks.
// Which routes are public and which roles they need lives in permissions.json.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.AuthRole.APIKey)
		routerGroup.Use(r.AuthRole.Auth)
		routerGroup.Use(r.AuthRole.RBAC)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Restaurant.Router(routerGroup)
		r.DomainHandlers.Table.Router(routerGroup)
		r.DomainHandlers.Availability.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
		r.DomainHandlers.Promo.Router(routerGroup)
		r.DomainHandlers.Review.Router(routerGroup)
		r.DomainHandlers.Realtime.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, authRole middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthRole:       authRole,
	}
}
