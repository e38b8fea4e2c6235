//go:build wireinject
// +build wireinject

package di

import (
	"dinebook/config"
	"dinebook/infras/jwt"
	"dinebook/infras/kafka"
	"dinebook/infras/mailer"
	"dinebook/infras/otel"
	"dinebook/infras/postgres"
	"dinebook/infras/rabbitmq"
	"dinebook/infras/redis"
	"dinebook/infras/s3"
	"dinebook/internal/domains/pricing"
	"dinebook/permissions"
	"dinebook/shared/cache"
	"dinebook/transport/http"
	"dinebook/transport/http/middleware"
	"dinebook/transport/http/router"
	"dinebook/transport/ws"

	"github.com/google/wire"

	authService "dinebook/internal/domains/auth/service"
	availabilityRepository "dinebook/internal/domains/availability/repository"
	availabilityService "dinebook/internal/domains/availability/service"
	notificationService "dinebook/internal/domains/notification/service"
	promoRepository "dinebook/internal/domains/promo/repository"
	promoService "dinebook/internal/domains/promo/service"
	realtimeService "dinebook/internal/domains/realtime/service"
	reservationRepository "dinebook/internal/domains/reservation/repository"
	reservationService "dinebook/internal/domains/reservation/service"
	restaurantRepository "dinebook/internal/domains/restaurant/repository"
	restaurantService "dinebook/internal/domains/restaurant/service"
	reviewRepository "dinebook/internal/domains/review/repository"
	reviewService "dinebook/internal/domains/review/service"
	tableRepository "dinebook/internal/domains/table/repository"
	tableService "dinebook/internal/domains/table/service"
	userRepository "dinebook/internal/domains/user/repository"
	userService "dinebook/internal/domains/user/service"

	authHandler "dinebook/internal/handlers/auth"
	availabilityHandler "dinebook/internal/handlers/availability"
	promoHandler "dinebook/internal/handlers/promo"
	realtimeHandler "dinebook/internal/handlers/realtime"
	reservationHandler "dinebook/internal/handlers/reservation"
	restaurantHandler "dinebook/internal/handlers/restaurant"
	reviewHandler "dinebook/internal/handlers/review"
	tableHandler "dinebook/internal/handlers/table"
	userHandler "dinebook/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
	rabbitmq.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var realtime = wire.NewSet(
	ws.NewHub,
	wire.Bind(new(realtimeService.Broadcaster), new(*ws.Hub)),
	realtimeService.NewPublisher,
	realtimeService.NewConsumer,
)

var domains = wire.NewSet(
	userRepository.New,
	userService.New,
	authService.New,
	restaurantRepository.New,
	restaurantService.New,
	tableRepository.New,
	tableService.New,
	availabilityRepository.New,
	availabilityService.New,
	promoRepository.New,
	promoService.New,
	pricing.New,
	reservationRepository.New,
	reservationService.New,
	reviewRepository.New,
	reviewService.New,
	notificationService.NewDispatcher,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	restaurantHandler.New,
	tableHandler.New,
	availabilityHandler.New,
	reservationHandler.New,
	promoHandler.New,
	reviewHandler.New,
	realtimeHandler.New,
	router.New,
)

// InitializeService builds the HTTP API without background consumers.
func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		realtime,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

// InitializeApp builds the HTTP API together with the reservation event consumer feeding its websocket hub.
func InitializeApp() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		realtime,
		domains,
		routing,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}

func InitializeWorker() *notificationService.Worker {
	wire.Build(
		configurations,
		otel.New,
		rabbitmq.New,
		mailer.New,
		notificationService.NewWorker,
	)

	return &notificationService.Worker{}
}
