// @title dinebook API
// @version 1.0
// @description Restaurant table reservations: catalog, availability, bookings, promo codes and reviews.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

//go:generate go tool swag init -g cmd/app/main.go -d ../../ -o ../../docs

import (
	"context"
	"dinebook/config"
	"dinebook/di"
	"dinebook/helper"
	"dinebook/shared/logger"
	"time"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger("api")

	logger.SetLogLevel(cfg)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	app := di.InitializeApp()

	ctx, cancel := context.WithCancel(context.Background())

	go app.Consumer.Run(ctx)

	app.HTTP.OnShutdown(func() {
		cancel()

		if err := app.Kafka.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Kafka writers")
		}

		if err := app.Queue.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close RabbitMQ connection")
		}

		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()

		if err := app.Otel.Shutdown(flushCtx); err != nil {
			log.Error().Err(err).Msg("Failed to flush traces")
		}
	})

	app.HTTP.Serve()
}
