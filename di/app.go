package di

import (
	"dinebook/infras/kafka"
	"dinebook/infras/otel"
	"dinebook/infras/rabbitmq"
	realtimeService "dinebook/internal/domains/realtime/service"
	"dinebook/transport/http"
)

// App is the API process: the HTTP server plus the consumer feeding its websocket hub.
type App struct {
	HTTP     *http.HTTP
	Consumer *realtimeService.Consumer
	Kafka    kafka.Client
	Queue    rabbitmq.Client
	Otel     otel.Otel
}
