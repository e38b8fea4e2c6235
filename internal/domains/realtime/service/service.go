package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"dinebook/config"
	"dinebook/infras/kafka"
	"dinebook/infras/otel"
	availabilityService "dinebook/internal/domains/availability/service"
	reservationModel "dinebook/internal/domains/reservation/model"
	"dinebook/shared/constant"
	"dinebook/transport/ws"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// Publisher emits reservation events keyed by restaurant so one restaurant's events stay ordered.
type Publisher interface {
	Publish(ctx context.Context, event reservationModel.ReservationEvent) error
}

type Broadcaster interface {
	Broadcast(ctx context.Context, msg ws.Message)
}

type publisherImpl struct {
	kafka kafka.Client
	cfg   *config.Config
	otel  otel.Otel
}

func NewPublisher(kafka kafka.Client, cfg *config.Config, otel otel.Otel) Publisher {
	return &publisherImpl{
		kafka: kafka,
		cfg:   cfg,
		otel:  otel,
	}
}

func (p *publisherImpl) Publish(ctx context.Context, event reservationModel.ReservationEvent) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttributes(map[string]any{
		"event.type":           event.Type,
		"event.reservation_id": event.ReservationID,
	})

	err = p.kafka.SendMessages(ctx, p.cfg.Kafka.Topics.Reservation, kafka.Message{
		Key:   event.RestaurantID,
		Value: event,
	})
	if err != nil {
		log.Error().Err(err).Str("type", event.Type).Msg("failed to publish reservation event")

		return fmt.Errorf("failed to publish reservation event: %w", err)
	}

	return nil
}

// Consumer feeds reservation events to websocket subscribers and drops stale availability caches.
type Consumer struct {
	kafka        kafka.Client
	availability availabilityService.Availability
	hub          Broadcaster
	cfg          *config.Config
	otel         otel.Otel
}

func NewConsumer(
	kafka kafka.Client,
	availability availabilityService.Availability,
	hub Broadcaster,
	cfg *config.Config,
	otel otel.Otel,
) *Consumer {
	return &Consumer{
		kafka:        kafka,
		availability: availability,
		hub:          hub,
		cfg:          cfg,
		otel:         otel,
	}
}

// Run blocks until ctx is done. Every API instance joins its own group so each one sees every event.
func (c *Consumer) Run(ctx context.Context) {
	group := c.cfg.Kafka.ConsumerGroup
	if host, err := os.Hostname(); err == nil {
		group = fmt.Sprintf("%s-%s", group, host)
	}

	log.Info().Str("topic", c.cfg.Kafka.Topics.Reservation).Str("group", group).Msg("reservation event consumer started")

	c.kafka.Consume(ctx, group, c.cfg.Kafka.Topics.Reservation, c.Handle)
}

func (c *Consumer) Handle(ctx context.Context, msg kafkaGo.Message) (err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelConsumerScopeName, constant.OtelConsumerScopeName+".reservation.Handle")
	defer scope.End()
	defer scope.TraceIfError(&err)

	event, err := kafka.Decode[reservationModel.ReservationEvent](msg)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if event.RestaurantID == constant.Empty {
		return fmt.Errorf("reservation event %s has no restaurant", event.ReservationID)
	}

	c.availability.InvalidateRestaurant(ctx, event.RestaurantID)

	c.hub.Broadcast(ctx, ws.Message{
		Topic: ws.RestaurantTopic(event.RestaurantID),
		Type:  event.Type,
		Data:  event,
	})

	return nil
}
