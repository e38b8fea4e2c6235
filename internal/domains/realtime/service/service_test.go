package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"dinebook/config"
	"dinebook/infras/kafka"
	kafkaMocks "dinebook/infras/kafka/mocks"
	"dinebook/infras/otel/mocks"
	availabilityMocks "dinebook/internal/domains/availability/service/mocks"
	"dinebook/internal/domains/realtime/service"
	reservationModel "dinebook/internal/domains/reservation/model"
	"dinebook/transport/ws"
)

type recordingHub struct {
	messages []ws.Message
}

func (h *recordingHub) Broadcast(_ context.Context, msg ws.Message) {
	h.messages = append(h.messages, msg)
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Kafka.Topics.Reservation = "reservation.events"
	cfg.Kafka.ConsumerGroup = "dinebook-api"

	return cfg
}

func testEvent() reservationModel.ReservationEvent {
	return reservationModel.ReservationEvent{
		Type:            reservationModel.EventCreated,
		ReservationID:   "reservation-1",
		RestaurantID:    "restaurant-1",
		TableID:         "table-1",
		ReservationDate: "2025-06-01",
		StartTime:       "19:00",
		EndTime:         "21:00",
		Status:          reservationModel.StatusPending,
		OccurredAt:      time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC),
	}
}

func TestPublisher_Publish(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := kafkaMocks.NewMockClient(ctrl)
	publisher := service.NewPublisher(client, testConfig(), mocks.NewOtel())
	event := testEvent()

	t.Run("keyed by restaurant", func(t *testing.T) {
		client.EXPECT().
			SendMessages(gomock.Any(), "reservation.events", kafka.Message{Key: "restaurant-1", Value: event}).
			Return(nil)

		assert.NoError(t, publisher.Publish(context.Background(), event))
	})

	t.Run("broker error", func(t *testing.T) {
		client.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("leader not available"))

		assert.Error(t, publisher.Publish(context.Background(), event))
	})
}

func TestConsumer_Handle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	availability := availabilityMocks.NewMockAvailability(ctrl)
	hub := &recordingHub{}
	consumer := service.NewConsumer(kafkaMocks.NewMockClient(ctrl), availability, hub, testConfig(), mocks.NewOtel())

	t.Run("invalidates and broadcasts", func(t *testing.T) {
		value, _ := json.Marshal(testEvent())

		availability.EXPECT().InvalidateRestaurant(gomock.Any(), "restaurant-1")

		err := consumer.Handle(context.Background(), kafkaGo.Message{Topic: "reservation.events", Value: value})

		assert.NoError(t, err)
		assert.Len(t, hub.messages, 1)
		assert.Equal(t, "restaurant:restaurant-1", hub.messages[0].Topic)
		assert.Equal(t, reservationModel.EventCreated, hub.messages[0].Type)
	})

	t.Run("malformed payload", func(t *testing.T) {
		err := consumer.Handle(context.Background(), kafkaGo.Message{Value: []byte("not json")})
		assert.Error(t, err)
	})

	t.Run("missing restaurant", func(t *testing.T) {
		value, _ := json.Marshal(reservationModel.ReservationEvent{ReservationID: "reservation-1"})

		err := consumer.Handle(context.Background(), kafkaGo.Message{Value: value})
		assert.Error(t, err)
	})
}

func TestConsumer_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := kafkaMocks.NewMockClient(ctrl)
	consumer := service.NewConsumer(client, availabilityMocks.NewMockAvailability(ctrl), &recordingHub{}, testConfig(), mocks.NewOtel())

	client.EXPECT().Consume(gomock.Any(), gomock.Any(), "reservation.events", gomock.Any())

	consumer.Run(context.Background())
}
