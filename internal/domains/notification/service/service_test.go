package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"dinebook/config"
	"dinebook/infras/mailer"
	mailerMocks "dinebook/infras/mailer/mocks"
	"dinebook/infras/otel/mocks"
	rabbitmqMocks "dinebook/infras/rabbitmq/mocks"
	"dinebook/internal/domains/notification/model"
	"dinebook/internal/domains/notification/service"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.RabbitMQ.EmailQueue = "reservation.emails"

	return cfg
}

func TestDispatcher_Dispatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queue := rabbitmqMocks.NewMockClient(ctrl)
	dispatcher := service.NewDispatcher(queue, testConfig(), mocks.NewOtel())

	job := model.EmailJob{Template: model.TemplateConfirmation, To: "guest@example.com", ReservationID: "reservation-1"}

	t.Run("publishes to the email queue", func(t *testing.T) {
		queue.EXPECT().Publish(gomock.Any(), "reservation.emails", job).Return(nil)

		assert.NoError(t, dispatcher.Dispatch(context.Background(), job))
	})

	t.Run("broker error", func(t *testing.T) {
		queue.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

		assert.Error(t, dispatcher.Dispatch(context.Background(), job))
	})

	t.Run("no recipient", func(t *testing.T) {
		assert.NoError(t, dispatcher.Dispatch(context.Background(), model.EmailJob{Template: model.TemplateConfirmed}))
	})
}

func TestWorker_Handle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queue := rabbitmqMocks.NewMockClient(ctrl)
	mail := mailerMocks.NewMockMailer(ctrl)
	worker := service.NewWorker(queue, mail, testConfig(), mocks.NewOtel())

	body, _ := json.Marshal(model.EmailJob{
		Template:        model.TemplateConfirmed,
		To:              "guest@example.com",
		ReservationID:   "reservation-1",
		ReservationDate: "2025-06-01",
		StartTime:       "19:00",
		EndTime:         "21:00",
		GuestCount:      2,
		TotalPrice:      15.75,
	})

	t.Run("renders and sends", func(t *testing.T) {
		mail.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg mailer.Message) error {
			assert.Equal(t, "guest@example.com", msg.To)
			assert.Equal(t, "Your reservation is confirmed", msg.Subject)
			assert.Contains(t, msg.HTML, "reservation-1")

			return nil
		})

		assert.NoError(t, worker.Handle(context.Background(), body))
	})

	t.Run("mailer error", func(t *testing.T) {
		mail.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("smtp timeout"))

		assert.Error(t, worker.Handle(context.Background(), body))
	})

	t.Run("malformed job", func(t *testing.T) {
		assert.Error(t, worker.Handle(context.Background(), []byte("{")))
	})

	t.Run("unknown template", func(t *testing.T) {
		unknown, _ := json.Marshal(model.EmailJob{Template: "reminder", To: "guest@example.com"})

		assert.Error(t, worker.Handle(context.Background(), unknown))
	})
}

func TestWorker_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queue := rabbitmqMocks.NewMockClient(ctrl)
	worker := service.NewWorker(queue, mailerMocks.NewMockMailer(ctrl), testConfig(), mocks.NewOtel())

	gomock.InOrder(
		queue.EXPECT().Consume(gomock.Any(), "reservation.emails", gomock.Any()),
		queue.EXPECT().Close().Return(nil),
	)

	worker.Run(context.Background())
}
