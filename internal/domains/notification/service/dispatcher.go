package service

//go:generate go run go.uber.org/mock/mockgen -source=./dispatcher.go -destination=./mocks/dispatcher_mock.go -package=mocks

import (
	"context"
	"dinebook/config"
	"dinebook/infras/otel"
	"dinebook/infras/rabbitmq"
	"dinebook/internal/domains/notification/model"
	"dinebook/shared/constant"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Dispatcher hands email jobs to the queue. Callers run it after commit and only log failures.
type Dispatcher interface {
	Dispatch(ctx context.Context, job model.EmailJob) error
}

type dispatcherImpl struct {
	queue rabbitmq.Client
	cfg   *config.Config
	otel  otel.Otel
}

func NewDispatcher(queue rabbitmq.Client, cfg *config.Config, otel otel.Otel) Dispatcher {
	return &dispatcherImpl{
		queue: queue,
		cfg:   cfg,
		otel:  otel,
	}
}

func (d *dispatcherImpl) Dispatch(ctx context.Context, job model.EmailJob) (err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Dispatch")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttributes(map[string]any{
		"email.template":       job.Template,
		"email.reservation_id": job.ReservationID,
	})

	if job.To == constant.Empty {
		log.Warn().Str("reservation_id", job.ReservationID).Msg("skipping email job without recipient")

		return nil
	}

	if err = d.queue.Publish(ctx, d.cfg.RabbitMQ.EmailQueue, job); err != nil {
		log.Error().Err(err).Str("reservation_id", job.ReservationID).Msg("failed to dispatch email job")

		return fmt.Errorf("failed to dispatch email job: %w", err)
	}

	return nil
}
