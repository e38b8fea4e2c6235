package service

import (
	"context"
	"dinebook/config"
	"dinebook/infras/mailer"
	"dinebook/infras/otel"
	"dinebook/infras/rabbitmq"
	"dinebook/internal/domains/notification/model"
	"dinebook/internal/domains/notification/templates"
	"dinebook/shared/constant"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

const flushTimeout = 5 * time.Second

// Worker renders queued email jobs and delivers them through the mailer.
type Worker struct {
	queue  rabbitmq.Client
	mailer mailer.Mailer
	cfg    *config.Config
	otel   otel.Otel
}

func NewWorker(queue rabbitmq.Client, mailer mailer.Mailer, cfg *config.Config, otel otel.Otel) *Worker {
	return &Worker{
		queue:  queue,
		mailer: mailer,
		cfg:    cfg,
		otel:   otel,
	}
}

// Run consumes the email queue until ctx is done.
func (w *Worker) Run(ctx context.Context) {
	log.Info().Str("queue", w.cfg.RabbitMQ.EmailQueue).Msg("email worker started")

	w.queue.Consume(ctx, w.cfg.RabbitMQ.EmailQueue, w.Handle)

	if err := w.queue.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close rabbitmq connection")
	}

	flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flushTimeout)
	defer cancel()

	if err := w.otel.Shutdown(flushCtx); err != nil {
		log.Error().Err(err).Msg("failed to flush traces")
	}

	log.Info().Msg("email worker stopped")
}

// Handle processes one delivery body. Malformed jobs and unknown templates are rejected.
func (w *Worker) Handle(ctx context.Context, body []byte) (err error) {
	ctx, scope := w.otel.NewScope(ctx, constant.OtelConsumerScopeName, constant.OtelConsumerScopeName+".email.Handle")
	defer scope.End()
	defer scope.TraceIfError(&err)

	var job model.EmailJob
	if err = json.Unmarshal(body, &job); err != nil {
		log.Error().Err(err).Msg("failed to decode email job")

		return fmt.Errorf("failed to decode email job: %w", err)
	}

	subject, html, err := templates.Render(job.Template, job)
	if err != nil {
		log.Error().Err(err).Str("reservation_id", job.ReservationID).Msg("failed to render email")

		return err
	}

	if err = w.mailer.Send(ctx, mailer.Message{To: job.To, Subject: subject, HTML: html}); err != nil {
		log.Error().Err(err).Str("reservation_id", job.ReservationID).Msg("failed to send email")

		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Info().Str("reservation_id", job.ReservationID).Str("template", job.Template).Msg("email sent")

	return nil
}
