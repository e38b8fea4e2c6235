package rabbitmq

//go:generate go run go.uber.org/mock/mockgen -source=./rabbitmq.go -destination=./mocks/rabbitmq_mock.go -package=mocks

import (
	"context"
	"dinebook/config"
	"dinebook/infras/otel"
	"dinebook/shared/constant"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrQueue = "rabbitmq.queue"

	initialBackoff = time.Second
	maxBackoff     = 30 * time.Second
)

var ErrDeliveriesClosed = errors.New("deliveries channel closed")

// Handler processes the body of one delivery. A nil error acks the delivery,
// anything else rejects it without requeue.
type Handler func(ctx context.Context, body []byte) error

type Client interface {
	Publish(ctx context.Context, queue string, payload any) error
	Consume(ctx context.Context, queue string, handler Handler)
	Close() error
}

type clientImpl struct {
	config *config.Config
	otel   otel.Otel

	mu   sync.Mutex
	conn *amqp.Connection
}

func New(config *config.Config, otel otel.Otel) Client {
	return &clientImpl{
		config: config,
		otel:   otel,
	}
}

// connection returns the shared publishing connection, dialing again when the broker dropped it.
func (c *clientImpl) connection() (*amqp.Connection, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil && !c.conn.IsClosed() {
		return c.conn, nil
	}

	conn, err := amqp.Dial(c.config.RabbitMQ.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial rabbitmq: %w", err)
	}

	c.conn = conn

	return conn, nil
}

func declare(ch *amqp.Channel, queue string) error {
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}

	return nil
}

func (c *clientImpl) Publish(ctx context.Context, queue string, payload any) (err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelQueueScopeName, constant.OtelQueueScopeName+".Publish")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttribute(otelAttrQueue, queue)

	body, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("failed to marshal queue payload")

		return fmt.Errorf("failed to marshal queue payload: %w", err)
	}

	conn, err := c.connection()
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("failed to connect to rabbitmq")

		return err
	}

	ch, err := conn.Channel()
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("failed to open rabbitmq channel")

		return fmt.Errorf("failed to open rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err = declare(ch, queue); err != nil {
		log.Error().Err(err).Msg("failed to declare rabbitmq queue")

		return err
	}

	err = ch.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType:  constant.ContentTypeJSON,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("failed to publish message")

		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}

// Consume blocks until ctx is done, reconnecting with a doubling backoff capped at 30s.
func (c *clientImpl) Consume(ctx context.Context, queue string, handler Handler) {
	backoff := initialBackoff

	for ctx.Err() == nil {
		conn, err := amqp.Dial(c.config.RabbitMQ.URL)
		if err != nil {
			log.Error().Err(err).Dur("retry_in", backoff).Msg("failed to dial rabbitmq, retrying")

			if !sleep(ctx, backoff) {
				return
			}

			backoff = nextBackoff(backoff)

			continue
		}

		backoff = initialBackoff

		err = c.consumeLoop(ctx, conn, queue, handler)
		_ = conn.Close()

		if ctx.Err() != nil {
			log.Info().Str("queue", queue).Msg("Consumer context done.")

			return
		}

		log.Warn().Err(err).Str("queue", queue).Msg("consume loop ended, reconnecting")

		if !sleep(ctx, 2*time.Second) {
			return
		}
	}
}

func (c *clientImpl) consumeLoop(ctx context.Context, conn *amqp.Connection, queue string, handler Handler) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(c.config.RabbitMQ.PrefetchCount, 0, false); err != nil {
		log.Warn().Err(err).Msg("failed to set rabbitmq QoS")
	}

	if err := declare(ch, queue); err != nil {
		return err
	}

	deliveries, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	log.Info().Str("queue", queue).Msg("Consuming queue")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return ErrDeliveriesClosed
			}

			c.handle(ctx, queue, d, handler)
		}
	}
}

func (c *clientImpl) handle(ctx context.Context, queue string, d amqp.Delivery, handler Handler) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelQueueScopeName, constant.OtelQueueScopeName+".handle")
	defer scope.End()

	scope.SetAttribute(otelAttrQueue, queue)

	if err := handler(ctx, d.Body); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("queue", queue).Msg("failed to handle delivery")

		if nackErr := d.Nack(false, false); nackErr != nil {
			log.Error().Err(nackErr).Msg("failed to nack delivery")
		}

		return
	}

	if err := d.Ack(false); err != nil {
		log.Error().Err(err).Msg("failed to ack delivery")
	}
}

func (c *clientImpl) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil || c.conn.IsClosed() {
		return nil
	}

	if err := c.conn.Close(); err != nil {
		return fmt.Errorf("failed to close rabbitmq connection: %w", err)
	}

	return nil
}

func nextBackoff(current time.Duration) time.Duration {
	if next := current * 2; next < maxBackoff {
		return next
	}

	return maxBackoff
}

func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
