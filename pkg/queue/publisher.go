// Package queue publishes domain events to RabbitMQ. Publishing is best
// effort: callers log a failure and carry on.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type TicketEvent struct {
	MovieSessionID uuid.UUID `json:"movie_session_id"`
	Row            int       `json:"row"`
	Seat           int       `json:"seat"`
}

// OrderCreatedEvent is emitted once an order has been committed.
type OrderCreatedEvent struct {
	OrderID   uuid.UUID     `json:"order_id"`
	UserID    uuid.UUID     `json:"user_id"`
	CreatedAt time.Time     `json:"created_at"`
	Tickets   []TicketEvent `json:"tickets"`
}

type Publisher interface {
	PublishOrderCreated(ctx context.Context, event OrderCreatedEvent) error
}

// AMQPPublisher opens a connection per publish and declares the queue
// durable before sending.
type AMQPPublisher struct {
	url   string
	queue string
	log   *zap.Logger
}

func NewAMQPPublisher(url, queue string, log *zap.Logger) *AMQPPublisher {
	return &AMQPPublisher{
		url:   url,
		queue: queue,
		log:   log.With(zap.String("publisher", "amqp")),
	}
}

func (p *AMQPPublisher) PublishOrderCreated(ctx context.Context, event OrderCreatedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}
	return p.publish(ctx, body)
}

func (p *AMQPPublisher) publish(ctx context.Context, body []byte) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Warn("Dial failed", zap.Error(err))
		return fmt.Errorf("amqp dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn("Channel open failed", zap.Error(err))
		return fmt.Errorf("amqp channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		p.queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		p.log.Warn("Queue declare failed", zap.Error(err), zap.String("queue", p.queue))
		return fmt.Errorf("amqp queue declare: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		p.log.Warn("Publish failed", zap.Error(err), zap.String("queue", p.queue))
		return fmt.Errorf("amqp publish: %w", err)
	}

	return nil
}

// Noop discards events; used when no broker is configured.
type Noop struct{}

func (Noop) PublishOrderCreated(context.Context, OrderCreatedEvent) error { return nil }
