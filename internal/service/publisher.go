// Package service publishes domain events to RabbitMQ.  Publishing is best
// effort: failures are logged and returned so callers can ignore them
// without interrupting the request that produced the event.
package service

import (
    "context"
    "encoding/json"
    "fmt"
    "log/slog"
    "time"

    "github.com/google/uuid"
    amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher sends one event to a named queue.
type Publisher interface {
    Publish(ctx context.Context, queue string, event any) error
}

// AMQPPublisher dials the broker for every message.
type AMQPPublisher struct {
    URL    string
    Logger *slog.Logger
}

// NewAMQPPublisher returns a publisher for the broker at url.
func NewAMQPPublisher(url string, logger *slog.Logger) *AMQPPublisher {
    return &AMQPPublisher{URL: url, Logger: logger}
}

// Publish declares queue (durable, idempotent) and sends event as a
// persistent JSON message with a fresh message id.
func (p *AMQPPublisher) Publish(ctx context.Context, queue string, event any) error {
    body, err := json.Marshal(event)
    if err != nil {
        return fmt.Errorf("marshal event: %w", err)
    }

    conn, err := amqp.Dial(p.URL)
    if err != nil {
        p.Logger.Warn("rabbitmq: dial failed", "err", err)
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        p.Logger.Warn("rabbitmq: channel open failed", "err", err)
        return err
    }
    defer func() { _ = ch.Close() }()

    if _, err := ch.QueueDeclare(
        queue, // name
        true,  // durable
        false, // autoDelete
        false, // exclusive
        false, // noWait
        nil,   // args
    ); err != nil {
        p.Logger.Warn("rabbitmq: queue declare failed", "queue", queue, "err", err)
        return err
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        MessageId:    uuid.NewString(),
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx,
        "",    // default exchange
        queue, // routing key = queue name
        false, // mandatory
        false, // immediate
        pub,
    ); err != nil {
        p.Logger.Warn("rabbitmq: publish failed", "queue", queue, "err", err)
        return err
    }
    return nil
}

// PublishTimeout bounds a background publish.
const PublishTimeout = 5 * time.Second

// PublishAsync publishes event from a new goroutine with its own timeout
// so a slow broker never delays the caller.  A nil publisher is a no-op.
// The returned channel is closed once the attempt has finished.
func PublishAsync(p Publisher, logger *slog.Logger, queue string, event any) <-chan struct{} {
    done := make(chan struct{})
    if p == nil {
        close(done)
        return done
    }
    go func() {
        defer close(done)
        ctx, cancel := context.WithTimeout(context.Background(), PublishTimeout)
        defer cancel()
        if err := p.Publish(ctx, queue, event); err != nil {
            logger.Warn("event not published", "queue", queue, "err", err)
        }
    }()
    return done
}
