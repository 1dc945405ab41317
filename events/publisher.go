package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"lovematch_server/metrics"
	"lovematch_server/models"
)

// AppID marks every message this server puts on the exchange.
const AppID = "lovematch-server"

// Sender puts one event on the exchange under routingKey.
type Sender interface {
	Publish(ctx context.Context, routingKey string, event any) error
}

// Publisher publishes match and message events to the topic exchange.
type Publisher interface {
	Sender
	Close() error
}

// NewPublisher connects to RabbitMQ and declares the topic exchange. Without a
// URL, or when the broker cannot be reached, events are dropped by a noop publisher
// and matching keeps working.
func NewPublisher(amqpURL, exchange string) Publisher {
	if amqpURL == "" {
		log.Info().Msg("rabbitmq disabled: empty amqp url, match and message events are dropped")
		return noopPublisher{reason: "empty amqp url"}
	}

	p, err := dial(amqpURL, exchange)
	if err != nil {
		log.Warn().Err(err).Msg("rabbitmq unavailable, match and message events are dropped")
		return noopPublisher{reason: err.Error()}
	}
	log.Info().Str("exchange", exchange).Msg("rabbitmq connected")
	return p
}

func dial(amqpURL, exchange string) (*amqpPublisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}
	return &amqpPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

// newPublishing wraps an encoded event. The routing key doubles as the message type.
func newPublishing(routingKey string, body []byte, now time.Time) amqp.Publishing {
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    now.UTC(),
		Type:         routingKey,
		AppId:        AppID,
		Body:         body,
	}
}

// PublishMatch announces a new match under match.created.
func PublishMatch(ctx context.Context, s Sender, event models.MatchEvent) error {
	return s.Publish(ctx, models.RoutingKeyMatchCreated, event)
}

// PublishMessage announces a stored chat message under message.sent.
func PublishMessage(ctx context.Context, s Sender, msg models.Message) error {
	return s.Publish(ctx, models.RoutingKeyMessageSent, msg)
}

type amqpPublisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func (p *amqpPublisher) Publish(ctx context.Context, routingKey string, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", routingKey, err)
	}

	if err := p.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, newPublishing(routingKey, body, time.Now())); err != nil {
		metrics.IncAMQPPublishError()
		log.Error().Err(err).Str("routingKey", routingKey).Msg("failed to publish event")
		return err
	}
	return nil
}

func (p *amqpPublisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

type noopPublisher struct {
	reason string
}

func (n noopPublisher) Publish(_ context.Context, routingKey string, _ any) error {
	log.Debug().Str("routingKey", routingKey).Str("reason", n.reason).Msg("event dropped")
	return nil
}

func (noopPublisher) Close() error {
	return nil
}

// Mode is "amqp" or "noop", for the startup log.
func Mode(p Publisher) string {
	switch p.(type) {
	case *amqpPublisher:
		return "amqp"
	case noopPublisher:
		return "noop"
	default:
		return "unknown"
	}
}

// NoopReason is why events are being dropped, or "" when they are not.
func NoopReason(p Publisher) string {
	if n, ok := p.(noopPublisher); ok {
		return n.reason
	}
	return ""
}
