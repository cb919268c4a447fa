package mq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const defaultAppID = "studio-booking"

var (
	ErrNotConfirmed = errors.New("mq: broker did not confirm the message")
	ErrEmptyKey     = errors.New("mq: routing key is required")
)

// Config describes the topic exchange the studio publishes to
type Config struct {
	URL      string
	Exchange string
	AppID    string
}

// Message is one event on the exchange. ID becomes the AMQP message id,
// so consumers can drop redeliveries by it.
type Message struct {
	RoutingKey string
	ID         string
	OccurredAt time.Time
	Body       any
}

// Publisher sends JSON messages to a durable topic exchange and waits for
// the broker to confirm each one
type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	appID    string
}

func NewPublisher(cfg Config) (*Publisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("mq: dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("mq: open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(cfg.Exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("mq: declare exchange %s: %w", cfg.Exchange, err)
	}

	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("mq: enable confirms: %w", err)
	}

	appID := cfg.AppID
	if appID == "" {
		appID = defaultAppID
	}
	return &Publisher{conn: conn, ch: ch, exchange: cfg.Exchange, appID: appID}, nil
}

// Publish sends msg persistently and blocks until the broker acks it or ctx ends
func (p *Publisher) Publish(ctx context.Context, msg Message) error {
	publishing, err := encode(msg, p.appID)
	if err != nil {
		return err
	}

	confirm, err := p.ch.PublishWithDeferredConfirmWithContext(ctx, p.exchange, msg.RoutingKey, false, false, publishing)
	if err != nil {
		return fmt.Errorf("mq: publish %s: %w", msg.RoutingKey, err)
	}

	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("mq: confirm %s: %w", msg.RoutingKey, err)
	}
	if !acked {
		return fmt.Errorf("%w: %s id=%s", ErrNotConfirmed, msg.RoutingKey, msg.ID)
	}
	return nil
}

func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

func encode(msg Message, appID string) (amqp.Publishing, error) {
	if msg.RoutingKey == "" {
		return amqp.Publishing{}, ErrEmptyKey
	}

	body, err := json.Marshal(msg.Body)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("mq: marshal %s: %w", msg.RoutingKey, err)
	}

	ts := msg.OccurredAt
	if ts.IsZero() {
		ts = time.Now()
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.ID,
		Type:         msg.RoutingKey,
		AppId:        appID,
		Timestamp:    ts.UTC(),
		Body:         body,
	}, nil
}

// NopPublisher drops every message; used when events are disabled
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Message) error { return nil }

func (NopPublisher) Close() error { return nil }
