package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

type Publisher interface {
	PublishCartFinalized(ctx context.Context, ev CartFinalized) error
}

// Nop drops every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) PublishCartFinalized(context.Context, CartFinalized) error { return nil }

type RabbitPublisher struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
	producer string
	logger   zerolog.Logger
	now      func() time.Time
}

// Dial connects to the broker and declares the events exchange.
func Dial(url, exchange string, logger zerolog.Logger) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	p, err := newRabbitPublisher(ch, exchange, logger)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

func newRabbitPublisher(ch channel, exchange string, logger zerolog.Logger) (*RabbitPublisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	if err := declareExchange(ch, exchange); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare events exchange: %w", err)
	}
	return &RabbitPublisher{
		ch:       ch,
		exchange: exchange,
		producer: storefrontProducer,
		logger:   logger,
		now:      time.Now,
	}, nil
}

func (p *RabbitPublisher) PublishCartFinalized(ctx context.Context, ev CartFinalized) error {
	env := newCartFinalizedEnvelope(ev, p.producer, p.now().UTC())
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal CartFinalized: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	err = p.ch.PublishWithContext(
		pubCtx,
		p.exchange,
		CartFinalizedRoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    env.EventID,
			Timestamp:    env.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		p.logger.Error().Err(err).Str("session_id", ev.SessionID).Msg("events: publish CartFinalized")
		return fmt.Errorf("publish CartFinalized: %w", err)
	}
	p.logger.Info().Str("event_id", env.EventID).Str("session_id", ev.SessionID).Msg("events: published CartFinalized")
	return nil
}

func (p *RabbitPublisher) Close() error {
	err := p.ch.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
