package events

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	DefaultExchange         = "storefront.events"
	CartFinalizedRoutingKey = "cart.finalized.v1"
	CartFinalizedEventName  = "CartFinalized"
	cartFinalizedVersion    = 1
	storefrontProducer      = "storefront-cart"
)

func declareExchange(ch channel, name string) error {
	return ch.ExchangeDeclare(
		name,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
}

// channel is the subset of *amqp.Channel used for publishing.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}
