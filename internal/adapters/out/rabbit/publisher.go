// Package rabbit publishes outbox messages to a RabbitMQ topic exchange.
package rabbit

import (
	"context"
	"sync"

	"roadside/internal/core/domain/model/outbox"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchange is the durable topic exchange every domain event goes to. The
// routing key is the event name, e.g. "order.placed".
const Exchange = "roadside.events"

// Publisher owns one channel. amqp channels must not be used concurrently, so
// publishes are serialized.
type Publisher struct {
	mu sync.Mutex
	ch *amqp.Channel
}

func NewPublisher(conn *amqp.Connection) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	err = ch.ExchangeDeclare(Exchange, "topic", true, false, false, false, nil)
	if err != nil {
		_ = ch.Close()
		return nil, err
	}
	return &Publisher{ch: ch}, nil
}

func (p *Publisher) Publish(ctx context.Context, message *outbox.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.ch.PublishWithContext(ctx, Exchange, message.Name, false, false, toPublishing(message))
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

// toPublishing keeps the outbox id as MessageId so consumers can drop the
// duplicates at-least-once relaying produces.
func toPublishing(message *outbox.Message) amqp.Publishing {
	return amqp.Publishing{
		MessageId:    message.ID.String(),
		Type:         message.Name,
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    message.OccurredAt,
		Headers: amqp.Table{
			"aggregate_id": message.AggregateID.String(),
		},
		Body: message.Payload,
	}
}
