// Package outbox models domain events waiting to be published.
package outbox

import (
	"encoding/json"
	"fmt"
	"time"

	"roadside/internal/core/domain/model/kernel"
)

// Message is a serialized domain event stored in the same transaction as the
// aggregate that raised it.
type Message struct {
	ID          kernel.UUID
	Name        string
	AggregateID kernel.UUID
	Payload     []byte
	OccurredAt  time.Time
	ProcessedAt *time.Time
}

// NewMessage serializes event into an unprocessed message.
func NewMessage(event kernel.DomainEvent) (*Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", event.EventName(), err)
	}
	return &Message{
		ID:          event.EventID(),
		Name:        event.EventName(),
		AggregateID: event.AggregateID(),
		Payload:     payload,
		OccurredAt:  event.OccurredAt(),
	}, nil
}

// MarkProcessed records the moment the message was published.
func (m *Message) MarkProcessed(at time.Time) {
	m.ProcessedAt = &at
}

func (m *Message) IsProcessed() bool {
	return m.ProcessedAt != nil
}
