package kernel

import "time"

// DomainEvent is raised by an aggregate when its state changes in a way other
// parts of the system care about. Events are persisted to the outbox in the same
// transaction as the aggregate and published afterwards.
type DomainEvent interface {
	// EventID uniquely identifies this occurrence.
	EventID() UUID
	// EventName is the routing name, e.g. "order.placed".
	EventName() string
	// AggregateID identifies the aggregate that raised the event.
	AggregateID() UUID
	// OccurredAt is when the change happened.
	OccurredAt() time.Time
}
