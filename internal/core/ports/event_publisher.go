package ports

import (
	"context"

	"roadside/internal/core/domain/model/outbox"
)

// EventPublisher delivers a stored domain event to the outside world.
// Implementations must be safe to call more than once for the same message.
type EventPublisher interface {
	Publish(ctx context.Context, message *outbox.Message) error
}
