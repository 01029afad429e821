package ports

import (
	"context"

	"roadside/internal/core/domain/model/outbox"
)

// OutboxRepository stores domain events until they are published.
type OutboxRepository interface {
	Add(ctx context.Context, messages ...*outbox.Message) error

	// GetUnprocessedForUpdate returns up to limit unpublished messages, oldest
	// first, skipping rows another relay holds.
	GetUnprocessedForUpdate(ctx context.Context, limit int) ([]*outbox.Message, error)

	// MarkProcessed persists ProcessedAt.
	MarkProcessed(ctx context.Context, message *outbox.Message) error
}
