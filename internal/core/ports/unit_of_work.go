// Package ports defines the contracts between the booking core and its
// infrastructure: repositories, the unit of work, and outbound publishers.
package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories obtained from it
// after Begin share the transaction; domain events of tracked aggregates are
// written to the outbox on Commit.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	AgentRepository() AgentRepository
	CenterRepository() CenterRepository
	CatalogRepository() CatalogRepository
	CartRepository() CartRepository
	OutboxRepository() OutboxRepository
}
