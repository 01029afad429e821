// Package commands contains the operations that change booking state.
// Every command follows the same pattern: a guarded command value validated at
// construction, and a handler that runs the work inside one unit of work.
package commands

import (
	"context"

	"roadside/internal/core/ports"
)

// Unit of work interfaces narrowed to what each handler touches.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	AgentRepoFactory interface {
		AgentRepository() ports.AgentRepository
	}

	CenterRepoFactory interface {
		CenterRepository() ports.CenterRepository
	}

	CatalogRepoFactory interface {
		CatalogRepository() ports.CatalogRepository
	}

	CartRepoFactory interface {
		CartRepository() ports.CartRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// CheckoutUoW spans everything checkout reads or writes.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   cart, err := uow.CartRepository().GetByCustomerForUpdate(ctx, customerRef)
	//   // ... build and dispatch the order
	//
	//   err = uow.Commit(ctx)
	CheckoutUoW interface {
		TxManager
		CartRepoFactory
		CatalogRepoFactory
		CenterRepoFactory
		AgentRepoFactory
		OrderRepoFactory
	}

	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}

	// OrderUoW serves lifecycle commands on existing orders: they may release
	// the assigned agent and touch the customer's cart.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		AgentRepoFactory
		CartRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// AgentUoW serves agent registration.
	AgentUoW interface {
		TxManager
		CenterRepoFactory
		AgentRepoFactory
	}

	AgentUoWFactory interface {
		Create() AgentUoW
	}

	// CartUoW serves cart editing.
	CartUoW interface {
		TxManager
		CartRepoFactory
		CatalogRepoFactory
	}

	CartUoWFactory interface {
		Create() CartUoW
	}

	// OutboxUoW serves the outbox relay.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)
