package ports

import (
	"context"
	"time"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are stored together with their items and are never deleted.
type OrderRepository interface {
	// Add persists a new order with all its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status and agent changes. Items and total are immutable
	// and never rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its items.
	// Returns ObjectNotFoundError when it does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get with a row lock held until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetLatestForCustomerForUpdate locks and returns the customer's most recent
	// order, optionally restricted to the given statuses.
	// Returns ObjectNotFoundError when there is none.
	GetLatestForCustomerForUpdate(
		ctx context.Context, customerRef string, statuses ...order.Status,
	) (*order.Order, error)

	// GetLatestByMethodForUpdate locks and returns the customer's most recent
	// order paid with method, whatever its status.
	// Returns ObjectNotFoundError when there is none.
	GetLatestByMethodForUpdate(
		ctx context.Context, customerRef string, method order.PaymentMethod,
	) (*order.Order, error)

	// GetStalePendingForUpdate returns up to limit orders paid with method that
	// are still Pending and were created before cutoff. Rows locked by other
	// transactions are skipped.
	GetStalePendingForUpdate(
		ctx context.Context, method order.PaymentMethod, cutoff time.Time, limit int,
	) ([]*order.Order, error)
}
