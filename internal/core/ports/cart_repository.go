package ports

import (
	"context"

	"roadside/internal/core/domain/model/cart"
)

// CartRepository defines the persistence contract for carts.
type CartRepository interface {
	// Save inserts the cart if new and replaces its lines with the current ones.
	Save(ctx context.Context, aggregate *cart.Cart) error

	// GetByCustomerForUpdate locks and returns the customer's cart, serializing
	// every cart mutation of that customer.
	// Returns ObjectNotFoundError when the customer has no cart yet.
	GetByCustomerForUpdate(ctx context.Context, customerRef string) (*cart.Cart, error)
}
