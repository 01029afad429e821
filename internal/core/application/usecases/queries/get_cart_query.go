package queries

import (
	"errors"
	"strings"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetCartQueryIsNotConstructed = errors.New(
	"GetCartQuery must be created via NewGetCartQuery constructor",
)

// GetCartQuery shows a customer's cart priced at today's catalog prices.
type GetCartQuery struct {
	customerRef string

	guard guard.ConstructorGuard
}

func NewGetCartQuery(customerRef string) (GetCartQuery, error) {
	customerRef = strings.TrimSpace(customerRef)
	if customerRef == "" {
		return GetCartQuery{}, ErrCustomerRefIsRequired
	}
	return GetCartQuery{
		customerRef: customerRef,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (q GetCartQuery) Validate() error {
	return q.guard.Validate(ErrGetCartQueryIsNotConstructed)
}

func (q GetCartQuery) CustomerRef() string {
	return q.customerRef
}

// CartView is the customer's cart. ID is nil until the first item is added.
type CartView struct {
	ID          *kernel.UUID
	Items       []CartLine
	TotalAmount decimal.Decimal
}

// CartLine is a cart item with the service's current price.
type CartLine struct {
	ID          kernel.UUID
	ServiceID   kernel.UUID
	ServiceName string
	Quantity    int
	Price       decimal.Decimal
	Subtotal    decimal.Decimal
}
