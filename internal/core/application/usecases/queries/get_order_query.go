package queries

import (
	"errors"
	"strings"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/errs"
	"roadside/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery fetches one order of a customer with its lines.
type GetOrderQuery struct {
	customerRef string
	orderID     kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(customerRef, rawOrderID string) (GetOrderQuery, error) {
	var refErr, idErr error
	customerRef = strings.TrimSpace(customerRef)
	if customerRef == "" {
		refErr = ErrCustomerRefIsRequired
	}
	orderID, err := kernel.UUIDFromString(strings.TrimSpace(rawOrderID))
	if err != nil {
		idErr = errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}
	if err = errors.Join(refErr, idErr); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		customerRef: customerRef,
		orderID:     orderID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) CustomerRef() string {
	return q.customerRef
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderDetails is an order with its lines.
type OrderDetails struct {
	OrderSummary
	Items []OrderLine
}

// OrderLine carries the price captured at checkout.
type OrderLine struct {
	ServiceID   kernel.UUID
	ServiceName string
	Quantity    int
	Price       decimal.Decimal
	Subtotal    decimal.Decimal
}
