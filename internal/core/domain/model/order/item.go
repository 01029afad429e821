package order

import (
	"errors"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Item is an order line. Price is the catalog price captured when the order was
// placed and is never refreshed afterwards.
type Item struct {
	id          kernel.UUID
	serviceID   kernel.UUID
	serviceName string
	quantity    int
	price       decimal.Decimal
}

// NewItem creates an order line with a snapshot price.
//
// Returns:
//   - *Item: the line
//   - error: joined validation errors; quantity must be positive and price non-negative
func NewItem(id, serviceID kernel.UUID, serviceName string, quantity int, price decimal.Decimal) (*Item, error) {
	var qtyErr, priceErr error
	if quantity <= 0 {
		qtyErr = errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	if price.IsNegative() {
		priceErr = errs.NewValueIsOutOfRangeError("price", price, 0, "unbounded")
	}
	if err := errors.Join(id.Validate(), serviceID.Validate(), qtyErr, priceErr); err != nil {
		return nil, err
	}

	return &Item{
		id:          id,
		serviceID:   serviceID,
		serviceName: serviceName,
		quantity:    quantity,
		price:       price,
	}, nil
}

func (i *Item) ID() kernel.UUID {
	return i.id
}

func (i *Item) ServiceID() kernel.UUID {
	return i.serviceID
}

func (i *Item) ServiceName() string {
	return i.serviceName
}

func (i *Item) Quantity() int {
	return i.quantity
}

// Price is the unit price snapshot.
func (i *Item) Price() decimal.Decimal {
	return i.price
}

// Subtotal is Quantity * Price.
func (i *Item) Subtotal() decimal.Decimal {
	return i.price.Mul(decimal.NewFromInt(int64(i.quantity)))
}
