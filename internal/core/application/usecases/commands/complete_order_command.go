package commands

import (
	"errors"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/guard"
)

var ErrCompleteOrderCommandIsNotConstructed = errors.New(
	"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
)

// CompleteOrderCommand marks an order as serviced. It is issued by the
// field side, so it is not scoped to a customer.
type CompleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCompleteOrderCommand(rawOrderID string) (CompleteOrderCommand, error) {
	id, err := parseOrderID(rawOrderID)
	if err != nil {
		return CompleteOrderCommand{}, err
	}
	if id == nil {
		return CompleteOrderCommand{}, ErrOrderIDIsRequired
	}

	return CompleteOrderCommand{
		orderID: *id,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}

func (c CompleteOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
