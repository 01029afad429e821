package commands

import (
	"errors"
	"strings"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/errs"
	"roadside/internal/pkg/guard"
)

var (
	ErrCancelOrderCommandIsNotConstructed = errors.New(
		"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
	)
	ErrOrderIDIsRequired = errs.NewValueIsRequiredError("orderId")
)

// CancelOrderCommand withdraws one of the customer's orders.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	customerRef string
	orderID     kernel.UUID

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(customerRef, rawOrderID string) (CancelOrderCommand, error) {
	command := CancelOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setCustomerRef(customerRef),
		command.setOrderID(rawOrderID),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	return command, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) CustomerRef() string {
	return c.customerRef
}

func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *CancelOrderCommand) setCustomerRef(ref string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ErrCustomerRefIsRequired
	}
	c.customerRef = ref
	return nil
}

func (c *CancelOrderCommand) setOrderID(raw string) error {
	id, err := parseOrderID(raw)
	if err != nil {
		return err
	}
	if id == nil {
		return ErrOrderIDIsRequired
	}
	c.orderID = *id
	return nil
}
