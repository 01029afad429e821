package commands

import (
	"errors"
	"strings"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/errs"
	"roadside/internal/pkg/guard"
)

var (
	ErrAddCartItemCommandIsNotConstructed = errors.New(
		"AddCartItemCommand must be created via NewAddCartItemCommand constructor",
	)
	ErrServiceIDIsRequired = errs.NewValueIsRequiredError("serviceId")
)

// AddCartItemCommand puts a quantity of a catalog service into the customer's cart.
type AddCartItemCommand struct { //nolint:recvcheck //using for validation
	customerRef string
	serviceID   kernel.UUID
	quantity    int

	guard guard.ConstructorGuard
}

func NewAddCartItemCommand(customerRef, rawServiceID string, quantity int) (AddCartItemCommand, error) {
	command := AddCartItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setCustomerRef(customerRef),
		command.setServiceID(rawServiceID),
		command.setQuantity(quantity),
	); err != nil {
		return AddCartItemCommand{}, err
	}

	return command, nil
}

func (c AddCartItemCommand) Validate() error {
	return c.guard.Validate(ErrAddCartItemCommandIsNotConstructed)
}

func (c AddCartItemCommand) CustomerRef() string {
	return c.customerRef
}

func (c AddCartItemCommand) ServiceID() kernel.UUID {
	return c.serviceID
}

func (c AddCartItemCommand) Quantity() int {
	return c.quantity
}

func (c *AddCartItemCommand) setCustomerRef(ref string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ErrCustomerRefIsRequired
	}
	c.customerRef = ref
	return nil
}

func (c *AddCartItemCommand) setServiceID(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ErrServiceIDIsRequired
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("serviceId", err)
	}
	c.serviceID = id
	return nil
}

func (c *AddCartItemCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	c.quantity = quantity
	return nil
}
