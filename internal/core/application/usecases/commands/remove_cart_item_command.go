package commands

import (
	"errors"
	"strings"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/errs"
	"roadside/internal/pkg/guard"
)

var (
	ErrRemoveCartItemCommandIsNotConstructed = errors.New(
		"RemoveCartItemCommand must be created via NewRemoveCartItemCommand constructor",
	)
	ErrItemIDIsRequired = errs.NewValueIsRequiredError("itemId")
)

// RemoveCartItemCommand drops one line from the customer's cart.
type RemoveCartItemCommand struct { //nolint:recvcheck //using for validation
	customerRef string
	itemID      kernel.UUID

	guard guard.ConstructorGuard
}

func NewRemoveCartItemCommand(customerRef, rawItemID string) (RemoveCartItemCommand, error) {
	command := RemoveCartItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setCustomerRef(customerRef),
		command.setItemID(rawItemID),
	); err != nil {
		return RemoveCartItemCommand{}, err
	}

	return command, nil
}

func (c RemoveCartItemCommand) Validate() error {
	return c.guard.Validate(ErrRemoveCartItemCommandIsNotConstructed)
}

func (c RemoveCartItemCommand) CustomerRef() string {
	return c.customerRef
}

func (c RemoveCartItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

func (c *RemoveCartItemCommand) setCustomerRef(ref string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ErrCustomerRefIsRequired
	}
	c.customerRef = ref
	return nil
}

func (c *RemoveCartItemCommand) setItemID(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ErrItemIDIsRequired
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("itemId", err)
	}
	c.itemID = id
	return nil
}
