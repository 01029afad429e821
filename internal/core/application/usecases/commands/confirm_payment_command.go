package commands

import (
	"errors"
	"strings"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/guard"
)

var ErrConfirmPaymentCommandIsNotConstructed = errors.New(
	"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
)

// ConfirmPaymentCommand records a successful payment for a customer.
// Without an order id it targets the customer's latest pending order.
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	customerRef string
	orderID     *kernel.UUID

	guard guard.ConstructorGuard
}

// NewConfirmPaymentCommand creates a payment confirmation. rawOrderID may be empty.
func NewConfirmPaymentCommand(customerRef, rawOrderID string) (ConfirmPaymentCommand, error) {
	command := ConfirmPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	orderID, err := parseOrderID(rawOrderID)
	customerRef = strings.TrimSpace(customerRef)
	var refErr error
	if customerRef == "" {
		refErr = ErrCustomerRefIsRequired
	}
	if err = errors.Join(refErr, err); err != nil {
		return ConfirmPaymentCommand{}, err
	}

	command.customerRef = customerRef
	command.orderID = orderID
	return command, nil
}

func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

func (c ConfirmPaymentCommand) CustomerRef() string {
	return c.customerRef
}

// OrderID is nil when the latest pending order should be used.
func (c ConfirmPaymentCommand) OrderID() *kernel.UUID {
	return c.orderID
}
