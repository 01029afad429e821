package commands

import (
	"errors"
	"strings"
	"time"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/core/domain/model/order"
	"roadside/internal/pkg/errs"
	"roadside/internal/pkg/guard"
)

var (
	ErrCheckoutCommandIsNotConstructed = errors.New(
		"CheckoutCommand must be created via NewCheckoutCommand constructor",
	)
	ErrCustomerRefIsRequired = errs.NewValueIsRequiredError("customerRef")
)

// CheckoutCommand turns a customer's cart into an order and tries to dispatch
// an agent to it.
//
// Only the customer and the payment method are strict. A center id that is
// missing or malformed yields an order without a center, and a missing or
// malformed pickup location only means dispatch is skipped.
//
// Example:
//
//	cmd, err := NewCheckoutCommand("customer-1", centerID, "23.7925", "90.4078", "cash", nil)
//	if err != nil {
//	    return err // bad customer or payment method
//	}
//	result, err := handler.Handle(ctx, cmd)
type CheckoutCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	customerRef   string
	centerID      *kernel.UUID
	pickup        *kernel.Location
	pickupErr     error
	paymentMethod order.PaymentMethod
	scheduledTime *time.Time

	guard guard.ConstructorGuard
}

// NewCheckoutCommand creates a checkout request from raw client input.
func NewCheckoutCommand(
	customerRef, rawCenterID, rawLat, rawLng, rawPaymentMethod string,
	scheduledTime *time.Time,
) (CheckoutCommand, error) {
	command := CheckoutCommand{
		orderID: kernel.NewUUID(),
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setCustomerRef(customerRef),
		command.setPaymentMethod(rawPaymentMethod),
	); err != nil {
		return CheckoutCommand{}, err
	}

	command.setCenterID(rawCenterID)
	command.setPickup(rawLat, rawLng)
	if scheduledTime != nil {
		t := scheduledTime.UTC()
		command.scheduledTime = &t
	}

	return command, nil
}

func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

// OrderID is the id the new order will get.
func (c CheckoutCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CheckoutCommand) CustomerRef() string {
	return c.customerRef
}

// CenterID is nil when the client sent no usable center id.
func (c CheckoutCommand) CenterID() *kernel.UUID {
	return c.centerID
}

// Pickup is nil when the client sent no usable coordinates.
func (c CheckoutCommand) Pickup() *kernel.Location {
	return c.pickup
}

// PickupError explains why Pickup is nil, if it is.
func (c CheckoutCommand) PickupError() error {
	return c.pickupErr
}

func (c CheckoutCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

func (c CheckoutCommand) ScheduledTime() *time.Time {
	return c.scheduledTime
}

func (c *CheckoutCommand) setCustomerRef(ref string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ErrCustomerRefIsRequired
	}
	c.customerRef = ref
	return nil
}

func (c *CheckoutCommand) setPaymentMethod(raw string) error {
	method, err := order.ParsePaymentMethod(raw)
	if err != nil {
		return err
	}
	c.paymentMethod = method
	return nil
}

func (c *CheckoutCommand) setCenterID(raw string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return
	}
	c.centerID = &id
}

func (c *CheckoutCommand) setPickup(rawLat, rawLng string) {
	loc, err := kernel.ParseLocation(rawLat, rawLng)
	if err != nil {
		c.pickupErr = err
		return
	}
	c.pickup = &loc
}
