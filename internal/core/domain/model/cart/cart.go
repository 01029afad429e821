package cart

import (
	"errors"
	"strings"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/errs"
	"roadside/internal/pkg/guard"
)

var (
	// ErrCustomerRefIsRequired is returned when a cart has no owner.
	ErrCustomerRefIsRequired = errs.NewValueIsRequiredError("customerRef")
	// ErrCartIsNotConstructed is returned when using a zero-value Cart.
	ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart or RestoreCart")
)

// Item is one cart line: a service and how many times it is wanted.
type Item struct {
	id        kernel.UUID
	serviceID kernel.UUID
	quantity  int
}

// NewItem creates a cart line. Quantity must be positive.
func NewItem(id, serviceID kernel.UUID, quantity int) (*Item, error) {
	if err := errors.Join(id.Validate(), serviceID.Validate(), validateQuantity(quantity)); err != nil {
		return nil, err
	}
	return &Item{id: id, serviceID: serviceID, quantity: quantity}, nil
}

func (i *Item) ID() kernel.UUID {
	return i.id
}

func (i *Item) ServiceID() kernel.UUID {
	return i.serviceID
}

func (i *Item) Quantity() int {
	return i.quantity
}

// Cart holds the services a customer intends to book. Every customer has
// exactly one cart; it is created explicitly with NewCart the first time the
// customer adds something, and emptied by checkout.
type Cart struct {
	id          kernel.UUID
	customerRef string
	items       []*Item
	guard       guard.ConstructorGuard
}

// NewCart creates an empty cart for the customer.
func NewCart(id kernel.UUID, customerRef string) (*Cart, error) {
	return RestoreCart(id, customerRef, nil)
}

// RestoreCart rebuilds a cart and its lines from storage.
func RestoreCart(id kernel.UUID, customerRef string, items []*Item) (*Cart, error) {
	c := &Cart{guard: guard.NewConstructorGuard()}

	customerRef = strings.TrimSpace(customerRef)
	var refErr error
	if customerRef == "" {
		refErr = ErrCustomerRefIsRequired
	}

	if err := errors.Join(id.Validate(), refErr); err != nil {
		return nil, err
	}

	c.id = id
	c.customerRef = customerRef
	c.items = make([]*Item, len(items))
	copy(c.items, items)
	return c, nil
}

func (c *Cart) Validate() error {
	if c == nil {
		return ErrCartIsNotConstructed
	}
	return c.guard.Validate(ErrCartIsNotConstructed)
}

func (c *Cart) ID() kernel.UUID {
	return c.id
}

func (c *Cart) CustomerRef() string {
	return c.customerRef
}

// Items returns a copy of the cart lines.
func (c *Cart) Items() []*Item {
	out := make([]*Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// AddItem adds quantity of a service; adding a service already in the cart
// increases its quantity instead of creating a second line.
func (c *Cart) AddItem(serviceID kernel.UUID, quantity int) error {
	if err := errors.Join(serviceID.Validate(), validateQuantity(quantity)); err != nil {
		return err
	}

	for _, item := range c.items {
		if item.serviceID.IsEqual(serviceID) {
			item.quantity += quantity
			return nil
		}
	}

	item, err := NewItem(kernel.NewUUID(), serviceID, quantity)
	if err != nil {
		return err
	}
	c.items = append(c.items, item)
	return nil
}

// RemoveItem drops one line. A line that is not in this cart is not found.
func (c *Cart) RemoveItem(itemID kernel.UUID) error {
	for i, item := range c.items {
		if item.id.IsEqual(itemID) {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return nil
		}
	}
	return errs.NewObjectNotFoundError("cartItem", itemID)
}

// Clear removes every line.
func (c *Cart) Clear() {
	c.items = nil
}

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	return nil
}
