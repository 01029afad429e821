package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when using a zero-value Order.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
	// ErrCustomerRefIsRequired is returned when an order has no customer.
	ErrCustomerRefIsRequired = errs.NewValueIsRequiredError("customerRef")
	// ErrItemsAreRequired is returned when an order would have no lines.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
	// ErrCenterIsNotSet is returned when assigning an agent to an order without a center.
	ErrCenterIsNotSet = errs.NewValueIsRequiredError("centerId")
	// ErrAgentOutsideCenter is returned when an agent from another center is assigned.
	ErrAgentOutsideCenter = errs.NewValueIsInvalidErrorWithCause(
		"agentId", errors.New("agent does not belong to the order's center"))
)

// Order is the aggregate root of a booking.
//
// Orders are created by checkout together with their items and are never
// deleted. Only lifecycle methods change them afterwards.
type Order struct {
	id            kernel.UUID
	customerRef   string
	centerID      *kernel.UUID
	agentID       *kernel.UUID
	paymentMethod PaymentMethod
	status        Status
	totalAmount   decimal.Decimal
	items         []*Item
	scheduledTime *time.Time
	createdAt     time.Time

	domainEvents []kernel.DomainEvent

	isConstructed bool
}

// NewOrder places an order. The total is computed from the items' snapshot
// prices and the status follows the payment method.
//
// Parameters:
//   - id: unique identifier
//   - customerRef: authenticated customer reference
//   - centerID: target center, nil when the requested center does not exist
//   - method: payment method
//   - items: at least one line
//   - scheduledTime: optional requested service time
//
// Returns:
//   - *Order: the order with an OrderPlaced event recorded
//   - error: joined validation errors
//
// Example:
//
//	item, _ := order.NewItem(kernel.NewUUID(), serviceID, "Flat Tyre Fix", 1, decimal.NewFromInt(199))
//	o, err := order.NewOrder(kernel.NewUUID(), "customer-1", &centerID, order.Cash, []*order.Item{item}, nil)
//	// o.Status() == order.Confirmed, o.TotalAmount() == 199
func NewOrder(
	id kernel.UUID,
	customerRef string,
	centerID *kernel.UUID,
	method PaymentMethod,
	items []*Item,
	scheduledTime *time.Time,
) (*Order, error) {
	o := &Order{
		status:        method.InitialStatus(),
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerRef(customerRef),
		o.setCenterID(centerID),
		o.setPaymentMethod(method),
		o.setItems(items),
	); err != nil {
		return nil, err
	}
	o.totalAmount = sumItems(o.items)
	o.scheduledTime = copyTime(scheduledTime)

	o.raise(OrderPlaced{
		eventMeta:     newEventMeta(o.id),
		OrderID:       o.id.String(),
		CustomerRef:   o.customerRef,
		CenterID:      uuidString(o.centerID),
		PaymentMethod: o.paymentMethod.String(),
		Status:        o.status.String(),
		TotalAmount:   o.totalAmount.StringFixed(2),
		ItemCount:     len(o.items),
	})

	return o, nil
}

// RestoreOrder rebuilds an order from storage. It re-checks the invariants: the
// stored total must match the items and an Assigned order must have an agent.
func RestoreOrder(
	id kernel.UUID,
	customerRef string,
	centerID *kernel.UUID,
	agentID *kernel.UUID,
	method PaymentMethod,
	status Status,
	totalAmount decimal.Decimal,
	items []*Item,
	scheduledTime *time.Time,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		totalAmount:   totalAmount,
		scheduledTime: copyTime(scheduledTime),
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerRef(customerRef),
		o.setCenterID(centerID),
		o.setAgentID(agentID),
		o.setPaymentMethod(method),
		o.setStatus(status),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	if sum := sumItems(o.items); !sum.Equal(totalAmount) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"totalAmount", fmt.Errorf("%s does not match item sum %s", totalAmount, sum))
	}
	if o.status == Assigned && o.agentID == nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"status", errors.New("assigned order has no agent"))
	}

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CustomerRef() string {
	return o.customerRef
}

// CenterID returns the target center, or nil if none.
func (o *Order) CenterID() *kernel.UUID {
	return copyUUID(o.centerID)
}

// AssignedAgentID returns the agent serving the order, or nil if unassigned.
func (o *Order) AssignedAgentID() *kernel.UUID {
	return copyUUID(o.agentID)
}

func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

func (o *Order) Status() Status {
	return o.status
}

// TotalAmount is fixed at creation.
func (o *Order) TotalAmount() decimal.Decimal {
	return o.totalAmount
}

// Items returns a copy of the order lines.
func (o *Order) Items() []*Item {
	out := make([]*Item, len(o.items))
	copy(out, o.items)
	return out
}

func (o *Order) ScheduledTime() *time.Time {
	return copyTime(o.scheduledTime)
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// AssignAgent binds an agent from the order's own center.
//
// For cash orders the status moves Confirmed -> Assigned. Online orders keep
// their status; it is driven by the payment confirmation alone.
//
// Parameters:
//   - agentID: the chosen agent
//   - agentCenterID: the center the agent belongs to
//
// Returns:
//   - error: ErrCenterIsNotSet, ErrAgentOutsideCenter, or InvalidTransitionError
//     when the order is terminal or already has an agent
func (o *Order) AssignAgent(agentID, agentCenterID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}
	if o.centerID == nil {
		return ErrCenterIsNotSet
	}
	if !o.centerID.IsEqual(agentCenterID) {
		return ErrAgentOutsideCenter
	}
	if o.agentID != nil || (o.status != Pending && o.status != Confirmed) {
		return o.status.invalid(eventAssign)
	}

	newStatus := o.status
	if o.paymentMethod == Cash {
		var err error
		if newStatus, err = o.status.Assign(); err != nil {
			return err
		}
	}

	o.status = newStatus
	o.agentID = &agentID
	o.raise(AgentAssigned{
		eventMeta: newEventMeta(o.id),
		OrderID:   o.id.String(),
		AgentID:   agentID.String(),
		CenterID:  o.centerID.String(),
		Status:    o.status.String(),
	})
	return nil
}

// ConfirmPayment applies a payment confirmation.
//
// Returns:
//   - bool: true when the status changed, false for a duplicate confirmation
//   - error: InvalidTransitionError when the order is neither pending nor confirmed
func (o *Order) ConfirmPayment() (bool, error) {
	newStatus, err := o.status.ConfirmPayment()
	if err != nil {
		return false, err
	}
	if newStatus == o.status {
		return false, nil
	}

	o.status = newStatus
	o.raise(PaymentConfirmed{
		eventMeta:   newEventMeta(o.id),
		OrderID:     o.id.String(),
		CustomerRef: o.customerRef,
		TotalAmount: o.totalAmount.StringFixed(2),
	})
	return true, nil
}

// Cancel withdraws a non-terminal order. The total amount and the agent
// reference are kept for the audit trail.
func (o *Order) Cancel() error {
	previous := o.status
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.raise(OrderCancelled{
		eventMeta:      newEventMeta(o.id),
		OrderID:        o.id.String(),
		AgentID:        uuidString(o.agentID),
		PreviousStatus: previous.String(),
	})
	return nil
}

// Complete marks a confirmed or assigned order as serviced.
func (o *Order) Complete() error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.raise(OrderCompleted{
		eventMeta: newEventMeta(o.id),
		OrderID:   o.id.String(),
		AgentID:   uuidString(o.agentID),
	})
	return nil
}

// DomainEvents returns the events raised since the last ClearDomainEvents.
func (o *Order) DomainEvents() []kernel.DomainEvent {
	out := make([]kernel.DomainEvent, len(o.domainEvents))
	copy(out, o.domainEvents)
	return out
}

// ClearDomainEvents forgets raised events once they are stored.
func (o *Order) ClearDomainEvents() {
	o.domainEvents = nil
}

func (o *Order) raise(event kernel.DomainEvent) {
	o.domainEvents = append(o.domainEvents, event)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerRef(ref string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ErrCustomerRefIsRequired
	}
	o.customerRef = ref
	return nil
}

func (o *Order) setCenterID(centerID *kernel.UUID) error {
	if centerID == nil {
		return nil
	}
	if err := centerID.Validate(); err != nil {
		return err
	}
	o.centerID = copyUUID(centerID)
	return nil
}

func (o *Order) setAgentID(agentID *kernel.UUID) error {
	if agentID == nil {
		return nil
	}
	if err := agentID.Validate(); err != nil {
		return err
	}
	o.agentID = copyUUID(agentID)
	return nil
}

func (o *Order) setPaymentMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.paymentMethod = method
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setItems(items []*Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	for _, item := range items {
		if item == nil {
			return ErrItemsAreRequired
		}
	}
	o.items = make([]*Item, len(items))
	copy(o.items, items)
	return nil
}

func sumItems(items []*Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func copyUUID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	out := *id
	return &out
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	out := *t
	return &out
}

func uuidString(id *kernel.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
