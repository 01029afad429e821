package order

import (
	"time"

	"roadside/internal/core/domain/model/kernel"
)

// Event names double as message routing keys.
const (
	EventOrderPlaced      = "order.placed"
	EventAgentAssigned    = "order.agent_assigned"
	EventPaymentConfirmed = "order.payment_confirmed"
	EventOrderCancelled   = "order.cancelled"
	EventOrderCompleted   = "order.completed"
)

type eventMeta struct {
	id          kernel.UUID
	aggregateID kernel.UUID
	occurredAt  time.Time
}

func newEventMeta(orderID kernel.UUID) eventMeta {
	return eventMeta{
		id:          kernel.NewUUID(),
		aggregateID: orderID,
		occurredAt:  time.Now().UTC(),
	}
}

func (m eventMeta) EventID() kernel.UUID {
	return m.id
}

func (m eventMeta) AggregateID() kernel.UUID {
	return m.aggregateID
}

func (m eventMeta) OccurredAt() time.Time {
	return m.occurredAt
}

// OrderPlaced is raised once, when checkout creates the order.
type OrderPlaced struct {
	eventMeta
	OrderID       string `json:"orderId"`
	CustomerRef   string `json:"customerRef"`
	CenterID      string `json:"centerId,omitempty"`
	PaymentMethod string `json:"paymentMethod"`
	Status        string `json:"status"`
	TotalAmount   string `json:"totalAmount"`
	ItemCount     int    `json:"itemCount"`
}

func (OrderPlaced) EventName() string { return EventOrderPlaced }

// AgentAssigned is raised when dispatch binds an agent to the order.
type AgentAssigned struct {
	eventMeta
	OrderID  string `json:"orderId"`
	AgentID  string `json:"agentId"`
	CenterID string `json:"centerId"`
	Status   string `json:"status"`
}

func (AgentAssigned) EventName() string { return EventAgentAssigned }

// PaymentConfirmed is raised when a pending order becomes confirmed. Duplicate
// confirmations do not raise it again.
type PaymentConfirmed struct {
	eventMeta
	OrderID     string `json:"orderId"`
	CustomerRef string `json:"customerRef"`
	TotalAmount string `json:"totalAmount"`
}

func (PaymentConfirmed) EventName() string { return EventPaymentConfirmed }

// OrderCancelled is raised when an order is withdrawn.
type OrderCancelled struct {
	eventMeta
	OrderID        string `json:"orderId"`
	AgentID        string `json:"agentId,omitempty"`
	PreviousStatus string `json:"previousStatus"`
}

func (OrderCancelled) EventName() string { return EventOrderCancelled }

// OrderCompleted is raised when the service has been delivered.
type OrderCompleted struct {
	eventMeta
	OrderID string `json:"orderId"`
	AgentID string `json:"agentId,omitempty"`
}

func (OrderCompleted) EventName() string { return EventOrderCompleted }
