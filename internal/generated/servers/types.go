// Package servers holds the HTTP contract of the API: wire types, the
// ServerInterface implemented by the inbound adapter, its echo wiring and the
// embedded OpenAPI document they were derived from.
package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

const (
	CustomerIdScopes = "customerId.Scopes"
)

// Defines values for DispatchOutcome.
const (
	Assigned      DispatchOutcome = "assigned"
	NoneAvailable DispatchOutcome = "none_available"
	Skipped       DispatchOutcome = "skipped"
)

// Defines values for CheckoutRequestPaymentMethod.
const (
	Cash   CheckoutRequestPaymentMethod = "cash"
	Online CheckoutRequestPaymentMethod = "online"
)

// AddCartItemRequest defines model for AddCartItemRequest.
type AddCartItemRequest struct {
	Quantity  int    `json:"quantity"`
	ServiceId string `json:"serviceId"`
}

// Agent defines model for Agent.
type Agent struct {
	Busy     bool               `json:"busy"`
	Center   string             `json:"center"`
	CenterId openapi_types.UUID `json:"centerId"`
	Id       openapi_types.UUID `json:"id"`
	Name     string             `json:"name"`
	Phone    string             `json:"phone"`
}

// AgentList defines model for AgentList.
type AgentList struct {
	Agents []Agent `json:"agents"`
}

// Cart defines model for Cart.
type Cart struct {
	Id    openapi_types.UUID `json:"id"`
	Items []CartItem         `json:"items"`
}

// CartItem defines model for CartItem.
type CartItem struct {
	Id        openapi_types.UUID `json:"id"`
	Quantity  int                `json:"quantity"`
	ServiceId openapi_types.UUID `json:"serviceId"`
}

// CartLine defines model for CartLine.
type CartLine struct {
	Id          openapi_types.UUID `json:"id"`
	Price       string             `json:"price"`
	Quantity    int                `json:"quantity"`
	ServiceId   openapi_types.UUID `json:"serviceId"`
	ServiceName string             `json:"serviceName"`
	Subtotal    string             `json:"subtotal"`
}

// CartView defines model for CartView.
type CartView struct {
	Id          *openapi_types.UUID `json:"id,omitempty"`
	Items       []CartLine          `json:"items"`
	TotalAmount string              `json:"totalAmount"`
}

// Center defines model for Center.
type Center struct {
	Address string             `json:"address"`
	Id      openapi_types.UUID `json:"id"`
	Lat     float64            `json:"lat"`
	Lng     float64            `json:"lng"`
	Name    string             `json:"name"`
	Phone   string             `json:"phone"`
}

// CenterList defines model for CenterList.
type CenterList struct {
	Centers []Center `json:"centers"`
}

// CheckoutRequest defines model for CheckoutRequest.
type CheckoutRequest struct {
	CenterId      *string                       `json:"centerId,omitempty"`
	Lat           *string                       `json:"lat,omitempty"`
	Lng           *string                       `json:"lng,omitempty"`
	PaymentMethod *CheckoutRequestPaymentMethod `json:"paymentMethod,omitempty"`
	ScheduledTime *time.Time                    `json:"scheduledTime,omitempty"`
}

// CheckoutRequestPaymentMethod defines model for CheckoutRequest.PaymentMethod.
type CheckoutRequestPaymentMethod string

// CheckoutResponse defines model for CheckoutResponse.
type CheckoutResponse struct {
	Dispatch Dispatch `json:"dispatch"`
	Order    Order    `json:"order"`
}

// Dispatch defines model for Dispatch.
type Dispatch struct {
	AgentId    *openapi_types.UUID `json:"agentId,omitempty"`
	DistanceKm *float64            `json:"distanceKm,omitempty"`
	Outcome    DispatchOutcome     `json:"outcome"`
}

// DispatchOutcome defines model for Dispatch.Outcome.
type DispatchOutcome string

// Error defines model for Error.
type Error struct {
	Code    int     `json:"code"`
	Error   *string `json:"error,omitempty"`
	Message string  `json:"message"`
}

// NearestAgent defines model for NearestAgent.
type NearestAgent struct {
	Center     string             `json:"center"`
	CenterId   openapi_types.UUID `json:"centerId"`
	DistanceKm float64            `json:"distanceKm"`
	Id         openapi_types.UUID `json:"id"`
	Name       string             `json:"name"`
	Phone      string             `json:"phone"`
}

// NearestAgentsResponse defines model for NearestAgentsResponse.
type NearestAgentsResponse struct {
	Agents []NearestAgent `json:"agents"`
}

// NewAgent defines model for NewAgent.
type NewAgent struct {
	BaseLat     *float64 `json:"baseLat,omitempty"`
	BaseLng     *float64 `json:"baseLng,omitempty"`
	CenterId    string   `json:"centerId"`
	IdentityRef string   `json:"identityRef"`
	Name        string   `json:"name"`
	Phone       *string  `json:"phone,omitempty"`
}

// Order defines model for Order.
type Order struct {
	AssignedAgentId *openapi_types.UUID `json:"assignedAgentId,omitempty"`
	CenterId        *openapi_types.UUID `json:"centerId,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
	Id              openapi_types.UUID  `json:"id"`
	ItemCount       *int                `json:"itemCount,omitempty"`
	Items           *[]OrderItem        `json:"items,omitempty"`
	PaymentMethod   string              `json:"paymentMethod"`
	ScheduledTime   *time.Time          `json:"scheduledTime,omitempty"`
	Status          string              `json:"status"`
	TotalAmount     string              `json:"totalAmount"`
}

// OrderItem defines model for OrderItem.
type OrderItem struct {
	Price       string             `json:"price"`
	Quantity    int                `json:"quantity"`
	ServiceId   openapi_types.UUID `json:"serviceId"`
	ServiceName string             `json:"serviceName"`
	Subtotal    string             `json:"subtotal"`
}

// OrderList defines model for OrderList.
type OrderList struct {
	Orders []Order `json:"orders"`
}

// PaymentSuccessRequest defines model for PaymentSuccessRequest.
type PaymentSuccessRequest struct {
	OrderId *string `json:"orderId,omitempty"`
}

// PaymentSuccessResponse defines model for PaymentSuccessResponse.
type PaymentSuccessResponse struct {
	Changed bool  `json:"changed"`
	Order   Order `json:"order"`
}

// Service defines model for Service.
type Service struct {
	BasePrice   string             `json:"basePrice"`
	Category    string             `json:"category"`
	Description string             `json:"description"`
	Id          openapi_types.UUID `json:"id"`
	Name        string             `json:"name"`
}

// ServiceList defines model for ServiceList.
type ServiceList struct {
	Services []Service `json:"services"`
}

// ItemId defines model for ItemId.
type ItemId = openapi_types.UUID

// OrderId defines model for OrderId.
type OrderId = openapi_types.UUID

// GetNearestAgentsParams defines parameters for GetNearestAgents.
type GetNearestAgentsParams struct {
	Lat   *string `form:"lat,omitempty" json:"lat,omitempty"`
	Lng   *string `form:"lng,omitempty" json:"lng,omitempty"`
	Limit *string `form:"limit,omitempty" json:"limit,omitempty"`
}

// CheckoutJSONRequestBody defines body for Checkout for application/json ContentType.
type CheckoutJSONRequestBody = CheckoutRequest

// RegisterAgentJSONRequestBody defines body for RegisterAgent for application/json ContentType.
type RegisterAgentJSONRequestBody = NewAgent

// AddCartItemJSONRequestBody defines body for AddCartItem for application/json ContentType.
type AddCartItemJSONRequestBody = AddCartItemRequest

// ConfirmPaymentJSONRequestBody defines body for ConfirmPayment for application/json ContentType.
type ConfirmPaymentJSONRequestBody = PaymentSuccessRequest
