package http

import (
	"math"

	"roadside/internal/core/application/usecases/queries"
	"roadside/internal/core/domain/model/cart"
	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/core/domain/model/order"
	"roadside/internal/core/domain/services"
	"roadside/internal/generated/servers"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// money renders amounts with exactly two decimals, "398.00".
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func optionalID(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	v := id.Bytes()
	return &v
}

func orderFromDomain(o *order.Order) servers.Order {
	items := make([]servers.OrderItem, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, servers.OrderItem{
			ServiceId:   item.ServiceID().Bytes(),
			ServiceName: item.ServiceName(),
			Quantity:    item.Quantity(),
			Price:       money(item.Price()),
			Subtotal:    money(item.Subtotal()),
		})
	}
	count := len(items)

	return servers.Order{
		Id:              o.ID().Bytes(),
		Status:          o.Status().String(),
		PaymentMethod:   o.PaymentMethod().String(),
		TotalAmount:     money(o.TotalAmount()),
		CenterId:        optionalID(o.CenterID()),
		AssignedAgentId: optionalID(o.AssignedAgentID()),
		ScheduledTime:   o.ScheduledTime(),
		CreatedAt:       o.CreatedAt(),
		ItemCount:       &count,
		Items:           &items,
	}
}

func orderFromSummary(summary queries.OrderSummary) servers.Order {
	count := summary.ItemCount
	return servers.Order{
		Id:              summary.ID.Bytes(),
		Status:          summary.Status,
		PaymentMethod:   summary.PaymentMethod,
		TotalAmount:     money(summary.TotalAmount),
		CenterId:        optionalID(summary.CenterID),
		AssignedAgentId: optionalID(summary.AssignedAgentID),
		ScheduledTime:   summary.ScheduledTime,
		CreatedAt:       summary.CreatedAt,
		ItemCount:       &count,
	}
}

func orderFromDetails(details *queries.OrderDetails) servers.Order {
	response := orderFromSummary(details.OrderSummary)
	items := make([]servers.OrderItem, len(details.Items))
	for i, line := range details.Items {
		items[i] = servers.OrderItem{
			ServiceId:   line.ServiceID.Bytes(),
			ServiceName: line.ServiceName,
			Quantity:    line.Quantity,
			Price:       money(line.Price),
			Subtotal:    money(line.Subtotal),
		}
	}
	response.Items = &items
	return response
}

func dispatchFromResult(result services.AssignmentResult) servers.Dispatch {
	dispatch := servers.Dispatch{Outcome: servers.DispatchOutcome(result.Outcome.String())}
	if result.Outcome != services.Assigned || result.Agent == nil {
		return dispatch
	}

	agentID := result.Agent.ID().Bytes()
	distance := math.Round(result.DistanceKm*100) / 100
	dispatch.AgentId = &agentID
	dispatch.DistanceKm = &distance
	return dispatch
}

func cartFromDomain(c *cart.Cart) servers.Cart {
	items := make([]servers.CartItem, len(c.Items()))
	for i, item := range c.Items() {
		items[i] = servers.CartItem{
			Id:        item.ID().Bytes(),
			ServiceId: item.ServiceID().Bytes(),
			Quantity:  item.Quantity(),
		}
	}
	return servers.Cart{Id: c.ID().Bytes(), Items: items}
}

func cartFromView(view *queries.CartView) servers.CartView {
	items := make([]servers.CartLine, len(view.Items))
	for i, line := range view.Items {
		items[i] = servers.CartLine{
			Id:          line.ID.Bytes(),
			ServiceId:   line.ServiceID.Bytes(),
			ServiceName: line.ServiceName,
			Quantity:    line.Quantity,
			Price:       money(line.Price),
			Subtotal:    money(line.Subtotal),
		}
	}
	return servers.CartView{
		Id:          optionalID(view.ID),
		Items:       items,
		TotalAmount: money(view.TotalAmount),
	}
}
