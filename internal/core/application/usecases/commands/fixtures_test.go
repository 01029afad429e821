package commands_test

import (
	"testing"

	"roadside/internal/core/domain/model/agent"
	"roadside/internal/core/domain/model/cart"
	"roadside/internal/core/domain/model/catalog"
	"roadside/internal/core/domain/model/center"
	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const customerRef = "customer-1"

func newDhakaCenter(t *testing.T) *center.Center {
	t.Helper()
	c, err := center.NewCenter(kernel.NewUUID(), "Dhaka Bikes Service", "", "Gulshan",
		kernel.MustNewLocation(23.7925, 90.4078))
	require.NoError(t, err)
	return c
}

func newAgentAt(t *testing.T, c *center.Center, base *kernel.Location) *agent.Agent {
	t.Helper()
	a, err := agent.NewAgent(kernel.NewUUID(), "user-"+kernel.NewUUID().String(), "Agent", "", c, base)
	require.NoError(t, err)
	return a
}

func newService(t *testing.T, name string, price int64) *catalog.Service {
	t.Helper()
	s, err := catalog.NewService(kernel.NewUUID(), name, "", "repair", decimal.NewFromInt(price))
	require.NoError(t, err)
	return s
}

func newCartWith(t *testing.T, s *catalog.Service, quantity int) *cart.Cart {
	t.Helper()
	c, err := cart.NewCart(kernel.NewUUID(), customerRef)
	require.NoError(t, err)
	require.NoError(t, c.AddItem(s.ID(), quantity))
	return c
}

func newOrder(t *testing.T, method order.PaymentMethod, centerID *kernel.UUID) *order.Order {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Flat Tyre Fix", 1, decimal.NewFromInt(199))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), customerRef, centerID, method, []*order.Item{item}, nil)
	require.NoError(t, err)
	o.ClearDomainEvents()
	return o
}

func newAssignedOrder(t *testing.T, a *agent.Agent) *order.Order {
	t.Helper()
	centerID := a.CenterID()
	o := newOrder(t, order.Cash, &centerID)
	require.NoError(t, a.Reserve())
	require.NoError(t, o.AssignAgent(a.ID(), a.CenterID()))
	o.ClearDomainEvents()
	return o
}
