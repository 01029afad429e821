package http_test

import (
	"context"
	"sync"
	"time"

	"roadside/internal/core/application/usecases/commands"
	"roadside/internal/core/application/usecases/queries"
	"roadside/internal/core/domain/model/cart"
	"roadside/internal/core/domain/model/order"
	"roadside/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockCheckoutHandler struct {
	mock.Mock
}

func (m *MockCheckoutHandler) Handle(ctx context.Context, cmd commands.CheckoutCommand) (commands.CheckoutResult, error) {
	args := m.Called(ctx, cmd)
	result, _ := args.Get(0).(commands.CheckoutResult)
	return result, args.Error(1)
}

type MockConfirmPaymentHandler struct {
	mock.Mock
}

func (m *MockConfirmPaymentHandler) Handle(
	ctx context.Context, cmd commands.ConfirmPaymentCommand,
) (commands.ConfirmPaymentResult, error) {
	args := m.Called(ctx, cmd)
	result, _ := args.Get(0).(commands.ConfirmPaymentResult)
	return result, args.Error(1)
}

type MockCancelOrderHandler struct {
	mock.Mock
}

func (m *MockCancelOrderHandler) Handle(ctx context.Context, cmd commands.CancelOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockCompleteOrderHandler struct {
	mock.Mock
}

func (m *MockCompleteOrderHandler) Handle(ctx context.Context, cmd commands.CompleteOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockRegisterAgentHandler struct {
	mock.Mock
}

func (m *MockRegisterAgentHandler) Handle(ctx context.Context, cmd commands.RegisterAgentCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockAddCartItemHandler struct {
	mock.Mock
}

func (m *MockAddCartItemHandler) Handle(ctx context.Context, cmd commands.AddCartItemCommand) (*cart.Cart, error) {
	args := m.Called(ctx, cmd)
	c, _ := args.Get(0).(*cart.Cart)
	return c, args.Error(1)
}

type MockRemoveCartItemHandler struct {
	mock.Mock
}

func (m *MockRemoveCartItemHandler) Handle(ctx context.Context, cmd commands.RemoveCartItemCommand) (*cart.Cart, error) {
	args := m.Called(ctx, cmd)
	c, _ := args.Get(0).(*cart.Cart)
	return c, args.Error(1)
}

type MockServicesHandler struct {
	mock.Mock
}

func (m *MockServicesHandler) Handle(ctx context.Context, query queries.ListServicesQuery) ([]queries.ServiceView, error) {
	args := m.Called(ctx, query)
	views, _ := args.Get(0).([]queries.ServiceView)
	return views, args.Error(1)
}

type MockCentersHandler struct {
	mock.Mock
}

func (m *MockCentersHandler) Handle(ctx context.Context, query queries.ListCentersQuery) ([]queries.CenterView, error) {
	args := m.Called(ctx, query)
	views, _ := args.Get(0).([]queries.CenterView)
	return views, args.Error(1)
}

type MockAgentsHandler struct {
	mock.Mock
}

func (m *MockAgentsHandler) Handle(ctx context.Context, query queries.ListAgentsQuery) ([]queries.AgentView, error) {
	args := m.Called(ctx, query)
	views, _ := args.Get(0).([]queries.AgentView)
	return views, args.Error(1)
}

type MockCartHandler struct {
	mock.Mock
}

func (m *MockCartHandler) Handle(ctx context.Context, query queries.GetCartQuery) (*queries.CartView, error) {
	args := m.Called(ctx, query)
	view, _ := args.Get(0).(*queries.CartView)
	return view, args.Error(1)
}

type MockNearestAgentsHandler struct {
	mock.Mock
}

func (m *MockNearestAgentsHandler) Handle(
	ctx context.Context, query queries.NearestAgentsQuery,
) ([]queries.NearestAgent, error) {
	args := m.Called(ctx, query)
	agents, _ := args.Get(0).([]queries.NearestAgent)
	return agents, args.Error(1)
}

type MockCustomerOrdersHandler struct {
	mock.Mock
}

func (m *MockCustomerOrdersHandler) Handle(
	ctx context.Context, query queries.GetCustomerOrdersQuery,
) ([]queries.OrderSummary, error) {
	args := m.Called(ctx, query)
	orders, _ := args.Get(0).([]queries.OrderSummary)
	return orders, args.Error(1)
}

type MockOrderDetailsHandler struct {
	mock.Mock
}

func (m *MockOrderDetailsHandler) Handle(ctx context.Context, query queries.GetOrderQuery) (*queries.OrderDetails, error) {
	args := m.Called(ctx, query)
	details, _ := args.Get(0).(*queries.OrderDetails)
	return details, args.Error(1)
}

// memoryIdempotencyStore keeps keys in a map; it ignores TTLs.
type memoryIdempotencyStore struct {
	mu        sync.Mutex
	responses map[string]ports.StoredResponse
	locks     map[string]bool
}

func newMemoryIdempotencyStore() *memoryIdempotencyStore {
	return &memoryIdempotencyStore{
		responses: make(map[string]ports.StoredResponse),
		locks:     make(map[string]bool),
	}
}

func (s *memoryIdempotencyStore) Get(_ context.Context, key string) (*ports.StoredResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.responses[key]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (s *memoryIdempotencyStore) Reserve(_ context.Context, key string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locks[key] {
		return false, nil
	}
	if _, ok := s.responses[key]; ok {
		return false, nil
	}
	s.locks[key] = true
	return true, nil
}

func (s *memoryIdempotencyStore) Save(_ context.Context, key string, response ports.StoredResponse, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[key] = response
	delete(s.locks, key)
	return nil
}

func (s *memoryIdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, key)
	return nil
}

func (s *memoryIdempotencyStore) lock(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locks[key] = true
}

func (s *memoryIdempotencyStore) isLocked(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locks[key]
}
