package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"roadside/internal/core/application/usecases/commands"
	"roadside/internal/core/application/usecases/queries"
	"roadside/internal/core/domain/model/cart"
	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/core/domain/model/order"
	"roadside/internal/generated/servers"
	"roadside/internal/pkg/errs"
	"roadside/internal/pkg/telemetry"

	"github.com/labstack/echo/v4"
)

type CheckoutHandler interface {
	Handle(ctx context.Context, command commands.CheckoutCommand) (commands.CheckoutResult, error)
}

type ConfirmPaymentHandler interface {
	Handle(ctx context.Context, command commands.ConfirmPaymentCommand) (commands.ConfirmPaymentResult, error)
}

type CancelOrderHandler interface {
	Handle(ctx context.Context, command commands.CancelOrderCommand) (*order.Order, error)
}

type CompleteOrderHandler interface {
	Handle(ctx context.Context, command commands.CompleteOrderCommand) (*order.Order, error)
}

type RegisterAgentHandler interface {
	Handle(ctx context.Context, command commands.RegisterAgentCommand) error
}

type AddCartItemHandler interface {
	Handle(ctx context.Context, command commands.AddCartItemCommand) (*cart.Cart, error)
}

type RemoveCartItemHandler interface {
	Handle(ctx context.Context, command commands.RemoveCartItemCommand) (*cart.Cart, error)
}

type ServicesHandler interface {
	Handle(ctx context.Context, query queries.ListServicesQuery) ([]queries.ServiceView, error)
}

type CentersHandler interface {
	Handle(ctx context.Context, query queries.ListCentersQuery) ([]queries.CenterView, error)
}

type AgentsHandler interface {
	Handle(ctx context.Context, query queries.ListAgentsQuery) ([]queries.AgentView, error)
}

type CartHandler interface {
	Handle(ctx context.Context, query queries.GetCartQuery) (*queries.CartView, error)
}

type NearestAgentsHandler interface {
	Handle(ctx context.Context, query queries.NearestAgentsQuery) ([]queries.NearestAgent, error)
}

type CustomerOrdersHandler interface {
	Handle(ctx context.Context, query queries.GetCustomerOrdersQuery) ([]queries.OrderSummary, error)
}

type OrderDetailsHandler interface {
	Handle(ctx context.Context, query queries.GetOrderQuery) (*queries.OrderDetails, error)
}

// Handlers are the use cases behind the API.
type Handlers struct {
	// Command handlers
	Checkout       CheckoutHandler
	ConfirmPayment ConfirmPaymentHandler
	CancelOrder    CancelOrderHandler
	CompleteOrder  CompleteOrderHandler
	RegisterAgent  RegisterAgentHandler
	AddCartItem    AddCartItemHandler
	RemoveCartItem RemoveCartItemHandler

	// Query handlers
	Services       ServicesHandler
	Centers        CentersHandler
	Agents         AgentsHandler
	Cart           CartHandler
	NearestAgents  NearestAgentsHandler
	CustomerOrders CustomerOrdersHandler
	OrderDetails   OrderDetailsHandler
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers        Handlers
	nearestMaxLimit int
	metrics         *telemetry.Metrics
	logger          *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, nearestMaxLimit int, metrics *telemetry.Metrics, logger *slog.Logger) *Server {
	if nearestMaxLimit <= 0 {
		nearestMaxLimit = queries.DefaultMaxNearestLimit
	}
	return &Server{
		handlers:        handlers,
		nearestMaxLimit: nearestMaxLimit,
		metrics:         metrics,
		logger:          logger.With("component", "http"),
	}
}

var _ servers.ServerInterface = (*Server)(nil)

// Checkout handles POST /api/v1/checkout - places an order from the cart.
func (s *Server) Checkout(ctx echo.Context) error {
	var body servers.CheckoutRequest
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	method := ""
	if body.PaymentMethod != nil {
		method = string(*body.PaymentMethod)
	}

	cmd, err := commands.NewCheckoutCommand(
		customerRef(ctx), deref(body.CenterId), deref(body.Lat), deref(body.Lng), method, body.ScheduledTime,
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	reqCtx, span := telemetry.Tracer().Start(ctx.Request().Context(), "checkout")
	defer span.End()

	result, err := s.handlers.Checkout.Handle(reqCtx, cmd)
	if err != nil {
		span.RecordError(err)
		return s.fail(ctx, err)
	}

	s.metrics.CheckoutsTotal.WithLabelValues(result.Order.PaymentMethod().String()).Inc()
	s.metrics.DispatchOutcomes.WithLabelValues(result.Dispatch.Outcome.String()).Inc()

	return ctx.JSON(http.StatusCreated, servers.CheckoutResponse{
		Order:    orderFromDomain(result.Order),
		Dispatch: dispatchFromResult(result.Dispatch),
	})
}

// ListServices handles GET /api/v1/services - the bookable catalog.
func (s *Server) ListServices(ctx echo.Context) error {
	views, err := s.handlers.Services.Handle(ctx.Request().Context(), queries.NewListServicesQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	response := servers.ServiceList{Services: make([]servers.Service, len(views))}
	for i, v := range views {
		response.Services[i] = servers.Service{
			Id:          v.ID.Bytes(),
			Name:        v.Name,
			Description: v.Description,
			Category:    v.Category,
			BasePrice:   money(v.BasePrice),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ListCenters handles GET /api/v1/centers - active service centers.
func (s *Server) ListCenters(ctx echo.Context) error {
	views, err := s.handlers.Centers.Handle(ctx.Request().Context(), queries.NewListCentersQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	response := servers.CenterList{Centers: make([]servers.Center, len(views))}
	for i, v := range views {
		response.Centers[i] = servers.Center{
			Id:      v.ID.Bytes(),
			Name:    v.Name,
			Phone:   v.Phone,
			Address: v.Address,
			Lat:     v.Location.Lat(),
			Lng:     v.Location.Lng(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ListAgents handles GET /api/v1/agents - active agents with their center.
func (s *Server) ListAgents(ctx echo.Context) error {
	views, err := s.handlers.Agents.Handle(ctx.Request().Context(), queries.NewListAgentsQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	response := servers.AgentList{Agents: make([]servers.Agent, len(views))}
	for i, v := range views {
		response.Agents[i] = servers.Agent{
			Id:       v.ID.Bytes(),
			Name:     v.Name,
			Phone:    v.Phone,
			Center:   v.CenterName,
			CenterId: v.CenterID.Bytes(),
			Busy:     v.IsBusy,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetNearestAgents handles GET /api/v1/agents/nearest - agents sorted by distance.
func (s *Server) GetNearestAgents(ctx echo.Context, params servers.GetNearestAgentsParams) error {
	query, err := queries.NewNearestAgentsQuery(
		deref(params.Lat), deref(params.Lng), deref(params.Limit), s.nearestMaxLimit,
	)
	if errors.Is(err, queries.ErrInvalidCoordinates) {
		message := "Invalid or missing lat/lng"
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: message,
			Error:   &message,
		})
	}
	if err != nil {
		return s.fail(ctx, err)
	}

	agents, err := s.handlers.NearestAgents.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := servers.NearestAgentsResponse{Agents: make([]servers.NearestAgent, len(agents))}
	for i, a := range agents {
		response.Agents[i] = servers.NearestAgent{
			Id:         a.ID.Bytes(),
			Name:       a.Name,
			Phone:      a.Phone,
			Center:     a.CenterName,
			CenterId:   a.CenterID.Bytes(),
			DistanceKm: a.DistanceKm,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// RegisterAgent handles POST /api/v1/agents - registers an agent at a center.
func (s *Server) RegisterAgent(ctx echo.Context) error {
	var body servers.NewAgent
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	base, err := baseLocation(body.BaseLat, body.BaseLng)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewRegisterAgentCommand(body.IdentityRef, body.Name, deref(body.Phone), body.CenterId, base)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.RegisterAgent.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// AddCartItem handles POST /api/v1/cart/items - adds a service to the cart.
func (s *Server) AddCartItem(ctx echo.Context) error {
	var body servers.AddCartItemRequest
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAddCartItemCommand(customerRef(ctx), body.ServiceId, body.Quantity)
	if err != nil {
		return s.fail(ctx, err)
	}

	c, err := s.handlers.AddCartItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, cartFromDomain(c))
}

// GetCart handles GET /api/v1/cart - the cart at current prices.
func (s *Server) GetCart(ctx echo.Context) error {
	query, err := queries.NewGetCartQuery(customerRef(ctx))
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.handlers.Cart.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, cartFromView(view))
}

// RemoveCartItem handles DELETE /api/v1/cart/items/{itemId}.
func (s *Server) RemoveCartItem(ctx echo.Context, itemID servers.ItemId) error {
	cmd, err := commands.NewRemoveCartItemCommand(customerRef(ctx), itemID.String())
	if err != nil {
		return s.fail(ctx, err)
	}

	c, err := s.handlers.RemoveCartItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, cartFromDomain(c))
}

// ConfirmPayment handles POST /api/v1/payments/success - the payment callback.
func (s *Server) ConfirmPayment(ctx echo.Context) error {
	var body servers.PaymentSuccessRequest
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewConfirmPaymentCommand(customerRef(ctx), deref(body.OrderId))
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.ConfirmPayment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.PaymentSuccessResponse{
		Order:   orderFromDomain(result.Order),
		Changed: result.Changed,
	})
}

// ListOrders handles GET /api/v1/orders - the customer's orders, newest first.
func (s *Server) ListOrders(ctx echo.Context) error {
	query, err := queries.NewGetCustomerOrdersQuery(customerRef(ctx))
	if err != nil {
		return s.fail(ctx, err)
	}

	summaries, err := s.handlers.CustomerOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := servers.OrderList{Orders: make([]servers.Order, len(summaries))}
	for i, summary := range summaries {
		response.Orders[i] = orderFromSummary(summary)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderID servers.OrderId) error {
	query, err := queries.NewGetOrderQuery(customerRef(ctx), orderID.String())
	if err != nil {
		return s.fail(ctx, err)
	}

	details, err := s.handlers.OrderDetails.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromDetails(details))
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel.
func (s *Server) CancelOrder(ctx echo.Context, orderID servers.OrderId) error {
	cmd, err := commands.NewCancelOrderCommand(customerRef(ctx), orderID.String())
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.handlers.CancelOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromDomain(o))
}

// CompleteOrder handles POST /api/v1/orders/{orderId}/complete.
func (s *Server) CompleteOrder(ctx echo.Context, orderID servers.OrderId) error {
	cmd, err := commands.NewCompleteOrderCommand(orderID.String())
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.handlers.CompleteOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromDomain(o))
}

func (s *Server) badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func (s *Server) fail(ctx echo.Context, err error) error {
	return writeError(ctx, s.logger, err)
}

// baseLocation accepts both coordinates or neither.
func baseLocation(lat, lng *float64) (*kernel.Location, error) {
	if lat == nil && lng == nil {
		return nil, nil
	}
	if lat == nil || lng == nil {
		return nil, errs.NewValueIsRequiredError("baseLat/baseLng")
	}
	location, err := kernel.NewLocation(*lat, *lng)
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
