package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Add a service to the customer's cart
	// (POST /cart/items)
	AddCartItem(ctx echo.Context) error
	// Remove a line from the customer's cart
	// (DELETE /cart/items/{itemId})
	RemoveCartItem(ctx echo.Context, itemId ItemId) error
	// The customer's cart at current catalog prices
	// (GET /cart)
	GetCart(ctx echo.Context) error
	// Active agents with their center
	// (GET /agents)
	ListAgents(ctx echo.Context) error
	// Register a field agent at a center
	// (POST /agents)
	RegisterAgent(ctx echo.Context) error
	// Active agents nearest to a point
	// (GET /agents/nearest)
	GetNearestAgents(ctx echo.Context, params GetNearestAgentsParams) error
	// Active service centers
	// (GET /centers)
	ListCenters(ctx echo.Context) error
	// Turn the customer's cart into an order and dispatch an agent
	// (POST /checkout)
	Checkout(ctx echo.Context) error
	// The customer's orders, newest first
	// (GET /orders)
	ListOrders(ctx echo.Context) error
	// One order with its items
	// (GET /orders/{orderId})
	GetOrder(ctx echo.Context, orderId OrderId) error
	// Cancel a non-terminal order
	// (POST /orders/{orderId}/cancel)
	CancelOrder(ctx echo.Context, orderId OrderId) error
	// Mark an order as serviced
	// (POST /orders/{orderId}/complete)
	CompleteOrder(ctx echo.Context, orderId OrderId) error
	// Record a successful online payment
	// (POST /payments/success)
	ConfirmPayment(ctx echo.Context) error
	// Bookable catalog services
	// (GET /services)
	ListServices(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// AddCartItem converts echo context to params.
func (w *ServerInterfaceWrapper) AddCartItem(ctx echo.Context) error {
	ctx.Set(CustomerIdScopes, []string{})

	return w.Handler.AddCartItem(ctx)
}

// RemoveCartItem converts echo context to params.
func (w *ServerInterfaceWrapper) RemoveCartItem(ctx echo.Context) error {
	var itemId ItemId

	err := runtime.BindStyledParameterWithOptions("simple", "itemId", ctx.Param("itemId"), &itemId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter itemId: %s", err))
	}

	ctx.Set(CustomerIdScopes, []string{})

	return w.Handler.RemoveCartItem(ctx, itemId)
}

// GetCart converts echo context to params.
func (w *ServerInterfaceWrapper) GetCart(ctx echo.Context) error {
	ctx.Set(CustomerIdScopes, []string{})

	return w.Handler.GetCart(ctx)
}

// ListAgents converts echo context to params.
func (w *ServerInterfaceWrapper) ListAgents(ctx echo.Context) error {
	return w.Handler.ListAgents(ctx)
}

// RegisterAgent converts echo context to params.
func (w *ServerInterfaceWrapper) RegisterAgent(ctx echo.Context) error {
	return w.Handler.RegisterAgent(ctx)
}

// GetNearestAgents converts echo context to params.
func (w *ServerInterfaceWrapper) GetNearestAgents(ctx echo.Context) error {
	var err error

	var params GetNearestAgentsParams

	err = runtime.BindQueryParameter("form", true, false, "lat", ctx.QueryParams(), &params.Lat)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter lat: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "lng", ctx.QueryParams(), &params.Lng)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter lng: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}

	return w.Handler.GetNearestAgents(ctx, params)
}

// ListCenters converts echo context to params.
func (w *ServerInterfaceWrapper) ListCenters(ctx echo.Context) error {
	return w.Handler.ListCenters(ctx)
}

// Checkout converts echo context to params.
func (w *ServerInterfaceWrapper) Checkout(ctx echo.Context) error {
	ctx.Set(CustomerIdScopes, []string{})

	return w.Handler.Checkout(ctx)
}

// ListOrders converts echo context to params.
func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	ctx.Set(CustomerIdScopes, []string{})

	return w.Handler.ListOrders(ctx)
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}

	ctx.Set(CustomerIdScopes, []string{})

	return w.Handler.GetOrder(ctx, orderId)
}

// CancelOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CancelOrder(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}

	ctx.Set(CustomerIdScopes, []string{})

	return w.Handler.CancelOrder(ctx, orderId)
}

// CompleteOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CompleteOrder(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}

	return w.Handler.CompleteOrder(ctx, orderId)
}

// ConfirmPayment converts echo context to params.
func (w *ServerInterfaceWrapper) ConfirmPayment(ctx echo.Context) error {
	ctx.Set(CustomerIdScopes, []string{})

	return w.Handler.ConfirmPayment(ctx)
}

// ListServices converts echo context to params.
func (w *ServerInterfaceWrapper) ListServices(ctx echo.Context) error {
	return w.Handler.ListServices(ctx)
}

func bindOrderID(ctx echo.Context) (OrderId, error) {
	var orderId OrderId

	err := runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return orderId, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	return orderId, nil
}

// EchoRouter is an interface that wraps the methods of echo.Echo and echo.Group
// used to register routes.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to the
// paths, so that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/agents", wrapper.ListAgents)
	router.GET(baseURL+"/agents/nearest", wrapper.GetNearestAgents)
	router.POST(baseURL+"/agents", wrapper.RegisterAgent)
	router.GET(baseURL+"/cart", wrapper.GetCart)
	router.POST(baseURL+"/cart/items", wrapper.AddCartItem)
	router.DELETE(baseURL+"/cart/items/:itemId", wrapper.RemoveCartItem)
	router.GET(baseURL+"/centers", wrapper.ListCenters)
	router.POST(baseURL+"/checkout", wrapper.Checkout)
	router.GET(baseURL+"/orders", wrapper.ListOrders)
	router.GET(baseURL+"/orders/:orderId", wrapper.GetOrder)
	router.POST(baseURL+"/orders/:orderId/cancel", wrapper.CancelOrder)
	router.POST(baseURL+"/orders/:orderId/complete", wrapper.CompleteOrder)
	router.POST(baseURL+"/payments/success", wrapper.ConfirmPayment)
	router.GET(baseURL+"/services", wrapper.ListServices)
}
