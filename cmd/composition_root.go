package cmd

import (
	"log/slog"

	httpadapter "roadside/internal/adapters/in/http"
	"roadside/internal/adapters/out/postgres"
	"roadside/internal/core/application/usecases/commands"
	"roadside/internal/core/application/usecases/queries"
	"roadside/internal/core/ports"
	"roadside/internal/jobs"
	"roadside/internal/pkg/telemetry"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory ports.UnitOfWorkFactory
	metrics    *telemetry.Metrics
	logger     *slog.Logger
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, metrics *telemetry.Metrics, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		metrics:    metrics,
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCheckoutCommandHandler() *commands.CheckoutCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewCheckoutCommandHandler(f, c.logger)
	return &h
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() *commands.ConfirmPaymentCommandHandler {
	h := commands.NewConfirmPaymentCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() *commands.CancelOrderCommandHandler {
	h := commands.NewCancelOrderCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() *commands.CompleteOrderCommandHandler {
	h := commands.NewCompleteOrderCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateExpirePendingOrdersCommandHandler() *commands.ExpirePendingOrdersCommandHandler {
	h := commands.NewExpirePendingOrdersCommandHandler(c.orderUoWFactory())
	return &h
}

func (c *CompositionRoot) CreateRegisterAgentCommandHandler() *commands.RegisterAgentCommandHandler {
	var f commands.AgentUoWFactory = FuncAgentUoWFactory(func() commands.AgentUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewRegisterAgentCommandHandler(f)
	return &h
}

func (c *CompositionRoot) CreateAddCartItemCommandHandler() *commands.AddCartItemCommandHandler {
	var f commands.CartUoWFactory = FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewAddCartItemCommandHandler(f)
	return &h
}

func (c *CompositionRoot) CreateRemoveCartItemCommandHandler() *commands.RemoveCartItemCommandHandler {
	var f commands.CartUoWFactory = FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewRemoveCartItemCommandHandler(f)
	return &h
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler(publisher ports.EventPublisher) *commands.RelayOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewRelayOutboxCommandHandler(f, publisher, c.logger)
	return &h
}

func (c *CompositionRoot) CreateListServicesQueryHandler() queries.ListServicesQueryHandler {
	return queries.NewListServicesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListCentersQueryHandler() queries.ListCentersQueryHandler {
	return queries.NewListCentersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListAgentsQueryHandler() queries.ListAgentsQueryHandler {
	return queries.NewListAgentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCartQueryHandler() queries.GetCartQueryHandler {
	return queries.NewGetCartQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateNearestAgentsQueryHandler() queries.NearestAgentsQueryHandler {
	return queries.NewNearestAgentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCustomerOrdersQueryHandler() queries.GetCustomerOrdersQueryHandler {
	return queries.NewGetCustomerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		Checkout:       c.CreateCheckoutCommandHandler(),
		ConfirmPayment: c.CreateConfirmPaymentCommandHandler(),
		CancelOrder:    c.CreateCancelOrderCommandHandler(),
		CompleteOrder:  c.CreateCompleteOrderCommandHandler(),
		RegisterAgent:  c.CreateRegisterAgentCommandHandler(),
		AddCartItem:    c.CreateAddCartItemCommandHandler(),
		RemoveCartItem: c.CreateRemoveCartItemCommandHandler(),
		Services:       c.CreateListServicesQueryHandler(),
		Centers:        c.CreateListCentersQueryHandler(),
		Agents:         c.CreateListAgentsQueryHandler(),
		Cart:           c.CreateGetCartQueryHandler(),
		NearestAgents:  c.CreateNearestAgentsQueryHandler(),
		CustomerOrders: c.CreateGetCustomerOrdersQueryHandler(),
		OrderDetails:   c.CreateGetOrderQueryHandler(),
	}, c.cfg.NearestAgentsMaxLimit, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateJobManager(publisher ports.EventPublisher) (*jobs.JobManager, error) {
	relay := jobs.NewOutboxRelayJob(
		c.CreateRelayOutboxCommandHandler(publisher), c.cfg.OutboxRelaySchedule, c.metrics, c.logger,
	)
	expiry, err := jobs.NewPendingOrderExpiryJob(
		c.CreateExpirePendingOrdersCommandHandler(),
		c.cfg.PendingExpirySchedule,
		c.cfg.PendingOrderTTL,
		c.metrics,
		c.logger,
	)
	if err != nil {
		return nil, err
	}
	return jobs.NewJobManager(relay, expiry), nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncAgentUoWFactory func() commands.AgentUoW

func (f FuncAgentUoWFactory) Create() commands.AgentUoW {
	return f()
}

type FuncCartUoWFactory func() commands.CartUoW

func (f FuncCartUoWFactory) Create() commands.CartUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
