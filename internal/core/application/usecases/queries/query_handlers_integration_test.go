package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "roadside/internal/adapters/out/postgres"
	"roadside/internal/adapters/out/postgres/pgtest"
	"roadside/internal/core/application/usecases/queries"
	"roadside/internal/core/domain/model/agent"
	"roadside/internal/core/domain/model/cart"
	"roadside/internal/core/domain/model/catalog"
	"roadside/internal/core/domain/model/center"
	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/core/domain/model/order"
	"roadside/internal/core/ports"
	"roadside/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type QueryHandlersIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	factory  ports.UnitOfWorkFactory
}

func (suite *QueryHandlersIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(database.DB)
}

func (suite *QueryHandlersIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Reset())
}

func (suite *QueryHandlersIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Stop(context.Background()))
	}
}

func (suite *QueryHandlersIntegrationTestSuite) TestNearestAgents_SortedAndLimited() {
	ctx := context.Background()
	dhaka := suite.addCenter("Dhaka Bikes Service", 23.7925, 90.4078)
	ctg := suite.addCenter("Chattogram Riders Hub", 22.3595, 91.8212)
	near := kernel.MustNewLocation(23.7930, 90.4080)
	nearAgent := suite.addAgent(dhaka, "Near", &near)
	centerAgent := suite.addAgent(dhaka, "AtCenter", nil)
	farAgent := suite.addAgent(ctg, "Far", nil)
	inactive := suite.addAgent(dhaka, "Off", nil)
	inactive.Deactivate()
	suite.updateAgent(inactive)

	handler := queries.NewNearestAgentsQueryHandler(suite.database.DB)
	query, err := queries.NewNearestAgentsQuery("23.7930", "90.4080", "", 50)
	suite.Require().NoError(err)

	agents, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(agents, 3)
	suite.Equal(nearAgent.ID(), agents[0].ID)
	suite.Equal(0.0, agents[0].DistanceKm)
	suite.Equal(centerAgent.ID(), agents[1].ID)
	suite.Equal("Dhaka Bikes Service", agents[1].CenterName)
	suite.Equal(dhaka.ID(), agents[1].CenterID)
	suite.Equal(farAgent.ID(), agents[2].ID)
	suite.InDelta(212.0, agents[2].DistanceKm, 15.0)

	limited, err := queries.NewNearestAgentsQuery("23.7930", "90.4080", "1", 50)
	suite.Require().NoError(err)
	agents, err = handler.Handle(ctx, limited)
	suite.Require().NoError(err)
	suite.Require().Len(agents, 1)
	suite.Equal(nearAgent.ID(), agents[0].ID)
}

func (suite *QueryHandlersIntegrationTestSuite) TestNearestAgents_NoAgents_ReturnsEmptySlice() {
	query, err := queries.NewNearestAgentsQuery("23.7930", "90.4080", "", 50)
	suite.Require().NoError(err)

	agents, err := queries.NewNearestAgentsQueryHandler(suite.database.DB).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(agents)
	suite.Empty(agents)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetCustomerOrders_NewestFirstOwnOnly() {
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)
	older := suite.addOrder("customer-1", order.Online, order.Pending, base)
	newer := suite.addOrder("customer-1", order.Cash, order.Confirmed, base.Add(time.Minute))
	suite.addOrder("customer-2", order.Cash, order.Confirmed, base.Add(2*time.Minute))

	query, err := queries.NewGetCustomerOrdersQuery("customer-1")
	suite.Require().NoError(err)
	orders, err := queries.NewGetCustomerOrdersQueryHandler(suite.database.DB).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(orders, 2)
	suite.Equal(newer.ID(), orders[0].ID)
	suite.Equal("confirmed", orders[0].Status)
	suite.Equal("cash", orders[0].PaymentMethod)
	suite.Equal(older.ID(), orders[1].ID)
	suite.Equal("pending", orders[1].Status)
	suite.Equal(2, orders[1].ItemCount)
	suite.Equal("248.00", orders[1].TotalAmount.StringFixed(2))
	suite.Nil(orders[1].CenterID)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrder_WithItems() {
	ctx := context.Background()
	o := suite.addOrder("customer-1", order.Online, order.Pending, time.Now().UTC())
	handler := queries.NewGetOrderQueryHandler(suite.database.DB)

	query, err := queries.NewGetOrderQuery("customer-1", o.ID().String())
	suite.Require().NoError(err)
	details, err := handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(o.ID(), details.ID)
	suite.Require().Len(details.Items, 2)
	suite.Equal("Chain Lube", details.Items[0].ServiceName)
	suite.Equal("Flat Tyre Fix", details.Items[1].ServiceName)
	suite.True(decimal.NewFromInt(100).Equal(details.Items[0].Subtotal))
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrder_OtherCustomer_ReturnsNotFound() {
	ctx := context.Background()
	o := suite.addOrder("customer-1", order.Cash, order.Confirmed, time.Now().UTC())

	query, err := queries.NewGetOrderQuery("customer-2", o.ID().String())
	suite.Require().NoError(err)
	details, err := queries.NewGetOrderQueryHandler(suite.database.DB).Handle(ctx, query)

	suite.Nil(details)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersIntegrationTestSuite) TestListServices_ActiveOnlyByCategory() {
	ctx := context.Background()
	tyre := suite.addService("Flat Tyre Fix", "Repair", 199)
	lube := suite.addService("Chain Lube", "Maintenance", 50)
	retired := suite.addService("Spoke Truing", "Repair", 120)
	retired.Deactivate()
	suite.Require().NoError(suite.factory.Create().CatalogRepository().Update(ctx, retired))

	services, err := queries.NewListServicesQueryHandler(suite.database.DB).Handle(ctx, queries.NewListServicesQuery())

	suite.Require().NoError(err)
	suite.Require().Len(services, 2)
	suite.Equal(lube.ID(), services[0].ID)
	suite.Equal(tyre.ID(), services[1].ID)
	suite.Equal("Repair", services[1].Category)
	suite.Equal("199.00", services[1].BasePrice.StringFixed(2))
}

func (suite *QueryHandlersIntegrationTestSuite) TestListCenters_ActiveOnlyByName() {
	ctx := context.Background()
	dhaka := suite.addCenter("Dhaka Bikes Service", 23.7925, 90.4078)
	ctg := suite.addCenter("Chattogram Riders Hub", 22.3595, 91.8212)
	closed, err := center.RestoreCenter(
		kernel.NewUUID(), "Closed Garage", "", "", kernel.MustNewLocation(23.8, 90.4), false,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().CenterRepository().Add(ctx, closed))

	centers, err := queries.NewListCentersQueryHandler(suite.database.DB).Handle(ctx, queries.NewListCentersQuery())

	suite.Require().NoError(err)
	suite.Require().Len(centers, 2)
	suite.Equal(ctg.ID(), centers[0].ID)
	suite.Equal(dhaka.ID(), centers[1].ID)
	suite.InDelta(23.7925, centers[1].Location.Lat(), 1e-9)
}

func (suite *QueryHandlersIntegrationTestSuite) TestListAgents_ActiveWithCenter() {
	ctx := context.Background()
	dhaka := suite.addCenter("Dhaka Bikes Service", 23.7925, 90.4078)
	ctg := suite.addCenter("Chattogram Riders Hub", 22.3595, 91.8212)
	rahim := suite.addAgent(dhaka, "Rahim", nil)
	karim := suite.addAgent(ctg, "Karim", nil)
	off := suite.addAgent(dhaka, "Off", nil)
	off.Deactivate()
	suite.updateAgent(off)

	agents, err := queries.NewListAgentsQueryHandler(suite.database.DB).Handle(ctx, queries.NewListAgentsQuery())

	suite.Require().NoError(err)
	suite.Require().Len(agents, 2)
	suite.Equal(karim.ID(), agents[0].ID)
	suite.Equal("Chattogram Riders Hub", agents[0].CenterName)
	suite.Equal(rahim.ID(), agents[1].ID)
	suite.Equal(dhaka.ID(), agents[1].CenterID)
	suite.False(agents[1].IsBusy)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetCart_PricedAtCurrentCatalog() {
	ctx := context.Background()
	tyre := suite.addService("Flat Tyre Fix", "Repair", 199)
	lube := suite.addService("Chain Lube", "Maintenance", 50)
	c, err := cart.NewCart(kernel.NewUUID(), "customer-1")
	suite.Require().NoError(err)
	suite.Require().NoError(c.AddItem(tyre.ID(), 1))
	suite.Require().NoError(c.AddItem(lube.ID(), 3))
	suite.Require().NoError(suite.factory.Create().CartRepository().Save(ctx, c))

	query, err := queries.NewGetCartQuery("customer-1")
	suite.Require().NoError(err)
	view, err := queries.NewGetCartQueryHandler(suite.database.DB).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().NotNil(view.ID)
	suite.Equal(c.ID(), *view.ID)
	suite.Require().Len(view.Items, 2)
	suite.Equal("Chain Lube", view.Items[0].ServiceName)
	suite.Equal(3, view.Items[0].Quantity)
	suite.Equal("150.00", view.Items[0].Subtotal.StringFixed(2))
	suite.Equal(c.Items()[0].ID(), view.Items[1].ID)
	suite.Equal("349.00", view.TotalAmount.StringFixed(2))
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetCart_EmptyOrMissing() {
	ctx := context.Background()
	empty, err := cart.NewCart(kernel.NewUUID(), "customer-1")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().CartRepository().Save(ctx, empty))
	handler := queries.NewGetCartQueryHandler(suite.database.DB)

	query, err := queries.NewGetCartQuery("customer-1")
	suite.Require().NoError(err)
	view, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().NotNil(view.ID)
	suite.Empty(view.Items)
	suite.True(view.TotalAmount.IsZero())

	query, err = queries.NewGetCartQuery("customer-2")
	suite.Require().NoError(err)
	view, err = handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Nil(view.ID)
	suite.NotNil(view.Items)
	suite.Empty(view.Items)
}

func (suite *QueryHandlersIntegrationTestSuite) addService(name, category string, price int64) *catalog.Service {
	s, err := catalog.NewService(kernel.NewUUID(), name, "", category, decimal.NewFromInt(price))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().CatalogRepository().Add(context.Background(), s))
	return s
}

func (suite *QueryHandlersIntegrationTestSuite) addCenter(name string, lat, lng float64) *center.Center {
	ctx := context.Background()
	c, err := center.NewCenter(kernel.NewUUID(), name, "", "", kernel.MustNewLocation(lat, lng))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().CenterRepository().Add(ctx, c))
	return c
}

func (suite *QueryHandlersIntegrationTestSuite) addAgent(c *center.Center, name string, base *kernel.Location) *agent.Agent {
	a, err := agent.NewAgent(kernel.NewUUID(), "user-"+name, name, "+880170000000", c, base)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().AgentRepository().Add(context.Background(), a))
	return a
}

func (suite *QueryHandlersIntegrationTestSuite) updateAgent(a *agent.Agent) {
	suite.Require().NoError(suite.factory.Create().AgentRepository().Update(context.Background(), a))
}

func (suite *QueryHandlersIntegrationTestSuite) addOrder(
	customerRef string, method order.PaymentMethod, status order.Status, createdAt time.Time,
) *order.Order {
	ctx := context.Background()
	tyre, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Flat Tyre Fix", 1, decimal.NewFromInt(148))
	suite.Require().NoError(err)
	lube, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Chain Lube", 2, decimal.NewFromInt(50))
	suite.Require().NoError(err)
	o, err := order.RestoreOrder(
		kernel.NewUUID(), customerRef, nil, nil, method, status,
		decimal.NewFromInt(248), []*order.Item{tyre, lube}, nil, createdAt,
	)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))
	return o
}

func TestQueryHandlersIntegration(t *testing.T) {
	suite.Run(t, new(QueryHandlersIntegrationTestSuite))
}
