package postgres_test

import (
	"context"
	"testing"

	postgres_adapter "roadside/internal/adapters/out/postgres"
	"roadside/internal/adapters/out/postgres/orderrepo"
	"roadside/internal/adapters/out/postgres/outboxrepo"
	"roadside/internal/adapters/out/postgres/pgtest"
	"roadside/internal/core/domain/model/catalog"
	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/core/domain/model/order"
	"roadside/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	factory  ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(database.DB)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Reset())
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Stop(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WritesOrderAndEventsTogether() {
	ctx := context.Background()
	o := suite.newOrder()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Equal(int64(1), suite.count(&orderrepo.OrderDTO{}))
	suite.Equal([]string{order.EventOrderPlaced}, suite.outboxNames())
	suite.Empty(o.DomainEvents())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_AggregateTrackedTwice_WritesEachEventOnce() {
	ctx := context.Background()
	centerID := kernel.NewUUID()
	o := suite.newOrderAt(&centerID)
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	orders := uow.OrderRepository()
	suite.Require().NoError(orders.Add(ctx, o))
	suite.Require().NoError(o.AssignAgent(kernel.NewUUID(), centerID))
	suite.Require().NoError(orders.Update(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	suite.ElementsMatch([]string{order.EventOrderPlaced, order.EventAgentAssigned}, suite.outboxNames())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsOrderAndEvents() {
	ctx := context.Background()
	o := suite.newOrder()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))

	suite.Require().NoError(uow.Rollback(ctx))

	suite.Equal(int64(0), suite.count(&orderrepo.OrderDTO{}))
	suite.Equal(int64(0), suite.count(&outboxrepo.MessageDTO{}))
	suite.NotEmpty(o.DomainEvents())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackAfterCommit_ReturnsInvalidTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Commit(ctx))

	suite.ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
	suite.ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestBegin_IsIdempotent() {
	ctx := context.Background()
	o := suite.newOrder()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Equal(int64(1), suite.count(&orderrepo.OrderDTO{}))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestIsolation_UncommittedOrderInvisibleToOtherUnit() {
	ctx := context.Background()
	o := suite.newOrder()
	writer := suite.factory.Create()
	suite.Require().NoError(writer.Begin(ctx))
	defer func() { _ = writer.Rollback(ctx) }()
	suite.Require().NoError(writer.OrderRepository().Add(ctx, o))

	reader := suite.factory.Create()
	_, err := reader.OrderRepository().Get(ctx, o.ID())

	suite.Error(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderPrices_SurviveCatalogPriceChange() {
	ctx := context.Background()
	service, err := catalog.NewService(kernel.NewUUID(), "Flat Tyre Fix", "", "repair", decimal.NewFromInt(199))
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.CatalogRepository().Add(ctx, service))
	item, err := order.NewItem(kernel.NewUUID(), service.ID(), service.Name(), 2, service.BasePrice())
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), "customer-1", nil, order.Cash, []*order.Item{item}, nil)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	reprice := suite.factory.Create()
	suite.Require().NoError(reprice.Begin(ctx))
	suite.Require().NoError(service.SetBasePrice(decimal.NewFromInt(349)))
	suite.Require().NoError(reprice.CatalogRepository().Update(ctx, service))
	suite.Require().NoError(reprice.Commit(ctx))

	reader := suite.factory.Create()
	repriced, err := reader.CatalogRepository().Get(ctx, service.ID())
	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(349).Equal(repriced.BasePrice()))

	stored, err := reader.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(398).Equal(stored.TotalAmount()))
	suite.Require().Len(stored.Items(), 1)
	suite.True(decimal.NewFromInt(199).Equal(stored.Items()[0].Price()))
	suite.Equal(service.ID(), stored.Items()[0].ServiceID())
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder() *order.Order {
	return suite.newOrderAt(nil)
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrderAt(centerID *kernel.UUID) *order.Order {
	item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Flat Tyre Fix", 1, decimal.NewFromInt(199))
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), "customer-1", centerID, order.Cash, []*order.Item{item}, nil)
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) count(model any) int64 {
	var n int64
	suite.Require().NoError(suite.database.DB.Model(model).Count(&n).Error)
	return n
}

func (suite *UnitOfWorkIntegrationTestSuite) outboxNames() []string {
	var names []string
	suite.Require().NoError(suite.database.DB.Model(&outboxrepo.MessageDTO{}).
		Order("occurred_at").Pluck("name", &names).Error)
	return names
}

func TestUnitOfWorkIntegration(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
