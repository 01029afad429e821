package outboxrepo_test

import (
	"context"
	"testing"
	"time"

	"roadside/internal/adapters/out/postgres/outboxrepo"
	"roadside/internal/adapters/out/postgres/pgtest"
	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/core/domain/model/outbox"
	"roadside/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type OutboxRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *outboxrepo.GormOutboxRepository
}

func (suite *OutboxRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *OutboxRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Reset())
	suite.repository = outboxrepo.NewGormOutboxRepository(suite.database.DB)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Stop(context.Background()))
	}
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestGetUnprocessedForUpdate_OldestFirstWithLimit() {
	ctx := context.Background()
	now := time.Now().UTC()
	older := newMessage(now.Add(-2 * time.Minute))
	newer := newMessage(now.Add(-time.Minute))
	processed := newMessage(now.Add(-time.Hour))
	processed.MarkProcessed(now)
	suite.Require().NoError(suite.repository.Add(ctx, newer, older, processed))

	messages, err := suite.repository.GetUnprocessedForUpdate(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(messages, 2)
	suite.Equal(older.ID, messages[0].ID)
	suite.Equal(newer.ID, messages[1].ID)
	suite.JSONEq(`{"orderId":"o-1"}`, string(messages[0].Payload))
	suite.Equal("order.placed", messages[0].Name)

	limited, err := suite.repository.GetUnprocessedForUpdate(ctx, 1)
	suite.Require().NoError(err)
	suite.Len(limited, 1)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestMarkProcessed_HidesMessage() {
	ctx := context.Background()
	m := newMessage(time.Now().UTC())
	suite.Require().NoError(suite.repository.Add(ctx, m))

	m.MarkProcessed(time.Now().UTC())
	suite.Require().NoError(suite.repository.MarkProcessed(ctx, m))

	messages, err := suite.repository.GetUnprocessedForUpdate(ctx, 10)
	suite.Require().NoError(err)
	suite.Empty(messages)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestMarkProcessed_Missing_ReturnsNotFound() {
	m := newMessage(time.Now().UTC())
	m.MarkProcessed(time.Now().UTC())

	err := suite.repository.MarkProcessed(context.Background(), m)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestAdd_NoMessages_IsNoop() {
	suite.Require().NoError(suite.repository.Add(context.Background()))
}

func newMessage(occurredAt time.Time) *outbox.Message {
	return &outbox.Message{
		ID:          kernel.NewUUID(),
		Name:        "order.placed",
		AggregateID: kernel.NewUUID(),
		Payload:     []byte(`{"orderId":"o-1"}`),
		OccurredAt:  occurredAt,
	}
}

func TestOutboxRepositoryIntegration(t *testing.T) {
	suite.Run(t, new(OutboxRepositoryIntegrationTestSuite))
}
