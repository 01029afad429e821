package agentrepo_test

import (
	"context"
	"errors"
	"testing"

	"roadside/internal/adapters/out/postgres/agentrepo"
	"roadside/internal/adapters/out/postgres/centerrepo"
	"roadside/internal/adapters/out/postgres/pgtest"
	"roadside/internal/core/domain/model/agent"
	"roadside/internal/core/domain/model/center"
	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type AgentRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *agentrepo.GormAgentRepository
	center     *center.Center
}

func (suite *AgentRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *AgentRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Reset())
	suite.repository = agentrepo.NewGormAgentRepository(suite.database.DB)
	suite.center = suite.addCenter("Banani Hub", 23.7925, 90.4078)
}

func (suite *AgentRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Stop(context.Background()))
	}
}

func (suite *AgentRepositoryIntegrationTestSuite) TestGet_ResolvesDispatchPosition() {
	ctx := context.Background()
	base := kernel.MustNewLocation(23.80, 90.41)
	withBase := suite.addAgent(suite.center, &base)
	withoutBase := suite.addAgent(suite.center, nil)

	got, err := suite.repository.Get(ctx, withBase.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(got.BaseLocation())
	suite.InDelta(23.80, got.Location().Lat(), 1e-9)
	suite.InDelta(90.41, got.Location().Lng(), 1e-9)
	suite.Equal(suite.center.ID(), got.CenterID())
	suite.True(got.IsActive())
	suite.False(got.IsBusy())

	got, err = suite.repository.Get(ctx, withoutBase.ID())
	suite.Require().NoError(err)
	suite.Nil(got.BaseLocation())
	suite.InDelta(23.7925, got.Location().Lat(), 1e-9)
	suite.InDelta(90.4078, got.Location().Lng(), 1e-9)
}

func (suite *AgentRepositoryIntegrationTestSuite) TestGet_Missing_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *AgentRepositoryIntegrationTestSuite) TestUpdate_PersistsFlags() {
	ctx := context.Background()
	a := suite.addAgent(suite.center, nil)
	suite.Require().NoError(a.Reserve())

	suite.Require().NoError(suite.repository.Update(ctx, a))

	got, err := suite.repository.GetForUpdate(ctx, a.ID())
	suite.Require().NoError(err)
	suite.True(got.IsBusy())

	got.Release()
	got.Deactivate()
	suite.Require().NoError(suite.repository.Update(ctx, got))

	got, err = suite.repository.Get(ctx, a.ID())
	suite.Require().NoError(err)
	suite.False(got.IsBusy())
	suite.False(got.IsActive())
}

func (suite *AgentRepositoryIntegrationTestSuite) TestGetAvailable_FiltersByCenterAndFlags() {
	ctx := context.Background()
	idle := suite.addAgent(suite.center, nil)

	busy := suite.addAgent(suite.center, nil)
	suite.Require().NoError(busy.Reserve())
	suite.Require().NoError(suite.repository.Update(ctx, busy))

	inactive := suite.addAgent(suite.center, nil)
	inactive.Deactivate()
	suite.Require().NoError(suite.repository.Update(ctx, inactive))

	other := suite.addCenter("Mirpur Hub", 23.8223, 90.3654)
	suite.addAgent(other, nil)

	agents, err := suite.repository.GetAvailable(ctx, suite.center.ID())
	suite.Require().NoError(err)
	suite.Require().Len(agents, 1)
	suite.Equal(idle.ID(), agents[0].ID())
}

func (suite *AgentRepositoryIntegrationTestSuite) TestGetAvailable_DoesNotHideAgentsLockedByAnotherTransaction() {
	ctx := context.Background()
	a := suite.addAgent(suite.center, nil)
	suite.addAgent(suite.center, nil)

	first := suite.database.DB.Begin()
	defer first.Rollback()
	_, err := agentrepo.NewGormAgentRepository(first).GetIdleForUpdate(ctx, a.ID())
	suite.Require().NoError(err)

	second := suite.database.DB.Begin()
	defer second.Rollback()
	agents, err := agentrepo.NewGormAgentRepository(second).GetAvailable(ctx, suite.center.ID())
	suite.Require().NoError(err)
	suite.Len(agents, 2)
}

func (suite *AgentRepositoryIntegrationTestSuite) TestGetIdleForUpdate_BusyOrInactive_ReturnsNotFound() {
	ctx := context.Background()
	busy := suite.addAgent(suite.center, nil)
	suite.Require().NoError(busy.Reserve())
	suite.Require().NoError(suite.repository.Update(ctx, busy))

	inactive := suite.addAgent(suite.center, nil)
	inactive.Deactivate()
	suite.Require().NoError(suite.repository.Update(ctx, inactive))

	_, err := suite.repository.GetIdleForUpdate(ctx, busy.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	_, err = suite.repository.GetIdleForUpdate(ctx, inactive.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *AgentRepositoryIntegrationTestSuite) TestGetIdleForUpdate_ConcurrentDispatchesReserveDifferentAgents() {
	ctx := context.Background()
	suite.addAgent(suite.center, nil)
	suite.addAgent(suite.center, nil)

	first := suite.database.DB.Begin()
	defer first.Rollback()
	second := suite.database.DB.Begin()
	defer second.Rollback()

	firstPick := suite.reserveFirstFree(ctx, agentrepo.NewGormAgentRepository(first))
	secondPick := suite.reserveFirstFree(ctx, agentrepo.NewGormAgentRepository(second))

	suite.Require().NotNil(firstPick)
	suite.Require().NotNil(secondPick)
	suite.NotEqual(firstPick.ID(), secondPick.ID())

	suite.Require().NoError(first.Commit().Error)
	suite.Require().NoError(second.Commit().Error)

	left, err := suite.repository.GetAvailable(ctx, suite.center.ID())
	suite.Require().NoError(err)
	suite.Empty(left)
}

func (suite *AgentRepositoryIntegrationTestSuite) TestGetIdleForUpdate_AgentReservedByCommittedDispatch_ReturnsNotFound() {
	ctx := context.Background()
	a := suite.addAgent(suite.center, nil)

	first := suite.database.DB.Begin()
	defer first.Rollback()
	picked := suite.reserveFirstFree(ctx, agentrepo.NewGormAgentRepository(first))
	suite.Require().NotNil(picked)
	suite.Require().NoError(first.Commit().Error)

	_, err := suite.repository.GetIdleForUpdate(ctx, a.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

// reserveFirstFree walks the center's idle agents the way checkout does and
// reserves the first one it can lock.
func (suite *AgentRepositoryIntegrationTestSuite) reserveFirstFree(
	ctx context.Context, repo *agentrepo.GormAgentRepository,
) *agent.Agent {
	candidates, err := repo.GetAvailable(ctx, suite.center.ID())
	suite.Require().NoError(err)

	for _, candidate := range candidates {
		locked, lockErr := repo.GetIdleForUpdate(ctx, candidate.ID())
		if errors.Is(lockErr, errs.ErrObjectNotFound) {
			continue
		}
		suite.Require().NoError(lockErr)
		suite.Require().NoError(locked.Reserve())
		suite.Require().NoError(repo.Update(ctx, locked))
		return locked
	}
	return nil
}

func (suite *AgentRepositoryIntegrationTestSuite) addCenter(name string, lat, lng float64) *center.Center {
	c, err := center.NewCenter(kernel.NewUUID(), name, "+8801700000000", "Dhaka", kernel.MustNewLocation(lat, lng))
	suite.Require().NoError(err)
	suite.Require().NoError(centerrepo.NewGormCenterRepository(suite.database.DB).Add(context.Background(), c))
	return c
}

func (suite *AgentRepositoryIntegrationTestSuite) addAgent(c *center.Center, base *kernel.Location) *agent.Agent {
	a, err := agent.NewAgent(kernel.NewUUID(), "user-"+kernel.NewUUID().String(), "Rahim", "+8801800000000", c, base)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), a))
	return a
}

func TestAgentRepositoryIntegration(t *testing.T) {
	suite.Run(t, new(AgentRepositoryIntegrationTestSuite))
}
