package services_test

import (
	"math/rand/v2"
	"testing"

	"roadside/internal/core/domain/model/agent"
	"roadside/internal/core/domain/model/center"
	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCenter(t *testing.T, lat, lng float64) *center.Center {
	t.Helper()
	c, err := center.NewCenter(kernel.NewUUID(), "Dhaka Bikes Service", "", "", kernel.MustNewLocation(lat, lng))
	require.NoError(t, err)
	return c
}

func newAgentAt(t *testing.T, c *center.Center, lat, lng float64) *agent.Agent {
	t.Helper()
	base := kernel.MustNewLocation(lat, lng)
	a, err := agent.NewAgent(kernel.NewUUID(), "user-"+kernel.NewUUID().String(), "Agent", "", c, &base)
	require.NoError(t, err)
	return a
}

func TestAgentDirectory_EligibleAgents(t *testing.T) {
	dhaka := newCenter(t, 23.7925, 90.4078)
	chattogram := newCenter(t, 22.3595, 91.8212)

	active := newAgentAt(t, dhaka, 23.79, 90.40)
	inactive := newAgentAt(t, dhaka, 23.79, 90.40)
	inactive.Deactivate()
	elsewhere := newAgentAt(t, chattogram, 22.36, 91.82)

	dir := services.NewAgentDirectory()
	eligible := dir.EligibleAgents(dhaka, []*agent.Agent{active, inactive, elsewhere, nil})

	require.Len(t, eligible, 1)
	assert.True(t, eligible[0].IsEqual(active))
	assert.Empty(t, dir.EligibleAgents(nil, []*agent.Agent{active}))
}

func TestAgentDirectory_NearestAgents(t *testing.T) {
	c := newCenter(t, 23.7925, 90.4078)
	pickup := kernel.MustNewLocation(23.7925, 90.4078)
	far := newAgentAt(t, c, 23.9, 90.5)
	near := newAgentAt(t, c, 23.80, 90.41)
	here := newAgentAt(t, c, 23.7925, 90.4078)

	ranked := services.NewAgentDirectory().NearestAgents(pickup, []*agent.Agent{far, near, here}, 2)

	require.Len(t, ranked, 2)
	assert.True(t, ranked[0].Candidate.IsEqual(here))
	assert.Zero(t, ranked[0].DistanceKm)
	assert.True(t, ranked[1].Candidate.IsEqual(near))
}

func TestRankByDistance_TiesBrokenByID(t *testing.T) {
	c := newCenter(t, 23.7925, 90.4078)
	pickup := kernel.MustNewLocation(23.7, 90.3)
	a := newAgentAt(t, c, 23.7925, 90.4078)
	b := newAgentAt(t, c, 23.7925, 90.4078)
	first, second := a, b
	if b.ID().Less(a.ID()) {
		first, second = b, a
	}

	ranked := services.RankByDistance(pickup, []*agent.Agent{second, first}, 5)

	require.Len(t, ranked, 2)
	assert.True(t, ranked[0].Candidate.IsEqual(first))
	assert.True(t, ranked[1].Candidate.IsEqual(second))
}

func TestRankByDistance_SortedAndBounded(t *testing.T) {
	c := newCenter(t, 23.7925, 90.4078)
	r := rand.New(rand.NewPCG(7, 8))
	agents := make([]*agent.Agent, 0, 40)
	for range 40 {
		agents = append(agents, newAgentAt(t, c, 20+r.Float64()*6, 88+r.Float64()*4))
	}
	pickup := kernel.MustNewLocation(23.7925, 90.4078)

	for _, limit := range []int{1, 5, 40, 100} {
		ranked := services.RankByDistance(pickup, agents, limit)

		assert.LessOrEqual(t, len(ranked), limit)
		for i := 1; i < len(ranked); i++ {
			assert.LessOrEqual(t, ranked[i-1].DistanceKm, ranked[i].DistanceKm)
		}
	}

	assert.Empty(t, services.RankByDistance(pickup, agents, 0))
	assert.Empty(t, services.RankByDistance(kernel.Location{}, agents, 5))
}
