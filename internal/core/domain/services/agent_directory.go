package services

import (
	"sort"

	"roadside/internal/core/domain/model/agent"
	"roadside/internal/core/domain/model/center"
	"roadside/internal/core/domain/model/kernel"
)

// DefaultNearestLimit is the result size of a public nearest-agents query
// when the caller does not ask for one.
const DefaultNearestLimit = 5

// Positioned is anything that can be ranked by distance: agent aggregates as
// well as read models.
type Positioned interface {
	ID() kernel.UUID
	Location() kernel.Location
}

// Ranked pairs a candidate with its distance from the reference point.
type Ranked[T Positioned] struct {
	Candidate  T
	DistanceKm float64
}

// RankByDistance sorts candidates by great-circle distance from `from`,
// ascending, breaking ties by identifier so the order is deterministic, and
// keeps at most limit entries. A limit of zero or less yields no entries.
//
// Candidates with an unconstructed location are skipped.
func RankByDistance[T Positioned](from kernel.Location, candidates []T, limit int) []Ranked[T] {
	if limit <= 0 || from.Validate() != nil {
		return nil
	}

	ranked := make([]Ranked[T], 0, len(candidates))
	for _, c := range candidates {
		if c.Location().Validate() != nil {
			continue
		}
		ranked = append(ranked, Ranked[T]{
			Candidate:  c,
			DistanceKm: kernel.Distance(from, c.Location()),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].DistanceKm != ranked[j].DistanceKm {
			return ranked[i].DistanceKm < ranked[j].DistanceKm
		}
		return ranked[i].Candidate.ID().Less(ranked[j].Candidate.ID())
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// AgentDirectory is a read-only view over the agents of a service center.
//
// Example usage:
//
//	dir := services.NewAgentDirectory()
//	eligible := dir.EligibleAgents(center, agents)
//	nearest := dir.NearestAgents(pickup, eligible, 1)
type AgentDirectory struct{}

// NewAgentDirectory creates an AgentDirectory.
func NewAgentDirectory() AgentDirectory {
	return AgentDirectory{}
}

// EligibleAgents returns the active agents of c, preserving input order.
//
// Parameters:
//   - c: the center to scope to; nil yields no agents
//   - agents: the candidate pool, typically loaded for that center
//
// Returns:
//   - []*agent.Agent: agents with active = true bound to c
func (AgentDirectory) EligibleAgents(c *center.Center, agents []*agent.Agent) []*agent.Agent {
	if c.Validate() != nil {
		return nil
	}

	eligible := make([]*agent.Agent, 0, len(agents))
	for _, a := range agents {
		if a.Validate() != nil {
			continue
		}
		if a.IsActive() && a.BelongsTo(c.ID()) {
			eligible = append(eligible, a)
		}
	}
	return eligible
}

// NearestAgents ranks candidates by distance from location. It does not
// change any agent.
func (AgentDirectory) NearestAgents(location kernel.Location, candidates []*agent.Agent, limit int) []Ranked[*agent.Agent] {
	return RankByDistance(location, candidates, limit)
}
