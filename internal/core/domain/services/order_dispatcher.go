package services

import (
	"fmt"

	"roadside/internal/core/domain/model/agent"
	"roadside/internal/core/domain/model/center"
	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/core/domain/model/order"
	"roadside/internal/pkg/errs"
)

// Outcome tells what dispatch did with an order. None of the outcomes is an
// error: an order is valid whether or not an agent could be found.
type Outcome int

const (
	// Skipped means there was no usable pickup location or no center.
	Skipped Outcome = iota
	// NoneAvailable means the center has no active, idle agent.
	NoneAvailable
	// Assigned means an agent was reserved and bound to the order.
	Assigned
)

func (o Outcome) String() string {
	switch o {
	case Skipped:
		return "skipped"
	case NoneAvailable:
		return "none_available"
	case Assigned:
		return "assigned"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// AssignmentResult is the result of OrderDispatcher.Assign.
type AssignmentResult struct {
	Outcome    Outcome
	Agent      *agent.Agent
	DistanceKm float64
}

// OrderDispatcher selects the nearest eligible agent for an order and assigns it.
//
// Business rules:
//   - only active agents of the order's own center are considered
//   - an agent already serving an order is not considered
//   - the closest agent to the pickup location wins; ties go to the smaller id
//   - cash orders move to Assigned, online orders keep their status
//
// Example usage:
//
//	dispatcher := services.NewOrderDispatcher()
//	result, err := dispatcher.Assign(o, center, &pickup, agents)
//	if err != nil {
//	    // invariant violation, abort the transaction
//	}
//	if result.Outcome == services.Assigned {
//	    // persist result.Agent, it is now busy
//	}
type OrderDispatcher struct {
	directory AgentDirectory
}

// NewOrderDispatcher creates a new OrderDispatcher.
func NewOrderDispatcher() OrderDispatcher {
	return OrderDispatcher{directory: NewAgentDirectory()}
}

// Assign dispatches o.
//
// Parameters:
//   - o: the order, freshly created by checkout
//   - c: the order's center, nil when the order has none
//   - pickup: the customer's location, nil when absent or unparsable
//   - agents: the candidate pool of the center
//
// Returns:
//   - AssignmentResult: Skipped, NoneAvailable or Assigned with the agent and distance
//   - error: only for invariant violations such as a center that is not the
//     order's own; the order and agents are left unchanged in that case
func (d OrderDispatcher) Assign(
	o *order.Order,
	c *center.Center,
	pickup *kernel.Location,
	agents []*agent.Agent,
) (AssignmentResult, error) {
	if err := o.Validate(); err != nil {
		return AssignmentResult{}, err
	}

	centerID := o.CenterID()
	if centerID == nil || c == nil || pickup == nil || pickup.Validate() != nil {
		return AssignmentResult{Outcome: Skipped}, nil
	}
	if err := c.Validate(); err != nil {
		return AssignmentResult{}, err
	}
	if !c.ID().IsEqual(*centerID) {
		return AssignmentResult{}, errs.NewValueIsInvalidErrorWithCause(
			"center", fmt.Errorf("center %s is not the order's center %s", c.ID(), centerID))
	}

	nearest := d.directory.NearestAgents(*pickup, d.available(c, agents), 1)
	if len(nearest) == 0 {
		return AssignmentResult{Outcome: NoneAvailable}, nil
	}
	best := nearest[0]

	if err := best.Candidate.Reserve(); err != nil {
		return AssignmentResult{}, err
	}
	if err := o.AssignAgent(best.Candidate.ID(), best.Candidate.CenterID()); err != nil {
		best.Candidate.Release()
		return AssignmentResult{}, err
	}

	return AssignmentResult{
		Outcome:    Assigned,
		Agent:      best.Candidate,
		DistanceKm: best.DistanceKm,
	}, nil
}

// Rank returns the active, idle agents of c ordered by distance from pickup,
// nearest first, ties broken by id. Checkout walks this list and locks the
// first agent no concurrent dispatch holds.
func (d OrderDispatcher) Rank(c *center.Center, pickup kernel.Location, agents []*agent.Agent) []*agent.Agent {
	available := d.available(c, agents)
	ranked := d.directory.NearestAgents(pickup, available, len(available))

	ordered := make([]*agent.Agent, 0, len(ranked))
	for _, r := range ranked {
		ordered = append(ordered, r.Candidate)
	}
	return ordered
}

func (d OrderDispatcher) available(c *center.Center, agents []*agent.Agent) []*agent.Agent {
	available := make([]*agent.Agent, 0, len(agents))
	for _, a := range d.directory.EligibleAgents(c, agents) {
		if !a.IsBusy() {
			available = append(available, a)
		}
	}
	return available
}
