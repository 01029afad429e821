package ports

import (
	"context"

	"roadside/internal/core/domain/model/agent"
	"roadside/internal/core/domain/model/kernel"
)

// AgentRepository defines the persistence contract for agent aggregates.
//
// Agents are returned with their dispatch position resolved: their own base
// location when recorded, otherwise their center's coordinates.
type AgentRepository interface {
	Add(ctx context.Context, aggregate *agent.Agent) error

	// Update persists the active and busy flags.
	Update(ctx context.Context, aggregate *agent.Agent) error

	// Get returns ObjectNotFoundError when the agent does not exist.
	Get(ctx context.Context, id kernel.UUID) (*agent.Agent, error)

	// GetForUpdate is Get with a row lock held until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*agent.Agent, error)

	// GetAvailable returns the active, idle agents of a center without locking
	// them.
	GetAvailable(ctx context.Context, centerID kernel.UUID) ([]*agent.Agent, error)

	// GetIdleForUpdate locks one agent if it is still active and idle. A row
	// held by a concurrent dispatch is skipped rather than waited for, and the
	// call returns ObjectNotFoundError, as it does for a busy or inactive agent.
	GetIdleForUpdate(ctx context.Context, id kernel.UUID) (*agent.Agent, error)
}
