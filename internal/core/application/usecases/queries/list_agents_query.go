package queries

import (
	"errors"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/guard"
)

var ErrListAgentsQueryIsNotConstructed = errors.New(
	"ListAgentsQuery must be created via NewListAgentsQuery constructor",
)

// ListAgentsQuery lists active agents with the center they work from.
type ListAgentsQuery struct {
	guard guard.ConstructorGuard
}

func NewListAgentsQuery() ListAgentsQuery {
	return ListAgentsQuery{guard: guard.NewConstructorGuard()}
}

func (q ListAgentsQuery) Validate() error {
	return q.guard.Validate(ErrListAgentsQueryIsNotConstructed)
}

type AgentView struct {
	ID         kernel.UUID
	Name       string
	Phone      string
	CenterID   kernel.UUID
	CenterName string
	IsBusy     bool
}
