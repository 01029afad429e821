package queries

import (
	"errors"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/guard"
)

var ErrListCentersQueryIsNotConstructed = errors.New(
	"ListCentersQuery must be created via NewListCentersQuery constructor",
)

// ListCentersQuery lists the centers a customer can book from.
type ListCentersQuery struct {
	guard guard.ConstructorGuard
}

func NewListCentersQuery() ListCentersQuery {
	return ListCentersQuery{guard: guard.NewConstructorGuard()}
}

func (q ListCentersQuery) Validate() error {
	return q.guard.Validate(ErrListCentersQueryIsNotConstructed)
}

type CenterView struct {
	ID       kernel.UUID
	Name     string
	Phone    string
	Address  string
	Location kernel.Location
}
