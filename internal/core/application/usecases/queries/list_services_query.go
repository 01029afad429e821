package queries

import (
	"errors"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrListServicesQueryIsNotConstructed = errors.New(
	"ListServicesQuery must be created via NewListServicesQuery constructor",
)

// ListServicesQuery lists the bookable catalog.
type ListServicesQuery struct {
	guard guard.ConstructorGuard
}

func NewListServicesQuery() ListServicesQuery {
	return ListServicesQuery{guard: guard.NewConstructorGuard()}
}

func (q ListServicesQuery) Validate() error {
	return q.guard.Validate(ErrListServicesQueryIsNotConstructed)
}

// ServiceView is a catalog service as customers browse it.
type ServiceView struct {
	ID          kernel.UUID
	Name        string
	Description string
	Category    string
	BasePrice   decimal.Decimal
}
