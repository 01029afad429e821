package queries

import (
	"errors"
	"strings"
	"time"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/errs"
	"roadside/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetCustomerOrdersQueryIsNotConstructed = errors.New(
		"GetCustomerOrdersQuery must be created via NewGetCustomerOrdersQuery constructor",
	)
	ErrCustomerRefIsRequired = errs.NewValueIsRequiredError("customerRef")
)

// GetCustomerOrdersQuery lists a customer's orders, newest first.
type GetCustomerOrdersQuery struct {
	customerRef string

	guard guard.ConstructorGuard
}

func NewGetCustomerOrdersQuery(customerRef string) (GetCustomerOrdersQuery, error) {
	customerRef = strings.TrimSpace(customerRef)
	if customerRef == "" {
		return GetCustomerOrdersQuery{}, ErrCustomerRefIsRequired
	}
	return GetCustomerOrdersQuery{
		customerRef: customerRef,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (q GetCustomerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomerOrdersQueryIsNotConstructed)
}

func (q GetCustomerOrdersQuery) CustomerRef() string {
	return q.customerRef
}

// OrderSummary is an order without its lines.
type OrderSummary struct {
	ID              kernel.UUID
	Status          string
	PaymentMethod   string
	TotalAmount     decimal.Decimal
	CenterID        *kernel.UUID
	AssignedAgentID *kernel.UUID
	ScheduledTime   *time.Time
	CreatedAt       time.Time
	ItemCount       int
}
