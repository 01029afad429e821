package catalog

import (
	"errors"
	"strings"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/errs"
	"roadside/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// PriceScale is the number of decimal places kept for prices.
const PriceScale = 2

var (
	// ErrNameIsRequired is returned when a service has no name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrServiceIsNotConstructed is returned when using a zero-value Service.
	ErrServiceIsNotConstructed = errors.New("Service must be created via NewService or RestoreService")
)

// Service is a bookable catalog entry such as "Flat Tyre Fix".
//
// Its base price is the live price; orders copy it at checkout and never read it
// again, so changing it leaves existing orders untouched.
type Service struct {
	id          kernel.UUID
	name        string
	description string
	category    string
	basePrice   decimal.Decimal
	active      bool
	guard       guard.ConstructorGuard
}

// NewService creates an active catalog entry.
//
// Returns:
//   - *Service: the new service
//   - error: joined validation errors; the base price must not be negative
func NewService(id kernel.UUID, name, description, category string, basePrice decimal.Decimal) (*Service, error) {
	return RestoreService(id, name, description, category, basePrice, true)
}

// RestoreService rebuilds a service from storage.
func RestoreService(
	id kernel.UUID,
	name, description, category string,
	basePrice decimal.Decimal,
	active bool,
) (*Service, error) {
	s := &Service{
		description: strings.TrimSpace(description),
		category:    strings.TrimSpace(category),
		active:      active,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setName(name),
		s.SetBasePrice(basePrice),
	); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Service) Validate() error {
	if s == nil {
		return ErrServiceIsNotConstructed
	}
	return s.guard.Validate(ErrServiceIsNotConstructed)
}

func (s *Service) ID() kernel.UUID {
	return s.id
}

func (s *Service) Name() string {
	return s.name
}

func (s *Service) Description() string {
	return s.description
}

func (s *Service) Category() string {
	return s.category
}

// BasePrice returns the current catalog price.
func (s *Service) BasePrice() decimal.Decimal {
	return s.basePrice
}

func (s *Service) IsActive() bool {
	return s.active
}

// SetBasePrice changes the live price, rounded to PriceScale places.
func (s *Service) SetBasePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsOutOfRangeError("basePrice", price, 0, "unbounded")
	}
	s.basePrice = price.Round(PriceScale)
	return nil
}

// Deactivate withdraws the service from sale.
func (s *Service) Deactivate() {
	s.active = false
}

func (s *Service) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Service) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	s.name = name
	return nil
}
