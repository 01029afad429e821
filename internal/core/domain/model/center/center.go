package center

import (
	"errors"
	"strings"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/errs"
	"roadside/internal/pkg/guard"
)

var (
	// ErrNameIsRequired is returned when a center is created without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCenterIsNotConstructed is returned when using a zero-value Center.
	ErrCenterIsNotConstructed = errors.New("Center must be created via NewCenter or RestoreCenter")
)

// Center is a service center: the base every agent belongs to and the scope
// within which orders are dispatched.
//
// Its location never changes once created; orders placed against a center rely
// on it when agents fall back to the center's coordinates.
type Center struct {
	id       kernel.UUID
	name     string
	phone    string
	address  string
	location kernel.Location
	active   bool
	guard    guard.ConstructorGuard
}

// NewCenter creates an active service center.
//
// Parameters:
//   - id: unique identifier
//   - name: display name, required
//   - phone, address: contact details, optional
//   - location: coordinates of the center
//
// Returns:
//   - *Center: the new center
//   - error: joined validation errors
func NewCenter(id kernel.UUID, name, phone, address string, location kernel.Location) (*Center, error) {
	return RestoreCenter(id, name, phone, address, location, true)
}

// RestoreCenter rebuilds a center from storage.
func RestoreCenter(
	id kernel.UUID,
	name, phone, address string,
	location kernel.Location,
	active bool,
) (*Center, error) {
	c := &Center{
		phone:   strings.TrimSpace(phone),
		address: strings.TrimSpace(address),
		active:  active,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setLocation(location),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate reports whether the center was built by a constructor.
func (c *Center) Validate() error {
	if c == nil {
		return ErrCenterIsNotConstructed
	}
	return c.guard.Validate(ErrCenterIsNotConstructed)
}

func (c *Center) ID() kernel.UUID {
	return c.id
}

func (c *Center) Name() string {
	return c.name
}

func (c *Center) Phone() string {
	return c.phone
}

func (c *Center) Address() string {
	return c.address
}

func (c *Center) Location() kernel.Location {
	return c.location
}

func (c *Center) IsActive() bool {
	return c.active
}

// Deactivate stops the center from taking new orders. Existing orders keep
// their reference.
func (c *Center) Deactivate() {
	c.active = false
}

func (c *Center) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Center) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Center) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = location
	return nil
}
