package agent

import (
	"errors"
	"strings"

	"roadside/internal/core/domain/model/center"
	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/errs"
	"roadside/internal/pkg/guard"
)

var (
	// ErrIdentityRefIsRequired is returned when an agent has no identity reference.
	ErrIdentityRefIsRequired = errs.NewValueIsRequiredError("identityRef")
	// ErrNameIsRequired is returned when an agent has no display name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrAgentIsNotConstructed is returned when using a zero-value Agent.
	ErrAgentIsNotConstructed = errors.New("Agent must be created via NewAgent or RestoreAgent")
)

// Agent is a field agent bound to exactly one service center.
//
// An agent takes at most one in-flight order at a time: Reserve marks it busy and
// Release frees it again once the order completes or is cancelled. Only active,
// non-busy agents are offered to dispatch.
//
// An agent's dispatch position is its own base location when one is recorded,
// otherwise the coordinates of its center.
type Agent struct {
	id           kernel.UUID
	identityRef  string
	name         string
	phone        string
	centerID     kernel.UUID
	baseLocation *kernel.Location
	location     kernel.Location
	active       bool
	busy         bool
	guard        guard.ConstructorGuard
}

// NewAgent registers an active, idle agent at the given center.
//
// Parameters:
//   - id: unique identifier
//   - identityRef: reference to the agent's user account in the identity service
//   - name: display name
//   - phone: contact number, optional
//   - c: the center the agent works from
//   - baseLocation: optional own base; nil means the center's coordinates
//
// Returns:
//   - *Agent: the new agent
//   - error: joined validation errors
func NewAgent(
	id kernel.UUID,
	identityRef, name, phone string,
	c *center.Center,
	baseLocation *kernel.Location,
) (*Agent, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return RestoreAgent(id, identityRef, name, phone, c.ID(), baseLocation, c.Location(), true, false)
}

// RestoreAgent rebuilds an agent from storage. centerLocation is used as the
// dispatch position when baseLocation is nil.
func RestoreAgent(
	id kernel.UUID,
	identityRef, name, phone string,
	centerID kernel.UUID,
	baseLocation *kernel.Location,
	centerLocation kernel.Location,
	active, busy bool,
) (*Agent, error) {
	a := &Agent{
		phone:  strings.TrimSpace(phone),
		active: active,
		busy:   busy,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setIdentityRef(identityRef),
		a.setName(name),
		a.setCenterID(centerID),
		a.setLocation(baseLocation, centerLocation),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// Validate reports whether the agent was built by a constructor.
func (a *Agent) Validate() error {
	if a == nil {
		return ErrAgentIsNotConstructed
	}
	return a.guard.Validate(ErrAgentIsNotConstructed)
}

// IsEqual compares agents by identity.
func (a *Agent) IsEqual(other *Agent) bool {
	return other != nil && a.id.IsEqual(other.id)
}

func (a *Agent) ID() kernel.UUID {
	return a.id
}

func (a *Agent) IdentityRef() string {
	return a.identityRef
}

func (a *Agent) Name() string {
	return a.name
}

func (a *Agent) Phone() string {
	return a.phone
}

func (a *Agent) CenterID() kernel.UUID {
	return a.centerID
}

// BaseLocation returns the agent's own base, or nil when it works from the
// center's coordinates.
func (a *Agent) BaseLocation() *kernel.Location {
	if a.baseLocation == nil {
		return nil
	}
	loc := *a.baseLocation
	return &loc
}

// Location returns the position used for distance ranking.
func (a *Agent) Location() kernel.Location {
	return a.location
}

func (a *Agent) IsActive() bool {
	return a.active
}

func (a *Agent) IsBusy() bool {
	return a.busy
}

// BelongsTo reports whether the agent works for the given center.
func (a *Agent) BelongsTo(centerID kernel.UUID) bool {
	return a.centerID.IsEqual(centerID)
}

// IsAvailable reports whether the agent may be offered a new order.
func (a *Agent) IsAvailable() bool {
	return a.active && !a.busy
}

// Reserve takes the agent's single order slot.
//
// Returns:
//   - error: InvalidTransitionError when the agent is inactive or already busy
func (a *Agent) Reserve() error {
	if !a.active {
		return errs.NewInvalidTransitionError("agent", "inactive", "reserve")
	}
	if a.busy {
		return errs.NewInvalidTransitionError("agent", "busy", "reserve")
	}
	a.busy = true
	return nil
}

// Release frees the agent's order slot. Releasing an idle agent is a no-op so
// that cancellation and expiry can both call it safely.
func (a *Agent) Release() {
	a.busy = false
}

// Deactivate removes the agent from dispatch. A current order is not affected.
func (a *Agent) Deactivate() {
	a.active = false
}

// Activate puts the agent back into dispatch.
func (a *Agent) Activate() {
	a.active = true
}

func (a *Agent) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Agent) setIdentityRef(ref string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ErrIdentityRefIsRequired
	}
	a.identityRef = ref
	return nil
}

func (a *Agent) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	a.name = name
	return nil
}

func (a *Agent) setCenterID(centerID kernel.UUID) error {
	if err := centerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("centerId", err)
	}
	a.centerID = centerID
	return nil
}

func (a *Agent) setLocation(base *kernel.Location, centerLocation kernel.Location) error {
	if base != nil {
		if err := base.Validate(); err != nil {
			return err
		}
		loc := *base
		a.baseLocation = &loc
		a.location = loc
		return nil
	}
	if err := centerLocation.Validate(); err != nil {
		return err
	}
	a.location = centerLocation
	return nil
}
