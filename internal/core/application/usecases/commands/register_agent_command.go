package commands

import (
	"errors"
	"strings"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/errs"
	"roadside/internal/pkg/guard"
)

var (
	ErrRegisterAgentCommandIsNotConstructed = errors.New(
		"RegisterAgentCommand must be created via NewRegisterAgentCommand constructor",
	)
	ErrIdentityRefIsRequired = errs.NewValueIsRequiredError("identityRef")
	ErrNameIsRequired        = errs.NewValueIsRequiredError("name")
	ErrCenterIDIsRequired    = errs.NewValueIsRequiredError("centerId")
)

// RegisterAgentCommand represents a request to add a field agent to a center.
//
// Example:
//
//	base := kernel.MustNewLocation(23.81, 90.43)
//	cmd, err := NewRegisterAgentCommand("user-42", "Rahim", "+8801700000000", centerID, &base)
//	if err != nil {
//	    return fmt.Errorf("invalid agent data: %w", err)
//	}
//
//	handler := NewRegisterAgentCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to register agent: %w", err)
//	}
//	fmt.Printf("Registered agent with ID: %s", cmd.AgentID())
type RegisterAgentCommand struct { //nolint:recvcheck //using for validation
	agentID      kernel.UUID
	identityRef  string
	name         string
	phone        string
	centerID     kernel.UUID
	baseLocation *kernel.Location

	guard guard.ConstructorGuard
}

// NewRegisterAgentCommand creates a command to register an agent.
// Generates the agent ID. baseLocation may be nil, in which case the agent is
// dispatched from its center's coordinates.
func NewRegisterAgentCommand(
	identityRef, name, phone, rawCenterID string,
	baseLocation *kernel.Location,
) (RegisterAgentCommand, error) {
	command := RegisterAgentCommand{
		agentID: kernel.NewUUID(),
		phone:   strings.TrimSpace(phone),
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setIdentityRef(identityRef),
		command.setName(name),
		command.setCenterID(rawCenterID),
		command.setBaseLocation(baseLocation),
	); err != nil {
		return RegisterAgentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterAgentCommand) Validate() error {
	return c.guard.Validate(ErrRegisterAgentCommandIsNotConstructed)
}

// AgentID returns the id the agent will be stored under.
func (c RegisterAgentCommand) AgentID() kernel.UUID {
	return c.agentID
}

func (c RegisterAgentCommand) IdentityRef() string {
	return c.identityRef
}

func (c RegisterAgentCommand) Name() string {
	return c.name
}

func (c RegisterAgentCommand) Phone() string {
	return c.phone
}

func (c RegisterAgentCommand) CenterID() kernel.UUID {
	return c.centerID
}

func (c RegisterAgentCommand) BaseLocation() *kernel.Location {
	return c.baseLocation
}

func (c *RegisterAgentCommand) setIdentityRef(ref string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ErrIdentityRefIsRequired
	}
	c.identityRef = ref
	return nil
}

func (c *RegisterAgentCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *RegisterAgentCommand) setCenterID(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ErrCenterIDIsRequired
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("centerId", err)
	}
	c.centerID = id
	return nil
}

func (c *RegisterAgentCommand) setBaseLocation(location *kernel.Location) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}
	loc := *location
	c.baseLocation = &loc
	return nil
}
