package commands

import (
	"context"

	"roadside/internal/core/domain/model/agent"
)

// RegisterAgentCommandHandler persists a new agent at an existing center.
//
// Example:
//
//	handler := NewRegisterAgentCommandHandler(uowFactory)
//	cmd, _ := NewRegisterAgentCommand("user-42", "Rahim", "", centerID, nil)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("agent registration failed: %w", err)
//	}
type RegisterAgentCommandHandler struct {
	uowFactory AgentUoWFactory
}

// NewRegisterAgentCommandHandler creates a handler for agent registration.
func NewRegisterAgentCommandHandler(uowFactory AgentUoWFactory) RegisterAgentCommandHandler {
	return RegisterAgentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the center, builds the agent and stores it.
// Returns ObjectNotFoundError when the center does not exist.
func (h *RegisterAgentCommandHandler) Handle(ctx context.Context, cmd RegisterAgentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	c, err := uow.CenterRepository().Get(ctx, cmd.CenterID())
	if err != nil {
		return err
	}

	agentEntity, err := agent.NewAgent(
		cmd.AgentID(), cmd.IdentityRef(), cmd.Name(), cmd.Phone(), c, cmd.BaseLocation(),
	)
	if err != nil {
		return err
	}

	if err = uow.AgentRepository().Add(ctx, agentEntity); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
