package commands

import (
	"context"

	"roadside/internal/core/domain/model/order"
)

// CancelOrderCommandHandler cancels a non-terminal order and frees its agent.
// The order keeps its total and agent reference for the audit trail.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{uowFactory: uowFactory}
}

// Handle returns InvalidTransitionError for completed or cancelled orders and
// ObjectNotFoundError for orders the customer does not own.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, command CancelOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := getOwnedOrderForUpdate(ctx, orderRepo, command.OrderID(), command.CustomerRef())
	if err != nil {
		return nil, err
	}

	if err = o.Cancel(); err != nil {
		return nil, err
	}

	if err = releaseAssignedAgent(ctx, uow.AgentRepository(), o); err != nil {
		return nil, err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
