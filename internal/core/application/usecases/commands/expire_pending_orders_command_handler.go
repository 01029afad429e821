package commands

import (
	"context"
	"time"

	"roadside/internal/core/domain/model/order"
)

// ExpirePendingOrdersCommandHandler cancels stale pending online orders in
// batches and releases any agent they hold.
type ExpirePendingOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

func NewExpirePendingOrdersCommandHandler(uowFactory OrderUoWFactory) ExpirePendingOrdersCommandHandler {
	return ExpirePendingOrdersCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle returns the number of orders cancelled.
func (h *ExpirePendingOrdersCommandHandler) Handle(ctx context.Context, command ExpirePendingOrdersCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	agentRepo := uow.AgentRepository()

	cutoff := h.now().UTC().Add(-command.TTL())
	stale, err := orderRepo.GetStalePendingForUpdate(ctx, order.Online, cutoff, command.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(stale) == 0 {
		return 0, nil
	}

	for _, o := range stale {
		if err = o.Cancel(); err != nil {
			return 0, err
		}
		if err = releaseAssignedAgent(ctx, agentRepo, o); err != nil {
			return 0, err
		}
		if err = orderRepo.Update(ctx, o); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(stale), nil
}
