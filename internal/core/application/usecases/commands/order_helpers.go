package commands

import (
	"context"
	"errors"
	"strings"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/core/domain/model/order"
	"roadside/internal/core/ports"
	"roadside/internal/pkg/errs"
)

var ErrOrderIDIsInvalid = errs.NewValueIsInvalidError("orderId")

// parseOrderID accepts an empty string as "no order targeted".
func parseOrderID(raw string) (*kernel.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return nil, ErrOrderIDIsInvalid
	}
	return &id, nil
}

// getOwnedOrderForUpdate locks the order and hides orders of other customers
// behind a not-found error.
func getOwnedOrderForUpdate(
	ctx context.Context,
	repo ports.OrderRepository,
	id kernel.UUID,
	customerRef string,
) (*order.Order, error) {
	o, err := repo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if customerRef != "" && o.CustomerRef() != customerRef {
		return nil, errs.NewObjectNotFoundError("orderId", id.String())
	}
	return o, nil
}

// releaseAssignedAgent frees the agent bound to o, if any. An agent that no
// longer exists has nothing to release.
func releaseAssignedAgent(ctx context.Context, repo ports.AgentRepository, o *order.Order) error {
	agentID := o.AssignedAgentID()
	if agentID == nil {
		return nil
	}

	a, err := repo.GetForUpdate(ctx, *agentID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	a.Release()
	return repo.Update(ctx, a)
}
