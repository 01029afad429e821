package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"roadside/internal/core/domain/model/agent"
	"roadside/internal/core/domain/model/cart"
	"roadside/internal/core/domain/model/catalog"
	"roadside/internal/core/domain/model/center"
	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/core/domain/model/order"
	"roadside/internal/core/domain/services"
	"roadside/internal/core/ports"
	"roadside/internal/pkg/errs"
)

var (
	// ErrCartIsEmpty is returned when the customer has nothing to check out.
	ErrCartIsEmpty = errs.NewValueIsRequiredErrorWithCause("cart", errors.New("cart is empty"))
)

// CheckoutResult is the persisted order together with what dispatch did.
type CheckoutResult struct {
	Order    *order.Order
	Dispatch services.AssignmentResult
}

// CheckoutCommandHandler converts a cart into an order in one transaction:
//  1. lock the customer's cart
//  2. price every line from the current catalog (the price snapshot)
//  3. create the order and its items
//  4. rank the center's idle agents and lock the nearest one still free
//  5. clear the cart
//
// A failure anywhere rolls everything back, so the cart is only cleared when the
// order exists. Dispatch outcomes other than success are not failures.
type CheckoutCommandHandler struct {
	uowFactory CheckoutUoWFactory
	dispatcher services.OrderDispatcher
	logger     *slog.Logger
}

// NewCheckoutCommandHandler creates a handler for checkout.
func NewCheckoutCommandHandler(uowFactory CheckoutUoWFactory, logger *slog.Logger) CheckoutCommandHandler {
	return CheckoutCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewOrderDispatcher(),
		logger:     logger.With("component", "checkout"),
	}
}

// Handle runs the checkout.
//
// Returns:
//   - CheckoutResult: the order and the dispatch outcome
//   - error: ErrCartIsEmpty, a validation error for unavailable services, or a
//     TransactionFailedError from storage
func (h *CheckoutCommandHandler) Handle(ctx context.Context, command CheckoutCommand) (CheckoutResult, error) {
	if err := command.Validate(); err != nil {
		return CheckoutResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CheckoutResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()
	catalogRepo := uow.CatalogRepository()
	centerRepo := uow.CenterRepository()
	agentRepo := uow.AgentRepository()
	orderRepo := uow.OrderRepository()

	customerCart, err := cartRepo.GetByCustomerForUpdate(ctx, command.CustomerRef())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return CheckoutResult{}, ErrCartIsEmpty
	}
	if err != nil {
		return CheckoutResult{}, err
	}
	if customerCart.IsEmpty() {
		return CheckoutResult{}, ErrCartIsEmpty
	}

	items, err := snapshotItems(ctx, catalogRepo, customerCart.Items())
	if err != nil {
		return CheckoutResult{}, err
	}

	serviceCenter, err := h.findCenter(ctx, centerRepo, command.CenterID())
	if err != nil {
		return CheckoutResult{}, err
	}
	var centerID *kernel.UUID
	if serviceCenter != nil {
		id := serviceCenter.ID()
		centerID = &id
	}

	newOrder, err := order.NewOrder(
		command.OrderID(),
		command.CustomerRef(),
		centerID,
		command.PaymentMethod(),
		items,
		command.ScheduledTime(),
	)
	if err != nil {
		return CheckoutResult{}, err
	}

	if err = orderRepo.Add(ctx, newOrder); err != nil {
		return CheckoutResult{}, err
	}

	dispatch, err := h.dispatch(ctx, agentRepo, newOrder, serviceCenter, command.Pickup())
	if err != nil {
		return CheckoutResult{}, err
	}

	if dispatch.Outcome == services.Assigned {
		if err = agentRepo.Update(ctx, dispatch.Agent); err != nil {
			return CheckoutResult{}, err
		}
		if err = orderRepo.Update(ctx, newOrder); err != nil {
			return CheckoutResult{}, err
		}
	}

	customerCart.Clear()
	if err = cartRepo.Save(ctx, customerCart); err != nil {
		return CheckoutResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CheckoutResult{}, err
	}

	h.logDispatch(ctx, command, newOrder, dispatch)

	return CheckoutResult{Order: newOrder, Dispatch: dispatch}, nil
}

func (h *CheckoutCommandHandler) findCenter(
	ctx context.Context,
	repo ports.CenterRepository,
	id *kernel.UUID,
) (*center.Center, error) {
	if id == nil {
		return nil, nil
	}
	c, err := repo.Get(ctx, *id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		h.logger.InfoContext(ctx, "checkout center not found, order will have no center",
			"center_id", id.String())
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !c.IsActive() {
		h.logger.InfoContext(ctx, "checkout center is inactive, order will have no center",
			"center_id", id.String())
		return nil, nil
	}
	return c, nil
}

// dispatch reads the idle agents of c without locks, then walks them nearest
// first and locks the first one no concurrent checkout holds. Only the chosen
// row stays locked until commit, so parallel checkouts share the pool.
func (h *CheckoutCommandHandler) dispatch(
	ctx context.Context,
	repo ports.AgentRepository,
	o *order.Order,
	c *center.Center,
	pickup *kernel.Location,
) (services.AssignmentResult, error) {
	var pool []*agent.Agent
	if c != nil && pickup != nil {
		candidates, err := repo.GetAvailable(ctx, c.ID())
		if err != nil {
			return services.AssignmentResult{}, err
		}

		for _, candidate := range h.dispatcher.Rank(c, *pickup, candidates) {
			locked, lockErr := repo.GetIdleForUpdate(ctx, candidate.ID())
			if errors.Is(lockErr, errs.ErrObjectNotFound) {
				continue
			}
			if lockErr != nil {
				return services.AssignmentResult{}, lockErr
			}
			pool = append(pool, locked)
			break
		}
	}

	return h.dispatcher.Assign(o, c, pickup, pool)
}

func (h *CheckoutCommandHandler) logDispatch(
	ctx context.Context,
	command CheckoutCommand,
	o *order.Order,
	dispatch services.AssignmentResult,
) {
	attrs := []any{
		"order_id", o.ID().String(),
		"status", o.Status().String(),
		"outcome", dispatch.Outcome.String(),
	}

	switch dispatch.Outcome {
	case services.Assigned:
		attrs = append(attrs, "agent_id", dispatch.Agent.ID().String(), "distance_km", dispatch.DistanceKm)
	case services.Skipped:
		if command.PickupError() != nil {
			attrs = append(attrs, "reason", command.PickupError().Error())
		}
	case services.NoneAvailable:
	}

	h.logger.InfoContext(ctx, "order dispatched", attrs...)
}

// snapshotItems prices each cart line with the service's current base price.
// The returned items are the only place that price is ever read from.
func snapshotItems(ctx context.Context, repo ports.CatalogRepository, lines []*cart.Item) ([]*order.Item, error) {
	ids := make([]kernel.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ServiceID())
	}

	found, err := repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[kernel.UUID]*catalog.Service, len(found))
	for _, s := range found {
		byID[s.ID()] = s
	}

	items := make([]*order.Item, 0, len(lines))
	for _, line := range lines {
		s, ok := byID[line.ServiceID()]
		if !ok || !s.IsActive() {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"serviceId", fmt.Errorf("service %s is not available", line.ServiceID()))
		}

		item, itemErr := order.NewItem(kernel.NewUUID(), s.ID(), s.Name(), line.Quantity(), s.BasePrice())
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return items, nil
}
