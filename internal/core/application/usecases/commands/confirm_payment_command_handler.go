package commands

import (
	"context"
	"errors"

	"roadside/internal/core/domain/model/order"
	"roadside/internal/core/ports"
	"roadside/internal/pkg/errs"
)

// ConfirmPaymentResult reports the confirmed order and whether this call
// changed it. Changed is false for a repeated confirmation.
type ConfirmPaymentResult struct {
	Order   *order.Order
	Changed bool
}

// ConfirmPaymentCommandHandler applies the payment-success callback.
//
// The callback may be delivered more than once. A second delivery finds the
// order already confirmed and succeeds without touching anything, so the
// caller cannot tell the two apart.
//
// Example:
//
//	handler := NewConfirmPaymentCommandHandler(uowFactory)
//	cmd, _ := NewConfirmPaymentCommand("customer-1", "")
//	result, err := handler.Handle(ctx, cmd)
//	// result.Order.Status() == order.Confirmed
type ConfirmPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewConfirmPaymentCommandHandler(uowFactory OrderUoWFactory) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{uowFactory: uowFactory}
}

// Handle confirms the targeted order and clears the customer's cart when the
// order actually moved to confirmed.
//
// Returns:
//   - ObjectNotFoundError when the customer has no order at all
//   - InvalidTransitionError when the targeted order is neither pending nor confirmed
func (h *ConfirmPaymentCommandHandler) Handle(
	ctx context.Context,
	command ConfirmPaymentCommand,
) (ConfirmPaymentResult, error) {
	if err := command.Validate(); err != nil {
		return ConfirmPaymentResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ConfirmPaymentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	target, err := h.findTarget(ctx, orderRepo, command)
	if err != nil {
		return ConfirmPaymentResult{}, err
	}

	changed, err := target.ConfirmPayment()
	if err != nil {
		return ConfirmPaymentResult{}, err
	}
	if !changed {
		return ConfirmPaymentResult{Order: target}, nil
	}

	if err = orderRepo.Update(ctx, target); err != nil {
		return ConfirmPaymentResult{}, err
	}
	if err = clearCart(ctx, uow.CartRepository(), command.CustomerRef()); err != nil {
		return ConfirmPaymentResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ConfirmPaymentResult{}, err
	}

	return ConfirmPaymentResult{Order: target, Changed: true}, nil
}

// findTarget picks the explicit order when given, else the latest pending
// order, else the latest online order of any status. Cash orders never take
// part in payment, so a newer cash order cannot absorb a repeated callback.
func (h *ConfirmPaymentCommandHandler) findTarget(
	ctx context.Context,
	repo ports.OrderRepository,
	command ConfirmPaymentCommand,
) (*order.Order, error) {
	if command.OrderID() != nil {
		return getOwnedOrderForUpdate(ctx, repo, *command.OrderID(), command.CustomerRef())
	}

	target, err := repo.GetLatestForCustomerForUpdate(ctx, command.CustomerRef(), order.Pending)
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return target, err
	}
	return repo.GetLatestByMethodForUpdate(ctx, command.CustomerRef(), order.Online)
}

func clearCart(ctx context.Context, repo ports.CartRepository, customerRef string) error {
	c, err := repo.GetByCustomerForUpdate(ctx, customerRef)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if c.IsEmpty() {
		return nil
	}

	c.Clear()
	return repo.Save(ctx, c)
}
