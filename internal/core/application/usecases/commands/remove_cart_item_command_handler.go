package commands

import (
	"context"
	"errors"

	"roadside/internal/core/domain/model/cart"
	"roadside/internal/pkg/errs"
)

// RemoveCartItemCommandHandler drops a line from the customer's own cart.
type RemoveCartItemCommandHandler struct {
	uowFactory CartUoWFactory
}

func NewRemoveCartItemCommandHandler(uowFactory CartUoWFactory) RemoveCartItemCommandHandler {
	return RemoveCartItemCommandHandler{uowFactory: uowFactory}
}

// Handle returns the updated cart. A customer without a cart, or a line that
// belongs to someone else's cart, gets ObjectNotFoundError.
func (h *RemoveCartItemCommandHandler) Handle(ctx context.Context, command RemoveCartItemCommand) (*cart.Cart, error) {
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

	cartRepo := uow.CartRepository()
	customerCart, err := cartRepo.GetByCustomerForUpdate(ctx, command.CustomerRef())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, errs.NewObjectNotFoundErrorWithCause("cartItem", command.ItemID(), err)
	}
	if err != nil {
		return nil, err
	}

	if err = customerCart.RemoveItem(command.ItemID()); err != nil {
		return nil, err
	}
	if err = cartRepo.Save(ctx, customerCart); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return customerCart, nil
}
