package commands

import (
	"context"
	"errors"
	"fmt"

	"roadside/internal/core/domain/model/cart"
	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/errs"
)

// AddCartItemCommandHandler adds a service to the customer's cart. The first
// item creates the cart, so every customer ends up with exactly one.
type AddCartItemCommandHandler struct {
	uowFactory CartUoWFactory
}

func NewAddCartItemCommandHandler(uowFactory CartUoWFactory) AddCartItemCommandHandler {
	return AddCartItemCommandHandler{uowFactory: uowFactory}
}

// Handle returns the updated cart. Inactive services are rejected with a
// ValueIsInvalidError; unknown ones with ObjectNotFoundError.
func (h *AddCartItemCommandHandler) Handle(ctx context.Context, command AddCartItemCommand) (*cart.Cart, error) {
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

	service, err := uow.CatalogRepository().Get(ctx, command.ServiceID())
	if err != nil {
		return nil, err
	}
	if !service.IsActive() {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"serviceId", fmt.Errorf("service %s is not available", service.ID()))
	}

	cartRepo := uow.CartRepository()
	customerCart, err := cartRepo.GetByCustomerForUpdate(ctx, command.CustomerRef())
	if errors.Is(err, errs.ErrObjectNotFound) {
		customerCart, err = cart.NewCart(kernel.NewUUID(), command.CustomerRef())
	}
	if err != nil {
		return nil, err
	}

	if err = customerCart.AddItem(command.ServiceID(), command.Quantity()); err != nil {
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
