// Package cartrepo persists customer carts. A customer has at most one cart,
// enforced by a unique customer_ref.
package cartrepo

import (
	"roadside/internal/core/domain/model/cart"
	"roadside/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type CartDTO struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey"`
	CustomerRef string        `gorm:"not null;uniqueIndex"`
	Items       []CartItemDTO `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

func (CartDTO) TableName() string {
	return "carts"
}

type CartItemDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CartID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ServiceID uuid.UUID `gorm:"type:uuid;not null"`
	Quantity  int       `gorm:"not null"`
}

func (CartItemDTO) TableName() string {
	return "cart_items"
}

func fromDomain(c *cart.Cart) CartDTO {
	items := make([]CartItemDTO, 0, len(c.Items()))
	for _, item := range c.Items() {
		items = append(items, CartItemDTO{
			ID:        item.ID().Bytes(),
			CartID:    c.ID().Bytes(),
			ServiceID: item.ServiceID().Bytes(),
			Quantity:  item.Quantity(),
		})
	}

	return CartDTO{
		ID:          c.ID().Bytes(),
		CustomerRef: c.CustomerRef(),
		Items:       items,
	}
}

func toDomain(dto CartDTO) (*cart.Cart, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	items := make([]*cart.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, idErr := kernel.UUIDFromGoogle(itemDTO.ID)
		if idErr != nil {
			return nil, idErr
		}
		serviceID, idErr := kernel.UUIDFromGoogle(itemDTO.ServiceID)
		if idErr != nil {
			return nil, idErr
		}
		item, itemErr := cart.NewItem(itemID, serviceID, itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return cart.RestoreCart(id, dto.CustomerRef, items)
}
