package queries

import (
	"context"

	"roadside/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetCartQueryHandler struct {
	db *gorm.DB
}

func NewGetCartQueryHandler(db *gorm.DB) GetCartQueryHandler {
	return GetCartQueryHandler{db: db}
}

// Handle never creates a cart: a customer without one gets an empty view.
// Prices are read live, so they can differ from what checkout later freezes
// if the catalog changes in between.
func (h GetCartQueryHandler) Handle(ctx context.Context, query GetCartQuery) (*CartView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			c.id,
			i.id,
			i.service_id,
			s.name,
			i.quantity,
			s.base_price
		FROM carts c
		LEFT JOIN cart_items i ON i.cart_id = c.id
		LEFT JOIN services s ON s.id = i.service_id
		WHERE c.customer_ref = ?
		ORDER BY s.name, i.id
	`, query.CustomerRef()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	view := &CartView{Items: make([]CartLine, 0), TotalAmount: decimal.Zero}
	for rows.Next() {
		var (
			cartID            uuid.UUID
			itemID, serviceID uuid.NullUUID
			name              *string
			quantity          *int
			price             decimal.NullDecimal
		)
		if err = rows.Scan(&cartID, &itemID, &serviceID, &name, &quantity, &price); err != nil {
			return nil, err
		}

		if view.ID == nil {
			id, idErr := kernel.UUIDFromGoogle(cartID)
			if idErr != nil {
				return nil, idErr
			}
			view.ID = &id
		}
		// An empty cart comes back as one row with no item columns.
		if !itemID.Valid {
			continue
		}

		line, lineErr := cartLine(itemID.UUID, serviceID.UUID, name, quantity, price)
		if lineErr != nil {
			return nil, lineErr
		}
		view.Items = append(view.Items, line)
		view.TotalAmount = view.TotalAmount.Add(line.Subtotal)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return view, nil
}

func cartLine(itemID, serviceID uuid.UUID, name *string, quantity *int, price decimal.NullDecimal) (CartLine, error) {
	var (
		line CartLine
		err  error
	)
	if line.ID, err = kernel.UUIDFromGoogle(itemID); err != nil {
		return CartLine{}, err
	}
	if line.ServiceID, err = kernel.UUIDFromGoogle(serviceID); err != nil {
		return CartLine{}, err
	}
	if name != nil {
		line.ServiceName = *name
	}
	if quantity != nil {
		line.Quantity = *quantity
	}
	line.Price = price.Decimal
	line.Subtotal = line.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
	return line, nil
}
