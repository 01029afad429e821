package queries

import (
	"context"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns ObjectNotFoundError both for unknown orders and for orders of
// other customers, so callers cannot discover foreign order ids.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*OrderDetails, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	rows, err := db.Raw(`
		SELECT
			o.id,
			o.status,
			o.payment_method,
			o.total_amount,
			o.center_id,
			o.assigned_agent_id,
			o.scheduled_time,
			o.created_at,
			(SELECT COUNT(*) FROM order_items i WHERE i.order_id = o.id)
		FROM orders o
		WHERE o.id = ? AND o.customer_ref = ?
	`, query.OrderID().Bytes(), query.CustomerRef()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, err
		}
		return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	summary, err := scanSummary(rows)
	if err != nil {
		return nil, err
	}
	_ = rows.Close()

	items, err := h.lines(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	return &OrderDetails{OrderSummary: summary, Items: items}, nil
}

func (h GetOrderQueryHandler) lines(ctx context.Context, orderID kernel.UUID) ([]OrderLine, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT service_id, service_name, quantity, price
		FROM order_items
		WHERE order_id = ?
		ORDER BY service_name, id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]OrderLine, 0)
	for rows.Next() {
		var (
			line      OrderLine
			serviceID uuid.UUID
		)
		if err = rows.Scan(&serviceID, &line.ServiceName, &line.Quantity, &line.Price); err != nil {
			return nil, err
		}
		if line.ServiceID, err = kernel.UUIDFromGoogle(serviceID); err != nil {
			return nil, err
		}
		line.Subtotal = line.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		lines = append(lines, line)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}
