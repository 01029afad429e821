package queries

import (
	"context"
	"database/sql"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetCustomerOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetCustomerOrdersQueryHandler(db *gorm.DB) GetCustomerOrdersQueryHandler {
	return GetCustomerOrdersQueryHandler{db: db}
}

func (h GetCustomerOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetCustomerOrdersQuery,
) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
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
		WHERE o.customer_ref = ?
		ORDER BY o.created_at DESC, o.id DESC
	`, query.CustomerRef()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderSummary, 0)
	for rows.Next() {
		summary, scanErr := scanSummary(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		orders = append(orders, summary)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

// scanSummary reads the nine summary columns in the order both order queries
// select them.
func scanSummary(rows *sql.Rows) (OrderSummary, error) {
	var (
		summary           OrderSummary
		id                uuid.UUID
		status            int
		centerID, agentID uuid.NullUUID
		scheduled         sql.NullTime
	)
	if err := rows.Scan(
		&id,
		&status,
		&summary.PaymentMethod,
		&summary.TotalAmount,
		&centerID,
		&agentID,
		&scheduled,
		&summary.CreatedAt,
		&summary.ItemCount,
	); err != nil {
		return OrderSummary{}, err
	}

	var err error
	if summary.ID, err = kernel.UUIDFromGoogle(id); err != nil {
		return OrderSummary{}, err
	}
	if summary.CenterID, err = nullableID(centerID); err != nil {
		return OrderSummary{}, err
	}
	if summary.AssignedAgentID, err = nullableID(agentID); err != nil {
		return OrderSummary{}, err
	}
	summary.Status = order.Status(status).String()
	if scheduled.Valid {
		t := scheduled.Time
		summary.ScheduledTime = &t
	}

	return summary, nil
}

func nullableID(raw uuid.NullUUID) (*kernel.UUID, error) {
	if !raw.Valid {
		return nil, nil
	}
	id, err := kernel.UUIDFromGoogle(raw.UUID)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
