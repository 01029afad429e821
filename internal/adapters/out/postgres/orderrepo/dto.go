// Package orderrepo maps order aggregates to the orders and order_items tables.
// Items are written once on Add; later saves touch only the order row.
package orderrepo

import (
	"time"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is a row of orders. The composite index serves both the
// latest-order lookup and the pending expiry sweep.
type OrderDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerRef     string          `gorm:"not null;index:idx_orders_customer_created,priority:1"`
	CenterID        *uuid.UUID      `gorm:"type:uuid;index"`
	AssignedAgentID *uuid.UUID      `gorm:"type:uuid;index"`
	PaymentMethod   string          `gorm:"type:varchar(16);not null"`
	Status          int             `gorm:"not null;index:idx_orders_status_created,priority:1"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	ScheduledTime   *time.Time
	CreatedAt       time.Time      `gorm:"not null;index:idx_orders_customer_created,priority:2;index:idx_orders_status_created,priority:2"`
	Items           []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is an order line with its snapshot price.
type OrderItemDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ServiceID   uuid.UUID       `gorm:"type:uuid;not null"`
	ServiceName string          `gorm:"not null"`
	Quantity    int             `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItemDTO{
			ID:          item.ID().Bytes(),
			OrderID:     o.ID().Bytes(),
			ServiceID:   item.ServiceID().Bytes(),
			ServiceName: item.ServiceName(),
			Quantity:    item.Quantity(),
			Price:       item.Price(),
		})
	}

	return OrderDTO{
		ID:              o.ID().Bytes(),
		CustomerRef:     o.CustomerRef(),
		CenterID:        toRaw(o.CenterID()),
		AssignedAgentID: toRaw(o.AssignedAgentID()),
		PaymentMethod:   o.PaymentMethod().String(),
		Status:          int(o.Status()),
		TotalAmount:     o.TotalAmount(),
		ScheduledTime:   o.ScheduledTime(),
		CreatedAt:       o.CreatedAt(),
		Items:           items,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	centerID, err := fromRaw(dto.CenterID)
	if err != nil {
		return nil, err
	}
	agentID, err := fromRaw(dto.AssignedAgentID)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, idErr := kernel.UUIDFromGoogle(itemDTO.ID)
		if idErr != nil {
			return nil, idErr
		}
		serviceID, idErr := kernel.UUIDFromGoogle(itemDTO.ServiceID)
		if idErr != nil {
			return nil, idErr
		}
		item, itemErr := order.NewItem(itemID, serviceID, itemDTO.ServiceName, itemDTO.Quantity, itemDTO.Price)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		dto.CustomerRef,
		centerID,
		agentID,
		order.PaymentMethod(dto.PaymentMethod),
		order.Status(dto.Status),
		dto.TotalAmount,
		items,
		dto.ScheduledTime,
		dto.CreatedAt,
	)
}

func toRaw(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func fromRaw(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromGoogle(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
