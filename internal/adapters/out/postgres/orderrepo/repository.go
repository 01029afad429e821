package orderrepo

import (
	"context"
	"errors"
	"time"

	"roadside/internal/adapters/out/postgres/pgerr"
	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/core/domain/model/order"
	"roadside/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker receives every order written through the repository so the
// unit of work can move its domain events to the outbox on commit.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order together with its items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Wrap("add order", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the status and the assigned agent. A nil agent is written as
// NULL, which is why a map is used instead of a struct.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":            dto.Status,
			"assigned_agent_id": dto.AssignedAgentID,
		})
	if result.Error != nil {
		return pgerr.Wrap("update order", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.getOne(ctx, id, false)
}

// GetForUpdate retrieves an order by ID and locks its row.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.getOne(ctx, id, true)
}

func (r *GormOrderRepository) GetLatestForCustomerForUpdate(
	ctx context.Context, customerRef string, statuses ...order.Status,
) (*order.Order, error) {
	query := r.db.WithContext(ctx).Where("customer_ref = ?", customerRef)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statusValues(statuses))
	}

	return r.takeLatestForUpdate(query, customerRef)
}

func (r *GormOrderRepository) GetLatestByMethodForUpdate(
	ctx context.Context, customerRef string, method order.PaymentMethod,
) (*order.Order, error) {
	query := r.db.WithContext(ctx).
		Where("customer_ref = ? AND payment_method = ?", customerRef, method.String())

	return r.takeLatestForUpdate(query, customerRef)
}

func (r *GormOrderRepository) takeLatestForUpdate(query *gorm.DB, customerRef string) (*order.Order, error) {
	var dto OrderDTO
	err := query.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Items").
		Order("created_at DESC, id DESC").
		Take(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", customerRef)
		}
		return nil, pgerr.Wrap("get latest order", err)
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) GetStalePendingForUpdate(
	ctx context.Context, method order.PaymentMethod, cutoff time.Time, limit int,
) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Preload("Items").
		Where("status = ? AND payment_method = ? AND created_at < ?", int(order.Pending), method.String(), cutoff).
		Order("created_at ASC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, pgerr.Wrap("get stale orders", err)
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func (r *GormOrderRepository) getOne(ctx context.Context, id kernel.UUID, lock bool) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Preload("Items")
	if lock {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto OrderDTO
	if err := query.Take(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, pgerr.Wrap("get order", err)
	}

	return toDomain(dto)
}

func statusValues(statuses []order.Status) []int {
	values := make([]int, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, int(s))
	}
	return values
}
