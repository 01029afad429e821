package cartrepo

import (
	"context"
	"errors"

	"roadside/internal/adapters/out/postgres/pgerr"
	"roadside/internal/core/domain/model/cart"
	"roadside/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCartRepository implements CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// Save inserts the cart row when missing and rewrites its lines. Two first
// carts for the same customer collide on customer_ref; the loser gets a
// retryable TransactionFailedError.
func (r *GormCartRepository) Save(ctx context.Context, aggregate *cart.Cart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	header := CartDTO{ID: dto.ID, CustomerRef: dto.CustomerRef}
	if err := db.Omit(clause.Associations).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&header).Error; err != nil {
		return pgerr.Wrap("save cart", err)
	}

	if err := db.Where("cart_id = ?", dto.ID).Delete(&CartItemDTO{}).Error; err != nil {
		return pgerr.Wrap("clear cart items", err)
	}

	if len(dto.Items) == 0 {
		return nil
	}
	if err := db.Create(&dto.Items).Error; err != nil {
		return pgerr.Wrap("save cart items", err)
	}

	return nil
}

// GetByCustomerForUpdate locks the customer's cart row.
func (r *GormCartRepository) GetByCustomerForUpdate(ctx context.Context, customerRef string) (*cart.Cart, error) {
	var dto CartDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Items").
		Take(&dto, "customer_ref = ?", customerRef).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cart", customerRef)
		}
		return nil, pgerr.Wrap("get cart", err)
	}

	return toDomain(dto)
}
