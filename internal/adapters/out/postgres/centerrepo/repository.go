package centerrepo

import (
	"context"
	"errors"

	"roadside/internal/adapters/out/postgres/pgerr"
	"roadside/internal/core/domain/model/center"
	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCenterRepository implements CenterRepository using GORM.
type GormCenterRepository struct {
	db *gorm.DB
}

func NewGormCenterRepository(db *gorm.DB) *GormCenterRepository {
	return &GormCenterRepository{db: db}
}

// Add saves a new center.
func (r *GormCenterRepository) Add(ctx context.Context, aggregate *center.Center) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return pgerr.Wrap("add center", r.db.WithContext(ctx).Create(&dto).Error)
}

// Get retrieves a center by ID.
func (r *GormCenterRepository) Get(ctx context.Context, id kernel.UUID) (*center.Center, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CenterDTO
	if err := r.db.WithContext(ctx).Take(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("center", id.String())
		}
		return nil, pgerr.Wrap("get center", err)
	}

	return toDomain(dto)
}
