package catalogrepo

import (
	"context"
	"errors"

	"roadside/internal/adapters/out/postgres/pgerr"
	"roadside/internal/core/domain/model/catalog"
	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCatalogRepository implements CatalogRepository using GORM.
type GormCatalogRepository struct {
	db *gorm.DB
}

func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

func (r *GormCatalogRepository) Add(ctx context.Context, service *catalog.Service) error {
	if err := service.Validate(); err != nil {
		return err
	}

	dto := fromDomain(service)
	return pgerr.Wrap("add service", r.db.WithContext(ctx).Create(&dto).Error)
}

// Update writes price and availability. Existing orders are unaffected since
// they carry their own price snapshot.
func (r *GormCatalogRepository) Update(ctx context.Context, service *catalog.Service) error {
	if err := service.Validate(); err != nil {
		return err
	}

	dto := fromDomain(service)
	result := r.db.WithContext(ctx).Model(&ServiceDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"name":        dto.Name,
		"description": dto.Description,
		"category":    dto.Category,
		"base_price":  dto.BasePrice,
		"is_active":   dto.IsActive,
	})
	if result.Error != nil {
		return pgerr.Wrap("update service", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("service", service.ID().String())
	}

	return nil
}

func (r *GormCatalogRepository) Get(ctx context.Context, id kernel.UUID) (*catalog.Service, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ServiceDTO
	if err := r.db.WithContext(ctx).Take(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("service", id.String())
		}
		return nil, pgerr.Wrap("get service", err)
	}

	return toDomain(dto)
}

func (r *GormCatalogRepository) GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*catalog.Service, error) {
	if len(ids) == 0 {
		return []*catalog.Service{}, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	var dtos []ServiceDTO
	if err := r.db.WithContext(ctx).Where("id IN ?", raw).Find(&dtos).Error; err != nil {
		return nil, pgerr.Wrap("get services", err)
	}

	services := make([]*catalog.Service, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		services = append(services, s)
	}

	return services, nil
}
