// Package catalogrepo persists catalog services.
package catalogrepo

import (
	"roadside/internal/core/domain/model/catalog"
	"roadside/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ServiceDTO is a row of services.
type ServiceDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"not null"`
	Description string
	Category    string          `gorm:"index"`
	BasePrice   decimal.Decimal `gorm:"type:numeric(8,2);not null"`
	IsActive    bool            `gorm:"not null"`
}

func (ServiceDTO) TableName() string {
	return "services"
}

func fromDomain(s *catalog.Service) ServiceDTO {
	return ServiceDTO{
		ID:          s.ID().Bytes(),
		Name:        s.Name(),
		Description: s.Description(),
		Category:    s.Category(),
		BasePrice:   s.BasePrice(),
		IsActive:    s.IsActive(),
	}
}

func toDomain(dto ServiceDTO) (*catalog.Service, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	return catalog.RestoreService(id, dto.Name, dto.Description, dto.Category, dto.BasePrice, dto.IsActive)
}
