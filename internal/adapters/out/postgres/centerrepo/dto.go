// Package centerrepo persists service centers.
package centerrepo

import (
	"roadside/internal/core/domain/model/center"
	"roadside/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CenterDTO is a row of service_centers. Coordinates are never updated once
// written since bookings rely on them.
type CenterDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	Phone     string
	Address   string
	Latitude  float64 `gorm:"not null"`
	Longitude float64 `gorm:"not null"`
	IsActive  bool    `gorm:"not null"`
}

func (CenterDTO) TableName() string {
	return "service_centers"
}

func fromDomain(c *center.Center) CenterDTO {
	return CenterDTO{
		ID:        c.ID().Bytes(),
		Name:      c.Name(),
		Phone:     c.Phone(),
		Address:   c.Address(),
		Latitude:  c.Location().Lat(),
		Longitude: c.Location().Lng(),
		IsActive:  c.IsActive(),
	}
}

func toDomain(dto CenterDTO) (*center.Center, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	loc, err := kernel.NewLocation(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}

	return center.RestoreCenter(id, dto.Name, dto.Phone, dto.Address, loc, dto.IsActive)
}
