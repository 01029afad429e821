package queries

import (
	"context"

	"roadside/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListCentersQueryHandler struct {
	db *gorm.DB
}

func NewListCentersQueryHandler(db *gorm.DB) ListCentersQueryHandler {
	return ListCentersQueryHandler{db: db}
}

// Handle returns active centers sorted by name.
func (h ListCentersQueryHandler) Handle(ctx context.Context, query ListCentersQuery) ([]CenterView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			COALESCE(phone, ''),
			COALESCE(address, ''),
			latitude,
			longitude
		FROM service_centers
		WHERE is_active
		ORDER BY name, id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	centers := make([]CenterView, 0)
	for rows.Next() {
		var (
			view     CenterView
			id       uuid.UUID
			lat, lng float64
		)
		if err = rows.Scan(&id, &view.Name, &view.Phone, &view.Address, &lat, &lng); err != nil {
			return nil, err
		}
		if view.ID, err = kernel.UUIDFromGoogle(id); err != nil {
			return nil, err
		}
		if view.Location, err = kernel.NewLocation(lat, lng); err != nil {
			return nil, err
		}
		centers = append(centers, view)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return centers, nil
}
