package queries

import (
	"context"

	"roadside/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListServicesQueryHandler struct {
	db *gorm.DB
}

func NewListServicesQueryHandler(db *gorm.DB) ListServicesQueryHandler {
	return ListServicesQueryHandler{db: db}
}

// Handle returns active services grouped by category, then by name.
func (h ListServicesQueryHandler) Handle(ctx context.Context, query ListServicesQuery) ([]ServiceView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			COALESCE(description, ''),
			COALESCE(category, ''),
			base_price
		FROM services
		WHERE is_active
		ORDER BY category, name, id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := make([]ServiceView, 0)
	for rows.Next() {
		var (
			view ServiceView
			id   uuid.UUID
		)
		if err = rows.Scan(&id, &view.Name, &view.Description, &view.Category, &view.BasePrice); err != nil {
			return nil, err
		}
		if view.ID, err = kernel.UUIDFromGoogle(id); err != nil {
			return nil, err
		}
		services = append(services, view)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return services, nil
}
