package ports

import (
	"context"

	"roadside/internal/core/domain/model/catalog"
	"roadside/internal/core/domain/model/kernel"
)

// CatalogRepository gives access to the service catalog.
type CatalogRepository interface {
	Add(ctx context.Context, service *catalog.Service) error

	// Update persists price and availability changes.
	Update(ctx context.Context, service *catalog.Service) error

	// Get returns ObjectNotFoundError when the service does not exist.
	Get(ctx context.Context, id kernel.UUID) (*catalog.Service, error)

	// GetByIDs returns the services that exist among ids, in no particular order.
	GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*catalog.Service, error)
}
