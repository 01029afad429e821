package ports

import (
	"context"

	"roadside/internal/core/domain/model/center"
	"roadside/internal/core/domain/model/kernel"
)

// CenterRepository defines the persistence contract for service centers.
type CenterRepository interface {
	Add(ctx context.Context, aggregate *center.Center) error

	// Get returns ObjectNotFoundError when the center does not exist.
	Get(ctx context.Context, id kernel.UUID) (*center.Center, error)
}
