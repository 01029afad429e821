package ports

import (
	"context"
	"time"
)

// StoredResponse is a response recorded for an idempotency key.
type StoredResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

// IdempotencyStore remembers responses of unsafe requests so retries with the
// same Idempotency-Key replay the first outcome instead of repeating it.
type IdempotencyStore interface {
	// Get returns nil without error when the key is unknown.
	Get(ctx context.Context, key string) (*StoredResponse, error)

	// Reserve claims the key for an in-flight request. It returns false when
	// another request already holds or completed it.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Save records the final response for key.
	Save(ctx context.Context, key string, response StoredResponse, ttl time.Duration) error

	// Release drops a reservation whose request failed, allowing a retry.
	Release(ctx context.Context, key string) error
}
