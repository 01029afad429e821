// Package redis stores Idempotency-Key responses.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"roadside/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const (
	responsePrefix = "idemp:"
	lockPrefix     = "idemp:lock:"
)

// IdempotencyStore keeps a finished response under "idemp:<key>" and an
// in-flight reservation under "idemp:lock:<key>".
type IdempotencyStore struct {
	client redis.UniversalClient
}

func NewIdempotencyStore(client redis.UniversalClient) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

func (s *IdempotencyStore) Get(ctx context.Context, key string) (*ports.StoredResponse, error) {
	val, err := s.client.Get(ctx, responsePrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var resp ports.StoredResponse
	if err = json.Unmarshal(val, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Reserve fails when the key is locked or already has a response. The second
// check covers a request that finished between the caller's Get and Reserve.
func (s *IdempotencyStore) Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, lockPrefix+key, "1", ttl).Result()
	if err != nil || !ok {
		return false, err
	}

	exists, err := s.client.Exists(ctx, responsePrefix+key).Result()
	if err != nil {
		return false, err
	}
	if exists > 0 {
		return false, s.client.Del(ctx, lockPrefix+key).Err()
	}
	return true, nil
}

func (s *IdempotencyStore) Save(ctx context.Context, key string, response ports.StoredResponse, ttl time.Duration) error {
	data, err := json.Marshal(response)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, responsePrefix+key, data, ttl)
		pipe.Del(ctx, lockPrefix+key)
		return nil
	})
	return err
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, lockPrefix+key).Err()
}
