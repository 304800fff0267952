package services

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const idempotencyPrefix = "idem:"

// IdempotencyStore reserves request keys so a retried write runs once.
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Reserve claims key. It returns false when the key is already held.
func (s *IdempotencyStore) Reserve(ctx context.Context, scope, key string) (bool, error) {
	return s.client.SetNX(ctx, idempotencyPrefix+scope+":"+key, time.Now().Unix(), s.ttl).Result()
}

// Release frees key so the client may retry.
func (s *IdempotencyStore) Release(ctx context.Context, scope, key string) error {
	return s.client.Del(ctx, idempotencyPrefix+scope+":"+key).Err()
}
