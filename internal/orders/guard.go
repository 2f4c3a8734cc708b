package orders

import (
	"context"
	"errors"
	"time"

	pkgredis "github.com/Demmynile/hanniefoods/pkg/redis"
)

const guardScope = "order"

// ReferenceGuard reserves a payment reference so a retried success
// callback cannot reconcile the same payment twice.
type ReferenceGuard interface {
	Reserve(ctx context.Context, reference string) (bool, error)
}

// RedisReferenceGuard backs the reservation with a namespaced SetNX key.
type RedisReferenceGuard struct {
	client *pkgredis.Client
	ttl    time.Duration
}

// NewRedisReferenceGuard builds a guard over the shared Redis client.
func NewRedisReferenceGuard(client *pkgredis.Client, ttl time.Duration) (*RedisReferenceGuard, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisReferenceGuard{client: client, ttl: ttl}, nil
}

func (g *RedisReferenceGuard) Reserve(ctx context.Context, reference string) (bool, error) {
	return g.client.SetNX(ctx, g.client.IdempotencyKey(guardScope, reference), "1", g.ttl)
}
