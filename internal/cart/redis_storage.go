package cart

import (
	"context"
	"errors"
	"time"

	pkgerrors "github.com/Demmynile/hanniefoods/pkg/errors"
	pkgredis "github.com/Demmynile/hanniefoods/pkg/redis"
)

// RedisStorage persists carts in Redis under the namespaced cart key,
// refreshing the TTL on every save.
type RedisStorage struct {
	client *pkgredis.Client
	ttl    time.Duration
}

// NewRedisStorage builds a Redis-backed cart storage.
func NewRedisStorage(client *pkgredis.Client, ttl time.Duration) (*RedisStorage, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if ttl <= 0 {
		return nil, errors.New("cart ttl must be positive")
	}
	return &RedisStorage{client: client, ttl: ttl}, nil
}

func (r *RedisStorage) Load(ctx context.Context, ownerID string) (State, error) {
	raw, err := r.client.Get(ctx, r.client.CartKey(ownerID))
	if err != nil {
		if errors.Is(err, pkgredis.Nil) {
			return State{}, nil
		}
		return State{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return decodeState([]byte(raw)), nil
}

func (r *RedisStorage) Save(ctx context.Context, ownerID string, state State) error {
	raw, err := encodeState(state)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := r.client.Set(ctx, r.client.CartKey(ownerID), raw, r.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return nil
}

func (r *RedisStorage) Clear(ctx context.Context, ownerID string) error {
	if err := r.client.Del(ctx, r.client.CartKey(ownerID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}
