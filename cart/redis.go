package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisPersister stores each serialized cart under cart:<userID>.
type RedisPersister struct {
	Conn *redis.Client
}

func Key(userID string) string {
	return fmt.Sprintf("cart:%s", userID)
}

func (r RedisPersister) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := r.Conn.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return data, err
}

func (r RedisPersister) Save(ctx context.Context, key string, data []byte) error {
	return r.Conn.Set(ctx, key, data, 0).Err()
}

func (r RedisPersister) Delete(ctx context.Context, key string) error {
	return r.Conn.Del(ctx, key).Err()
}
