package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/mozzabt/portfolio/internal/domain/portfolio"
	"github.com/mozzabt/portfolio/pkg/apperror"
)

// redisSlotStorage maps each slot to one plain string key. The namespace is
// already part of the slot key. Any failure other than a missing key means
// the server could not be reached or answered, so it is reported as
// unavailable.
type redisSlotStorage struct {
	rdb *redis.Client
}

func NewRedisSlotStorage(rdb *redis.Client) portfolio.SlotStorage {
	return &redisSlotStorage{rdb: rdb}
}

func (r *redisSlotStorage) Read(ctx context.Context, key string) (string, bool, error) {
	v, err := r.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, apperror.NewUnavailable(fmt.Sprintf("redis get %s", key), err)
	}
	return v, true, nil
}

func (r *redisSlotStorage) Write(ctx context.Context, key, value string) error {
	if err := r.rdb.Set(ctx, key, value, 0).Err(); err != nil {
		return apperror.NewUnavailable(fmt.Sprintf("redis set %s", key), err)
	}
	return nil
}

func (r *redisSlotStorage) Remove(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		return apperror.NewUnavailable(fmt.Sprintf("redis del %s", key), err)
	}
	return nil
}
