package redisStore

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

func (s *Store) Set(ctx context.Context, key string, value interface{}) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	return s.client.Get(ctx, key).Result()
}

func (s *Store) Del(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	count, err := s.client.Exists(ctx, key).Result()
	return count > 0, err
}

func (s *Store) IsNil(err error) bool {
	return errors.Is(err, redis.Nil)
}

// Sorted sets carry the ordering contracts: sessions scored by last
// activity, messages scored by creation time.

func (s *Store) SortedAdd(ctx context.Context, key string, score float64, member interface{}) error {
	return s.client.ZAdd(ctx, key, redis.Z{Score: score, Member: member}).Err()
}

func (s *Store) SortedRangeAsc(ctx context.Context, key string) ([]string, error) {
	return s.client.ZRange(ctx, key, 0, -1).Result()
}

func (s *Store) SortedRangeDesc(ctx context.Context, key string) ([]string, error) {
	return s.client.ZRevRange(ctx, key, 0, -1).Result()
}

func (s *Store) SortedRemove(ctx context.Context, key string, members ...interface{}) error {
	return s.client.ZRem(ctx, key, members...).Err()
}
