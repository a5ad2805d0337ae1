package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang/glog"
	"github.com/redis/go-redis/v9"
)

const maxUpdateAttempts = 5

// RedisStore keeps each cart as a JSON string under Key(userID). Updates are optimistic transactions on
// the key, retried if another request changed the cart in the meantime.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore creates a RedisStore. Carts expire ttl after their last change; zero means never.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (r *RedisStore) Get(ctx context.Context, userID string) ([]string, error) {
	raw, err := r.rdb.Get(ctx, Key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return []string{}, nil
	}
	if err != nil {
		// Carts are best effort.
		glog.Warningf("failed to read cart of %s: %v\n", userID, err)
		return []string{}, nil
	}
	return Decode(raw), nil
}

func (r *RedisStore) Add(ctx context.Context, userID string, courseID string) ([]string, error) {
	return r.update(ctx, userID, func(ids []string) []string { return add(ids, courseID) })
}

func (r *RedisStore) Remove(ctx context.Context, userID string, courseID string) ([]string, error) {
	return r.update(ctx, userID, func(ids []string) []string { return remove(ids, courseID) })
}

func (r *RedisStore) Clear(ctx context.Context, userID string) error {
	return r.rdb.Del(ctx, Key(userID)).Err()
}

func (r *RedisStore) update(ctx context.Context, userID string, fn func([]string) []string) ([]string, error) {
	key := Key(userID)
	var ids []string

	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		ids = fn(Decode(raw))

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, Encode(ids), r.ttl)
			return nil
		})
		return err
	}

	for i := 0; i < maxUpdateAttempts; i++ {
		err := r.rdb.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("error updating cart of %s: %w", userID, err)
		}
		return ids, nil
	}
	return nil, fmt.Errorf("error updating cart of %s: too many concurrent updates", userID)
}
