package positions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/rosview/pkg/cache"
)

// RedisKeyPrefix prefixes every layout key.
const RedisKeyPrefix = "rosview:layout:"

// RedisStore keeps layouts as JSON strings under "rosview:layout:<scope>".
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to addr, retrying the initial PING with backoff.
func NewRedisStore(ctx context.Context, addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	err := cache.RetryWithBackoff(ctx, func() error {
		if err := client.Ping(ctx).Err(); err != nil {
			return cache.Retryable(err)
		}
		return nil
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", addr, err)
	}
	return &RedisStore{client: client}, nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Key returns the Redis key for a scope.
func (s *RedisStore) Key(scope string) string { return RedisKeyPrefix + scope }

func (s *RedisStore) Load(ctx context.Context, scope string) (Layout, error) {
	data, err := s.client.Get(ctx, s.Key(scope)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("decode layout %s: %w", scope, err)
	}
	return l, nil
}

func (s *RedisStore) Save(ctx context.Context, scope string, l Layout) error {
	data, err := json.Marshal(l)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.Key(scope), data, 0).Err()
}

func (s *RedisStore) Delete(ctx context.Context, scope string) error {
	return s.client.Del(ctx, s.Key(scope)).Err()
}

func (s *RedisStore) Close() error { return s.client.Close() }

var _ Store = (*RedisStore)(nil)
