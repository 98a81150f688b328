package credstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/worklane/pkg/slogx"
	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces credential keys.
const DefaultRedisPrefix = "worklane:"

// RedisStore keeps credentials as plain string keys in redis.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore wraps an existing client. An empty prefix uses DefaultRedisPrefix.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

// DialRedis parses a redis:// URL, connects and pings.
func DialRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to reach redis: %w", err)
	}
	return client, nil
}

func (s *RedisStore) key(slot Slot) string { return s.prefix + string(slot) }

func (s *RedisStore) Get(ctx context.Context, slot Slot) (string, bool) {
	v, err := s.client.Get(ctx, s.key(slot)).Result()
	switch {
	case err == nil:
		return v, true
	case errors.Is(err, redis.Nil):
		return "", false
	default:
		slogx.FromContext(ctx).Warn("credential lookup failed", "slot", slot, "err", err)
		return "", false
	}
}

func (s *RedisStore) Set(ctx context.Context, slot Slot, value string) error {
	if !slot.valid() {
		return ErrUnknownSlot
	}
	if err := s.client.Set(ctx, s.key(slot), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to store %s: %w", slot, err)
	}
	return nil
}

func (s *RedisStore) ClearAll(ctx context.Context) error {
	keys := make([]string, 0, len(Slots))
	for _, slot := range Slots {
		keys = append(keys, s.key(slot))
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}
