package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"complianceconnect.backend/pkg/cache"
)

// NewClient parses the URL, applies the password override and pings the server.
func NewClient(ctx context.Context, url, password string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	if password != "" {
		opts.Password = password
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return client, nil
}

// Store adapts a redis client to cache.Cache. Keys are namespaced by prefix.
type Store struct {
	client *redis.Client
	prefix string
}

// NewStore wraps client. An empty prefix leaves keys untouched.
func NewStore(client *redis.Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

func (s *Store) key(k string) string {
	return s.prefix + k
}

// Get retrieves a value by key
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", cache.ErrMiss
	}
	return v, err
}

// Set stores a key-value pair with expiration
func (s *Store) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(key), value, ttl).Err()
}

// SetNX sets a key only if it does not exist
func (s *Store) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return s.client.SetNX(ctx, s.key(key), value, ttl).Result()
}

// Incr increments the integer at key by delta
func (s *Store) Incr(ctx context.Context, key string, delta int64) (int64, error) {
	return s.client.IncrBy(ctx, s.key(key), delta).Result()
}

// Del removes keys
func (s *Store) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.key(k)
	}
	return s.client.Del(ctx, full...).Err()
}

var _ cache.Cache = (*Store)(nil)
