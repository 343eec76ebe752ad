package cache

import (
	"context"
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Cache is the small key/value surface used for response caching and
// idempotency locks. Implementations: Memory (in-process) and redis.Store.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
	// Incr adds delta to the integer at key, creating it at zero first,
	// and returns the new value. A delta of 0 reads the counter.
	Incr(ctx context.Context, key string, delta int64) (int64, error)
}

// Memory is an in-process Cache backed by go-cache.
type Memory struct {
	store *gocache.Cache
}

// NewMemory creates an in-process cache. cleanup is the janitor interval for
// purging expired entries.
func NewMemory(cleanup time.Duration) *Memory {
	return &Memory{store: gocache.New(gocache.NoExpiration, cleanup)}
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	v, ok := m.store.Get(key)
	if !ok {
		return "", ErrMiss
	}
	s, ok := v.(string)
	if !ok {
		return "", ErrMiss
	}
	return s, nil
}

func (m *Memory) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.store.Set(key, value, expiration(ttl))
	return nil
}

func (m *Memory) SetNX(_ context.Context, key, value string, ttl time.Duration) (bool, error) {
	// Add fails when a live entry already exists
	if err := m.store.Add(key, value, expiration(ttl)); err != nil {
		return false, nil
	}
	return true, nil
}

func (m *Memory) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		m.store.Delete(k)
	}
	return nil
}

func (m *Memory) Incr(_ context.Context, key string, delta int64) (int64, error) {
	if n, err := m.store.IncrementInt64(key, delta); err == nil {
		return n, nil
	}
	if err := m.store.Add(key, delta, gocache.NoExpiration); err == nil {
		return delta, nil
	}
	// lost the race to create it
	return m.store.IncrementInt64(key, delta)
}

func expiration(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return gocache.NoExpiration
	}
	return ttl
}
