package settings

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"consentd/pkg/platform/sentinel"
)

// cacheKeyPrefix namespaces settings entries in the shared Redis instance.
const cacheKeyPrefix = "settings:"

// notFoundMarker caches negative lookups so a missing key does not hammer
// the database on every read.
const notFoundMarker = "\x00nil"

// CachedStore is a read-through Redis cache in front of another Store.
// Writes go to the inner store first and invalidate the cached entry.
// Cache failures degrade to the inner store; they are never surfaced.
type CachedStore struct {
	inner  Store
	client *redis.Client
	ttl    time.Duration
}

// NewCached wraps inner with a Redis read-through cache.
func NewCached(inner Store, client *redis.Client, ttl time.Duration) *CachedStore {
	return &CachedStore{inner: inner, client: client, ttl: ttl}
}

func (s *CachedStore) GetString(ctx context.Context, key string) (string, error) {
	cached, err := s.client.Get(ctx, cacheKeyPrefix+key).Result()
	if err == nil {
		if cached == notFoundMarker {
			return "", sentinel.ErrNotFound
		}
		return cached, nil
	}

	value, innerErr := s.inner.GetString(ctx, key)
	if innerErr != nil {
		if errors.Is(innerErr, sentinel.ErrNotFound) {
			s.client.Set(ctx, cacheKeyPrefix+key, notFoundMarker, s.ttl)
		}
		return "", innerErr
	}

	s.client.Set(ctx, cacheKeyPrefix+key, value, s.ttl)
	return value, nil
}

func (s *CachedStore) GetBool(ctx context.Context, key string) (bool, error) {
	value, err := s.GetString(ctx, key)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, nil
	}
	return parsed, nil
}

func (s *CachedStore) Set(ctx context.Context, key, value string) error {
	if err := s.inner.Set(ctx, key, value); err != nil {
		return err
	}
	// Invalidate rather than update: the inner store owns the timestamp.
	s.client.Del(ctx, cacheKeyPrefix+key)
	return nil
}

// LastUpdatedAt is served by the inner store; timestamps are read on the
// cold consent-date path and are not worth a second cache entry.
func (s *CachedStore) LastUpdatedAt(ctx context.Context, key string) (time.Time, error) {
	return s.inner.LastUpdatedAt(ctx, key)
}
