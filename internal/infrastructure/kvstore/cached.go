package kvstore

import (
	"context"
	"time"

	"github.com/riskibarqy/college-baseball-live/internal/domain/preference"
	"github.com/riskibarqy/college-baseball-live/internal/platform/cache"
)

type cachedEntry struct {
	value string
	found bool
}

// CachedStore answers reads from a TTL cache in front of a slower store.
// Writes go through to the backend first and only then refresh the cache.
type CachedStore struct {
	inner preference.Store
	cache *cache.Store[cachedEntry]
}

func NewCachedStore(inner preference.Store, ttl time.Duration) *CachedStore {
	return &CachedStore{inner: inner, cache: cache.NewStore[cachedEntry](ttl)}
}

func (s *CachedStore) Get(ctx context.Context, key string) (string, bool, error) {
	entry, err := s.cache.GetOrLoad(ctx, key, func(ctx context.Context) (cachedEntry, error) {
		value, found, err := s.inner.Get(ctx, key)
		if err != nil {
			return cachedEntry{}, err
		}
		return cachedEntry{value: value, found: found}, nil
	})
	if err != nil {
		return "", false, err
	}
	return entry.value, entry.found, nil
}

func (s *CachedStore) Set(ctx context.Context, key, value string) error {
	if err := s.inner.Set(ctx, key, value); err != nil {
		s.cache.Delete(ctx, key)
		return err
	}
	s.cache.Set(ctx, key, cachedEntry{value: value, found: true})
	return nil
}

func (s *CachedStore) Delete(ctx context.Context, key string) error {
	err := s.inner.Delete(ctx, key)
	s.cache.Delete(ctx, key)
	return err
}
