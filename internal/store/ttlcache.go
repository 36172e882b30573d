package store

import (
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/memomark/memomark/memoize"
)

type ttlStore struct {
	c *ttlcache.Cache[string, string]
}

// NewTTLCache creates a ttlcache backend. Memoized results have no natural
// expiry, so the TTL is long and capacity does the bounding.
func NewTTLCache(capacity int) memoize.Store[string, string] {
	c := ttlcache.New[string, string](
		ttlcache.WithCapacity[string, string](uint64(capacity)), //nolint:gosec // capacity always positive
		ttlcache.WithTTL[string, string](time.Hour),
	)
	go c.Start()
	return &ttlStore{c: c}
}

func (s *ttlStore) Get(key string) (string, bool) {
	item := s.c.Get(key)
	if item == nil {
		return "", false
	}
	return item.Value(), true
}

func (s *ttlStore) Set(key, value string) {
	s.c.Set(key, value, ttlcache.DefaultTTL)
}

func (s *ttlStore) Close() {
	s.c.Stop()
}
