package store

import (
	"github.com/coocood/freecache"

	"github.com/memomark/memomark/memoize"
)

// freecacheEntrySize approximates key + value + internal overhead for sizing
// the byte-based arena from an entry capacity.
const freecacheEntrySize = 200

type freecacheStore struct {
	c *freecache.Cache
}

// NewFreecache creates a freecache backend. freecache is sized in bytes, so
// the entry capacity is converted with a conservative per-entry estimate.
func NewFreecache(capacity int) memoize.Store[string, string] {
	cacheBytes := max(capacity*freecacheEntrySize,
		// minimum 512KB
		512*1024)
	return &freecacheStore{c: freecache.NewCache(cacheBytes)}
}

func (s *freecacheStore) Get(key string) (string, bool) {
	v, err := s.c.Get([]byte(key))
	if err != nil {
		return "", false
	}
	return string(v), true
}

func (s *freecacheStore) Set(key, value string) {
	s.c.Set([]byte(key), []byte(value), 0) //nolint:errcheck,gosec // best-effort set
}

func (*freecacheStore) Close() {}
