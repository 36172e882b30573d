package store

import (
	"sync"

	"github.com/dgryski/go-s4lru"

	"github.com/memomark/memomark/memoize"
)

type s4lruStore struct {
	c  *s4lru.Cache
	mu sync.Mutex
}

// NewS4LRU creates a segmented LRU backend. The library is not
// goroutine-safe, so a mutex guards every operation.
func NewS4LRU(capacity int) memoize.Store[string, string] {
	return &s4lruStore{c: s4lru.New(capacity)}
}

func (s *s4lruStore) Get(key string) (string, bool) {
	s.mu.Lock()
	v, ok := s.c.Get(key)
	s.mu.Unlock()
	if !ok {
		return "", false
	}
	return v.(string), true //nolint:errcheck,revive // type is known from Set
}

func (s *s4lruStore) Set(key, value string) {
	s.mu.Lock()
	s.c.Set(key, value)
	s.mu.Unlock()
}

func (*s4lruStore) Close() {}
