package store

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/memomark/memomark/memoize"
)

type lruStore struct {
	c *lru.Cache[string, string]
}

// NewLRU creates a plain LRU backend.
func NewLRU(capacity int) memoize.Store[string, string] {
	c, _ := lru.New[string, string](capacity)
	return &lruStore{c: c}
}

func (s *lruStore) Get(key string) (string, bool) {
	return s.c.Get(key)
}

func (s *lruStore) Set(key, value string) {
	s.c.Add(key, value)
}

func (*lruStore) Close() {}

type twoQueueStore struct {
	c *lru.TwoQueueCache[string, string]
}

// NewTwoQueue creates a 2Q backend, which resists scan pollution better than
// plain LRU.
func NewTwoQueue(capacity int) memoize.Store[string, string] {
	c, _ := lru.New2Q[string, string](capacity)
	return &twoQueueStore{c: c}
}

func (s *twoQueueStore) Get(key string) (string, bool) {
	return s.c.Get(key)
}

func (s *twoQueueStore) Set(key, value string) {
	s.c.Add(key, value)
}

func (*twoQueueStore) Close() {}
