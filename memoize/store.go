package memoize

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Store is the backing table behind a Memo. Implementations must be safe for
// concurrent use. A Store may decline or evict entries (bounded policies,
// admission filters): the Memo treats an absent key as a miss and recomputes,
// so correctness never depends on retention.
type Store[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V)
	Close()
}

// mapStore is the default unbounded store. Entries are never evicted; memory
// grows with the number of distinct keys observed. That trade-off is the
// classic memoization contract.
type mapStore[K comparable, V any] struct {
	mu sync.RWMutex
	m  map[K]V
}

// NewMapStore returns an unbounded mutex-guarded map store.
func NewMapStore[K comparable, V any]() Store[K, V] {
	return &mapStore[K, V]{m: make(map[K]V)}
}

func (s *mapStore[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	v, ok := s.m[key]
	s.mu.RUnlock()
	return v, ok
}

func (s *mapStore[K, V]) Set(key K, value V) {
	s.mu.Lock()
	s.m[key] = value
	s.mu.Unlock()
}

func (s *mapStore[K, V]) Close() {}

// lruStore bounds the table to a fixed number of entries with LRU eviction.
type lruStore[K comparable, V any] struct {
	c *lru.Cache[K, V]
}

// NewLRUStore returns a bounded LRU store holding at most capacity entries.
func NewLRUStore[K comparable, V any](capacity int) Store[K, V] {
	c, _ := lru.New[K, V](capacity)
	return &lruStore[K, V]{c: c}
}

func (s *lruStore[K, V]) Get(key K) (V, bool) {
	return s.c.Get(key)
}

func (s *lruStore[K, V]) Set(key K, value V) {
	s.c.Add(key, value)
}

func (s *lruStore[K, V]) Close() {}
