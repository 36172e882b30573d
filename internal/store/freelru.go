package store

import (
	lru "github.com/elastic/go-freelru"
	"github.com/zeebo/xxh3"

	"github.com/memomark/memomark/memoize"
)

// hashKey shards canonical argument keys across freelru buckets.
func hashKey(s string) uint32 {
	return uint32(xxh3.HashString(s))
}

type freeLRUSyncedStore struct {
	c *lru.SyncedLRU[string, string]
}

// NewFreeLRUSynced creates a mutex-synchronized freelru backend.
func NewFreeLRUSynced(capacity int) memoize.Store[string, string] {
	c, _ := lru.NewSynced[string, string](uint32(capacity), hashKey) //nolint:gosec // capacity always positive
	return &freeLRUSyncedStore{c: c}
}

func (s *freeLRUSyncedStore) Get(key string) (string, bool) {
	return s.c.Get(key)
}

func (s *freeLRUSyncedStore) Set(key, value string) {
	s.c.Add(key, value)
}

func (*freeLRUSyncedStore) Close() {}

type freeLRUShardedStore struct {
	c *lru.ShardedLRU[string, string]
}

// NewFreeLRUSharded creates a sharded freelru backend.
func NewFreeLRUSharded(capacity int) memoize.Store[string, string] {
	c, _ := lru.NewSharded[string, string](uint32(capacity), hashKey) //nolint:gosec // capacity always positive
	return &freeLRUShardedStore{c: c}
}

func (s *freeLRUShardedStore) Get(key string) (string, bool) {
	return s.c.Get(key)
}

func (s *freeLRUShardedStore) Set(key, value string) {
	s.c.Add(key, value)
}

func (*freeLRUShardedStore) Close() {}
