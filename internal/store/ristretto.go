package store

import (
	"github.com/dgraph-io/ristretto"

	"github.com/memomark/memomark/memoize"
)

type ristrettoStore struct {
	c *ristretto.Cache
}

// NewRistretto creates a Ristretto backend. Writes are buffered and admission
// may reject entries; a rejected result is simply recomputed on next use.
func NewRistretto(capacity int) memoize.Store[string, string] {
	c, _ := ristretto.NewCache(&ristretto.Config{ //nolint:errcheck // config always valid
		NumCounters:        int64(capacity) * 10,
		MaxCost:            int64(capacity),
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	return &ristrettoStore{c: c}
}

func (s *ristrettoStore) Get(key string) (string, bool) {
	v, ok := s.c.Get(key)
	if !ok {
		return "", false
	}
	return v.(string), true //nolint:errcheck,revive // type is known from Set
}

func (s *ristrettoStore) Set(key, value string) {
	s.c.Set(key, value, 1)
}

func (s *ristrettoStore) Close() {
	s.c.Wait() // flush pending async writes
	s.c.Close()
}
