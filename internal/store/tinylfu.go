package store

import (
	tinylfu "github.com/vmihailenco/go-tinylfu"

	"github.com/memomark/memomark/memoize"
)

type tinyLFUStore struct {
	c *tinylfu.SyncT
}

// NewTinyLFU creates a TinyLFU backend. Admission is frequency-based, so a
// first-seen key can be rejected and recomputed on its next appearance.
func NewTinyLFU(capacity int) memoize.Store[string, string] {
	return &tinyLFUStore{c: tinylfu.NewSync(capacity, capacity*10)}
}

func (s *tinyLFUStore) Get(key string) (string, bool) {
	v, ok := s.c.Get(key)
	if !ok {
		return "", false
	}
	return v.(string), true //nolint:errcheck,revive // type is known from Set
}

func (s *tinyLFUStore) Set(key, value string) {
	s.c.Set(&tinylfu.Item{Key: key, Value: value})
}

func (*tinyLFUStore) Close() {}
