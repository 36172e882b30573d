package store

import (
	"github.com/maypok86/otter/v2"

	"github.com/memomark/memomark/memoize"
)

type otterStore struct {
	c *otter.Cache[string, string]
}

// NewOtter creates an Otter (W-TinyLFU) backend.
func NewOtter(capacity int) memoize.Store[string, string] {
	c := otter.Must(&otter.Options[string, string]{MaximumSize: capacity})
	return &otterStore{c: c}
}

func (s *otterStore) Get(key string) (string, bool) {
	return s.c.GetIfPresent(key)
}

func (s *otterStore) Set(key, value string) {
	s.c.Set(key, value)
}

func (*otterStore) Close() {}
