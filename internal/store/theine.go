package store

import (
	"github.com/Yiling-J/theine-go"

	"github.com/memomark/memomark/memoize"
)

type theineStore struct {
	c *theine.Cache[string, string]
}

// NewTheine creates a Theine backend.
func NewTheine(capacity int) memoize.Store[string, string] {
	c, _ := theine.NewBuilder[string, string](int64(capacity)).Build()
	return &theineStore{c: c}
}

func (s *theineStore) Get(key string) (string, bool) {
	return s.c.Get(key)
}

func (s *theineStore) Set(key, value string) {
	s.c.Set(key, value, 1)
}

func (s *theineStore) Close() {
	s.c.Close()
}
