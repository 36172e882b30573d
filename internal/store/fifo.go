package store

import (
	"github.com/scalalang2/golang-fifo/s3fifo"
	"github.com/scalalang2/golang-fifo/sieve"

	"github.com/memomark/memomark/memoize"
)

type sieveStore struct {
	c *sieve.Sieve[string, string]
}

// NewSieve creates a SIEVE backend.
func NewSieve(capacity int) memoize.Store[string, string] {
	return &sieveStore{c: sieve.New[string, string](capacity, 0)}
}

func (s *sieveStore) Get(key string) (string, bool) {
	return s.c.Get(key)
}

func (s *sieveStore) Set(key, value string) {
	s.c.Set(key, value)
}

func (*sieveStore) Close() {}

type s3fifoStore struct {
	c *s3fifo.S3FIFO[string, string]
}

// NewS3FIFO creates an S3-FIFO backend.
func NewS3FIFO(capacity int) memoize.Store[string, string] {
	return &s3fifoStore{c: s3fifo.New[string, string](capacity, 0)}
}

func (s *s3fifoStore) Get(key string) (string, bool) {
	return s.c.Get(key)
}

func (s *s3fifoStore) Set(key, value string) {
	s.c.Set(key, value)
}

func (*s3fifoStore) Close() {}
