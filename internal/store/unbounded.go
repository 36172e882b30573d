package store

import "github.com/memomark/memomark/memoize"

// NewUnbounded creates the reference backend: the memoize package's own
// unbounded map store. It never evicts, which makes it the hit-rate ceiling
// every bounded backend is measured against.
func NewUnbounded(_ int) memoize.Store[string, string] {
	return memoize.NewMapStore[string, string]()
}
