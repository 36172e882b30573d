package memoize

import (
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// SharedGroup memoizes a string-keyed function, collapsing concurrent
// duplicate calls through singleflight. It is the natural fit when keys come
// from KeyOf and call volume is bursty: duplicate requests in flight share
// one invocation instead of queueing behind a lock.
type SharedGroup[V any] struct {
	fn    func(string) (V, error)
	store Store[string, V]
	group singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
	errs   atomic.Int64
}

// NewShared wraps fn in a SharedGroup backed by store. A nil store selects
// the unbounded default.
func NewShared[V any](fn func(string) (V, error), store Store[string, V]) *SharedGroup[V] {
	if store == nil {
		store = NewMapStore[string, V]()
	}
	return &SharedGroup[V]{fn: fn, store: store}
}

// Do returns the memoized result for key. Errors are shared with every
// in-flight waiter and never stored.
func (g *SharedGroup[V]) Do(key string) (V, error) {
	if v, ok := g.store.Get(key); ok {
		g.hits.Add(1)
		return v, nil
	}

	v, err, shared := g.group.Do(key, func() (any, error) {
		// Re-check: the store may have been filled while we queued.
		if v, ok := g.store.Get(key); ok {
			return v, nil
		}
		val, err := g.fn(key)
		if err != nil {
			return nil, err
		}
		g.store.Set(key, val)
		return val, nil
	})
	if err != nil {
		g.errs.Add(1)
		var zero V
		return zero, err
	}
	if shared {
		g.hits.Add(1)
	} else {
		g.misses.Add(1)
	}
	return v.(V), nil
}

// Stats returns a snapshot of the call counters.
func (g *SharedGroup[V]) Stats() Stats {
	return Stats{
		Hits:   g.hits.Load(),
		Misses: g.misses.Load(),
		Errors: g.errs.Load(),
	}
}

// Close releases the backing store.
func (g *SharedGroup[V]) Close() {
	g.store.Close()
}
