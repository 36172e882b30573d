// Package memoize caches function results keyed by argument value.
//
// A Memo wraps a deterministic function so that repeated calls with equal
// arguments return the stored result instead of recomputing it. The wrapped
// function must be pure: the cache performs no staleness detection, so an
// impure function returns its first answer forever.
package memoize

import (
	"sync"
	"sync/atomic"
)

// Stats reports cache activity for a single Memo.
type Stats struct {
	Hits   int64 // calls answered from the store or a shared in-flight result
	Misses int64 // calls that invoked the wrapped function
	Errors int64 // invocations that returned an error (never stored)
}

// HitRate returns hits as a percentage of all calls.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// call tracks one in-flight invocation. Waiters block on done and then share
// the leader's value and error.
type call[V any] struct {
	done chan struct{}
	val  V
	err  error
}

// Memo memoizes a function of one comparable key. Safe for concurrent use:
// concurrent first-time calls with the same key invoke the function once,
// with every caller receiving the leader's result.
type Memo[K comparable, V any] struct {
	fn    func(K) (V, error)
	store Store[K, V]

	mu       sync.Mutex
	inflight map[K]*call[V]

	hits   atomic.Int64
	misses atomic.Int64
	errs   atomic.Int64
}

// Option configures a Memo.
type Option[K comparable, V any] func(*Memo[K, V])

// WithStore replaces the default unbounded store. The store decides the
// eviction policy; an evicted key is simply recomputed on next use.
func WithStore[K comparable, V any](s Store[K, V]) Option[K, V] {
	return func(m *Memo[K, V]) { m.store = s }
}

// WithCapacity bounds the store to n entries with LRU eviction.
func WithCapacity[K comparable, V any](n int) Option[K, V] {
	return func(m *Memo[K, V]) { m.store = NewLRUStore[K, V](n) }
}

// New wraps fn in a fresh Memo. Each Memo owns its store exclusively; two
// Memos over the same function share nothing.
func New[K comparable, V any](fn func(K) (V, error), opts ...Option[K, V]) *Memo[K, V] {
	m := &Memo[K, V]{
		fn:       fn,
		inflight: make(map[K]*call[V]),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.store == nil {
		m.store = NewMapStore[K, V]()
	}
	return m
}

// Do returns the memoized result for key, invoking the wrapped function on
// first use. Errors from the function propagate to every waiting caller and
// are not stored, so the next call with the same key retries.
func (m *Memo[K, V]) Do(key K) (V, error) {
	if v, ok := m.store.Get(key); ok {
		m.hits.Add(1)
		return v, nil
	}

	m.mu.Lock()
	// A leader may have published between the optimistic read and here.
	if v, ok := m.store.Get(key); ok {
		m.mu.Unlock()
		m.hits.Add(1)
		return v, nil
	}
	if c, ok := m.inflight[key]; ok {
		m.mu.Unlock()
		<-c.done
		if c.err != nil {
			var zero V
			return zero, c.err
		}
		m.hits.Add(1)
		return c.val, nil
	}
	c := &call[V]{done: make(chan struct{})}
	m.inflight[key] = c
	m.mu.Unlock()

	m.misses.Add(1)
	c.val, c.err = m.fn(key)
	if c.err == nil {
		m.store.Set(key, c.val)
	} else {
		m.errs.Add(1)
	}

	m.mu.Lock()
	delete(m.inflight, key)
	m.mu.Unlock()
	close(c.done)

	return c.val, c.err
}

// Stats returns a snapshot of the call counters.
func (m *Memo[K, V]) Stats() Stats {
	return Stats{
		Hits:   m.hits.Load(),
		Misses: m.misses.Load(),
		Errors: m.errs.Load(),
	}
}

// Close releases the backing store.
func (m *Memo[K, V]) Close() {
	m.store.Close()
}

// Wrap memoizes a pure single-argument function, returning a callable with
// the same signature.
func Wrap[K comparable, V any](fn func(K) V, opts ...Option[K, V]) func(K) V {
	m := New(func(k K) (V, error) { return fn(k), nil }, opts...)
	return func(k K) V {
		v, _ := m.Do(k)
		return v
	}
}

// WrapErr memoizes a fallible single-argument function. Errors pass through
// uncached.
func WrapErr[K comparable, V any](fn func(K) (V, error), opts ...Option[K, V]) func(K) (V, error) {
	m := New(fn, opts...)
	return m.Do
}

// pair and triple are the composite keys behind Wrap2 and Wrap3. Map equality
// on the struct gives value equality across the whole argument list.
type pair[A, B comparable] struct {
	A A
	B B
}

type triple[A, B, C comparable] struct {
	A A
	B B
	C C
}

// Wrap2 memoizes a pure two-argument function.
func Wrap2[A, B comparable, V any](fn func(A, B) V) func(A, B) V {
	m := New(func(k pair[A, B]) (V, error) { return fn(k.A, k.B), nil })
	return func(a A, b B) V {
		v, _ := m.Do(pair[A, B]{A: a, B: b})
		return v
	}
}

// Wrap3 memoizes a pure three-argument function.
func Wrap3[A, B, C comparable, V any](fn func(A, B, C) V) func(A, B, C) V {
	m := New(func(k triple[A, B, C]) (V, error) { return fn(k.A, k.B, k.C), nil })
	return func(a A, b B, c C) V {
		v, _ := m.Do(triple[A, B, C]{A: a, B: b, C: c})
		return v
	}
}
