// Package store provides memoize.Store backends built on third-party cache
// libraries, registered by name for the benchmark harness.
package store

import "github.com/memomark/memomark/memoize"

// Factory creates a backend with the given entry capacity. The unbounded
// backend ignores capacity.
type Factory func(capacity int) memoize.Store[string, string]

// Backend pairs a registry name with its factory.
type Backend struct {
	Name string
	New  Factory
}

// registry maps backend names to factories.
var registry = map[string]Factory{
	"unbounded":     NewUnbounded,
	"lru":           NewLRU,
	"2q":            NewTwoQueue,
	"otter":         NewOtter,
	"theine":        NewTheine,
	"ttlcache":      NewTTLCache,
	"ristretto":     NewRistretto,
	"tinylfu":       NewTinyLFU,
	"sieve":         NewSieve,
	"s3-fifo":       NewS3FIFO,
	"freelru-shard": NewFreeLRUSharded,
	"freelru-sync":  NewFreeLRUSynced,
	"freecache":     NewFreecache,
	"s4lru":         NewS4LRU,
	"clock":         NewClock,
}

// defaultOrder defines the display order for backends.
var defaultOrder = []string{
	"unbounded",
	"lru", "2q", "otter", "theine", "ttlcache", "ristretto", "tinylfu",
	"sieve", "s3-fifo", "freelru-shard", "freelru-sync", "freecache",
	"s4lru", "clock",
}

// Filter holds the current backend filter (nil = all backends).
var Filter map[string]bool

// SetFilter restricts which backends the harness exercises.
func SetFilter(names []string) {
	if len(names) == 0 {
		Filter = nil
		return
	}
	Filter = make(map[string]bool)
	for _, name := range names {
		Filter[name] = true
	}
}

// All returns the selected backends in display order.
func All() []Backend {
	var backends []Backend
	for _, name := range defaultOrder {
		if Filter != nil && !Filter[name] {
			continue
		}
		if f, ok := registry[name]; ok {
			backends = append(backends, Backend{Name: name, New: f})
		}
	}
	return backends
}

// AllNames returns the names of the selected backends.
func AllNames() []string {
	if Filter == nil {
		return defaultOrder
	}
	var names []string
	for _, name := range defaultOrder {
		if Filter[name] {
			names = append(names, name)
		}
	}
	return names
}

// AvailableNames returns every registered backend name, ignoring the filter.
func AvailableNames() []string {
	return defaultOrder
}

// Lookup returns the factory for name, if registered.
func Lookup(name string) (Factory, bool) {
	f, ok := registry[name]
	return f, ok
}
