// Package main measures memory usage for a single memoization store backend.
// Run in an isolated process for accurate measurements.
package main

import (
	"flag"
	"fmt"
	"runtime"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/memomark/memomark/internal/store"
	"github.com/memomark/memomark/memoize"
)

var keepAlive any

func main() {
	backend := flag.String("backend", "", "store backend to probe (or 'baseline')")
	entries := flag.Int("entries", 32768, "distinct memoized calls to make")
	valSize := flag.Int("valsize", 1024, "memoized result size in bytes")
	flag.Parse()

	if *backend == "" {
		fmt.Println(`{"error":"backend name required"}`)
		return
	}

	runtime.GC()
	debug.FreeOSMemory()

	retained, err := runProbe(*backend, *entries, *valSize)
	if err != nil {
		fmt.Printf(`{"name":%q, "error":%q}`, *backend, err.Error())
		return
	}

	runtime.GC()
	time.Sleep(100 * time.Millisecond)
	runtime.GC()
	debug.FreeOSMemory()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	fmt.Printf(`{"name":%q, "entries":%d, "bytes":%d}`, *backend, retained, mem.Alloc)
}

// runProbe makes entries distinct memoized calls through the named backend
// and reports how many results the store retained.
func runProbe(backend string, entries, valSize int) (int, error) {
	keys := make([]string, entries)
	for i := range entries {
		keys[i] = "probe-key-" + strconv.Itoa(i)
	}

	if backend == "baseline" {
		// Keys and values with no store around them.
		values := make([]string, entries)
		for i := range entries {
			values[i] = probeValue(i, valSize)
		}
		keepAlive = [2]any{keys, values}
		return entries, nil
	}

	factory, ok := store.Lookup(backend)
	if !ok {
		return 0, fmt.Errorf("unknown backend %q", backend)
	}

	st := factory(entries)
	m := memoize.New(func(key string) (string, error) {
		n, err := strconv.Atoi(key[len("probe-key-"):])
		if err != nil {
			return "", err
		}
		return probeValue(n, valSize), nil
	}, memoize.WithStore(st))

	for _, k := range keys {
		if _, err := m.Do(k); err != nil {
			return 0, err
		}
	}

	retained := 0
	for _, k := range keys {
		if _, ok := st.Get(k); ok {
			retained++
		}
	}

	keepAlive = [3]any{keys, st, m}
	return retained, nil
}

// probeValue builds a result string of exactly size bytes, varied by n so
// values cannot share backing storage.
func probeValue(n, size int) string {
	return fmt.Sprintf("%0*d", size, n)
}
