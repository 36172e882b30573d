package memoize

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestSharedGroupMemoizes(t *testing.T) {
	var calls int64
	g := NewShared(func(key string) (string, error) {
		atomic.AddInt64(&calls, 1)
		return "v:" + key, nil
	}, nil)
	defer g.Close()

	for range 3 {
		got, err := g.Do("a")
		if err != nil {
			t.Fatal(err)
		}
		if got != "v:a" {
			t.Errorf("Do(a) = %q, want %q", got, "v:a")
		}
	}
	if calls != 1 {
		t.Errorf("%d invocations, want 1", calls)
	}

	stats := g.Stats()
	if stats.Misses != 1 || stats.Hits != 2 {
		t.Errorf("Stats = %+v, want 1 miss, 2 hits", stats)
	}
}

func TestSharedGroupErrorNotCached(t *testing.T) {
	boom := errors.New("boom")
	var calls int
	g := NewShared(func(key string) (int, error) {
		calls++
		if calls == 1 {
			return 0, boom
		}
		return 42, nil
	}, nil)
	defer g.Close()

	if _, err := g.Do("k"); !errors.Is(err, boom) {
		t.Fatalf("first Do: err = %v, want boom", err)
	}
	got, err := g.Do("k")
	if err != nil {
		t.Fatalf("second Do: %v", err)
	}
	if got != 42 {
		t.Errorf("second Do = %d, want 42", got)
	}
	if calls != 2 {
		t.Errorf("%d invocations, want 2 (error retried)", calls)
	}
	if g.Stats().Errors != 1 {
		t.Errorf("Errors = %d, want 1", g.Stats().Errors)
	}
}

func TestSharedGroupCollapsesConcurrentCalls(t *testing.T) {
	const waiters = 50

	var calls int64
	var once sync.Once
	entered := make(chan struct{})
	release := make(chan struct{})
	g := NewShared(func(key string) (string, error) {
		atomic.AddInt64(&calls, 1)
		once.Do(func() { close(entered) })
		<-release
		return "shared", nil
	}, nil)
	defer g.Close()

	var wg sync.WaitGroup
	results := make([]string, waiters)
	for i := range waiters {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := g.Do("key")
			if err != nil {
				t.Error(err)
				return
			}
			results[i] = v
		}()
	}

	<-entered
	close(release)
	wg.Wait()

	if calls != 1 {
		t.Errorf("%d invocations for one key under concurrency, want 1", calls)
	}
	for i, v := range results {
		if v != "shared" {
			t.Errorf("caller %d got %q, want %q", i, v, "shared")
		}
	}
}

func TestSharedGroupBoundedStore(t *testing.T) {
	var calls int64
	g := NewShared(func(key string) (string, error) {
		atomic.AddInt64(&calls, 1)
		return key, nil
	}, NewLRUStore[string, string](2))
	defer g.Close()

	for _, k := range []string{"a", "b", "c", "a"} {
		if _, err := g.Do(k); err != nil {
			t.Fatal(err)
		}
	}
	if calls != 4 {
		t.Errorf("%d invocations, want 4 (oldest key evicted)", calls)
	}
}
