package memoize

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
)

func TestComputesOncePerKey(t *testing.T) {
	var calls int64
	square := func(n int) (int, error) {
		atomic.AddInt64(&calls, 1)
		return n * n, nil
	}

	m := New(square)
	defer m.Close()

	for range 3 {
		got, err := m.Do(4)
		if err != nil {
			t.Fatal(err)
		}
		if got != 16 {
			t.Errorf("Do(4) = %d, want 16", got)
		}
	}
	if calls != 1 {
		t.Errorf("after repeated Do(4): %d invocations, want 1", calls)
	}

	got, err := m.Do(5)
	if err != nil {
		t.Fatal(err)
	}
	if got != 25 {
		t.Errorf("Do(5) = %d, want 25", got)
	}
	if calls != 2 {
		t.Errorf("after Do(5): %d invocations, want 2", calls)
	}
}

func TestDistinctKeysDistinctResults(t *testing.T) {
	m := New(func(k string) (string, error) { return "v:" + k, nil })
	defer m.Close()

	for _, k := range []string{"a", "b", "c"} {
		got, err := m.Do(k)
		if err != nil {
			t.Fatal(err)
		}
		if got != "v:"+k {
			t.Errorf("Do(%q) = %q, want %q", k, got, "v:"+k)
		}
	}
}

func TestErrorsPropagateAndAreNotCached(t *testing.T) {
	boom := errors.New("boom")
	var calls int
	m := New(func(k int) (int, error) {
		calls++
		if calls == 1 {
			return 0, boom
		}
		return k * 2, nil
	})
	defer m.Close()

	if _, err := m.Do(7); !errors.Is(err, boom) {
		t.Fatalf("first Do(7): err = %v, want boom", err)
	}

	// The failure must not be cached: the next call retries.
	got, err := m.Do(7)
	if err != nil {
		t.Fatalf("second Do(7): %v", err)
	}
	if got != 14 {
		t.Errorf("second Do(7) = %d, want 14", got)
	}
	if calls != 2 {
		t.Errorf("%d invocations, want 2 (error retried)", calls)
	}

	stats := m.Stats()
	if stats.Errors != 1 {
		t.Errorf("Stats().Errors = %d, want 1", stats.Errors)
	}
}

func TestConcurrentCallsInvokeOnce(t *testing.T) {
	const waiters = 50

	var calls int64
	entered := make(chan struct{})
	release := make(chan struct{})
	m := New(func(k string) (string, error) {
		atomic.AddInt64(&calls, 1)
		close(entered)
		<-release
		return "result", nil
	})
	defer m.Close()

	var wg sync.WaitGroup
	results := make([]string, waiters)
	errs := make([]error, waiters)
	for i := range waiters {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = m.Do("key")
		}()
	}

	// Release the leader only once it is inside the function, so every other
	// goroutine has either joined the in-flight call or is about to.
	<-entered
	close(release)
	wg.Wait()

	if calls != 1 {
		t.Errorf("%d invocations for one key under concurrency, want 1", calls)
	}
	for i := range waiters {
		if errs[i] != nil {
			t.Fatalf("caller %d: %v", i, errs[i])
		}
		if results[i] != "result" {
			t.Errorf("caller %d got %q, want %q", i, results[i], "result")
		}
	}
}

func TestConcurrentErrorSharedWithWaiters(t *testing.T) {
	boom := errors.New("boom")
	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	// Errors are not cached, so a goroutine scheduled after the leader fails
	// re-invokes the function; only the first entry signals.
	m := New(func(k string) (string, error) {
		once.Do(func() { close(entered) })
		<-release
		return "", boom
	})
	defer m.Close()

	const waiters = 10
	var wg sync.WaitGroup
	errs := make([]error, waiters)
	for i := range waiters {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = m.Do("key")
		}()
	}

	<-entered
	close(release)
	wg.Wait()

	for i, err := range errs {
		if !errors.Is(err, boom) {
			t.Errorf("caller %d: err = %v, want boom", i, err)
		}
	}
}

func TestWithCapacityEvicts(t *testing.T) {
	var calls int64
	m := New(func(k int) (int, error) {
		atomic.AddInt64(&calls, 1)
		return k, nil
	}, WithCapacity[int, int](2))
	defer m.Close()

	// Fill beyond capacity, then revisit the oldest key.
	for _, k := range []int{1, 2, 3} {
		if _, err := m.Do(k); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := m.Do(1); err != nil {
		t.Fatal(err)
	}

	if calls != 4 {
		t.Errorf("%d invocations, want 4 (key 1 evicted and recomputed)", calls)
	}
}

func TestWithStore(t *testing.T) {
	st := NewMapStore[string, int]()
	m := New(func(k string) (int, error) { return len(k), nil }, WithStore(st))
	defer m.Close()

	if _, err := m.Do("hello"); err != nil {
		t.Fatal(err)
	}
	if v, ok := st.Get("hello"); !ok || v != 5 {
		t.Errorf("injected store: got (%d, %v), want (5, true)", v, ok)
	}
}

func TestStats(t *testing.T) {
	m := New(func(k int) (int, error) { return k, nil })
	defer m.Close()

	for range 3 {
		if _, err := m.Do(1); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := m.Do(2); err != nil {
		t.Fatal(err)
	}

	stats := m.Stats()
	if stats.Misses != 2 {
		t.Errorf("Misses = %d, want 2", stats.Misses)
	}
	if stats.Hits != 2 {
		t.Errorf("Hits = %d, want 2", stats.Hits)
	}
	if got, want := stats.HitRate(), 50.0; got != want {
		t.Errorf("HitRate() = %v, want %v", got, want)
	}
}

func TestHitRateEmpty(t *testing.T) {
	if got := (Stats{}).HitRate(); got != 0 {
		t.Errorf("HitRate() on zero stats = %v, want 0", got)
	}
}

func TestWrap(t *testing.T) {
	var calls int64
	double := Wrap(func(n int) int {
		atomic.AddInt64(&calls, 1)
		return n * 2
	})

	if got := double(21); got != 42 {
		t.Errorf("double(21) = %d, want 42", got)
	}
	if got := double(21); got != 42 {
		t.Errorf("double(21) = %d, want 42", got)
	}
	if calls != 1 {
		t.Errorf("%d invocations, want 1", calls)
	}
}

func TestWrapErr(t *testing.T) {
	boom := errors.New("boom")
	var calls int
	f := WrapErr(func(k string) (string, error) {
		calls++
		if k == "bad" {
			return "", boom
		}
		return "ok:" + k, nil
	})

	if _, err := f("bad"); !errors.Is(err, boom) {
		t.Fatalf("f(bad): err = %v, want boom", err)
	}
	if _, err := f("bad"); !errors.Is(err, boom) {
		t.Fatalf("f(bad) retry: err = %v, want boom", err)
	}
	if calls != 2 {
		t.Errorf("%d invocations, want 2 (errors never cached)", calls)
	}

	got, err := f("good")
	if err != nil {
		t.Fatal(err)
	}
	if got != "ok:good" {
		t.Errorf("f(good) = %q, want %q", got, "ok:good")
	}
}

func TestWrap2(t *testing.T) {
	var calls int64
	concat := Wrap2(func(a string, b int) string {
		atomic.AddInt64(&calls, 1)
		return fmt.Sprintf("%s-%d", a, b)
	})

	if got := concat("x", 1); got != "x-1" {
		t.Errorf("concat(x, 1) = %q, want %q", got, "x-1")
	}
	if got := concat("x", 1); got != "x-1" {
		t.Errorf("concat(x, 1) = %q, want %q", got, "x-1")
	}
	if got := concat("x", 2); got != "x-2" {
		t.Errorf("concat(x, 2) = %q, want %q", got, "x-2")
	}
	if calls != 2 {
		t.Errorf("%d invocations, want 2", calls)
	}
}

func TestWrap3(t *testing.T) {
	var calls int64
	sum := Wrap3(func(a, b, c int) int {
		atomic.AddInt64(&calls, 1)
		return a + b + c
	})

	if got := sum(1, 2, 3); got != 6 {
		t.Errorf("sum(1,2,3) = %d, want 6", got)
	}
	if got := sum(1, 2, 3); got != 6 {
		t.Errorf("sum(1,2,3) = %d, want 6", got)
	}
	// Same values in a different argument order is a different key.
	if got := sum(3, 2, 1); got != 6 {
		t.Errorf("sum(3,2,1) = %d, want 6", got)
	}
	if calls != 2 {
		t.Errorf("%d invocations, want 2", calls)
	}
}

func TestConcurrentMixedKeys(t *testing.T) {
	m := New(func(k int) (int, error) { return k * k, nil })
	defer m.Close()

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			k := i % 10
			got, err := m.Do(k)
			if err != nil {
				t.Error(err)
				return
			}
			if got != k*k {
				t.Errorf("Do(%d) = %d, want %d", k, got, k*k)
			}
		}()
	}
	wg.Wait()

	stats := m.Stats()
	if stats.Misses != 10 {
		t.Errorf("Misses = %d, want 10 (one per distinct key)", stats.Misses)
	}
}
