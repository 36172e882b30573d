package memoize

import (
	"strings"
	"testing"
)

type point struct {
	X, Y int
}

func TestKeyOfDeepEquality(t *testing.T) {
	tests := []struct {
		name string
		a    []any
		b    []any
	}{
		{"ints", []any{1, 2}, []any{1, 2}},
		{"strings", []any{"a", "b"}, []any{"a", "b"}},
		{"slices", []any{[]int{1, 2, 3}}, []any{[]int{1, 2, 3}}},
		{"nested slices", []any{[][]string{{"x"}, {"y"}}}, []any{[][]string{{"x"}, {"y"}}}},
		{"structs", []any{point{1, 2}}, []any{point{1, 2}}},
		{"single-entry maps", []any{map[string]int{"a": 1}}, []any{map[string]int{"a": 1}}},
		{"mixed", []any{"id", []int{7}, point{3, 4}}, []any{"id", []int{7}, point{3, 4}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ka, err := KeyOf(tc.a...)
			if err != nil {
				t.Fatal(err)
			}
			kb, err := KeyOf(tc.b...)
			if err != nil {
				t.Fatal(err)
			}
			if ka != kb {
				t.Errorf("deeply equal arguments produced different keys")
			}
		})
	}
}

func TestKeyOfDistinguishes(t *testing.T) {
	tests := []struct {
		name string
		a    []any
		b    []any
	}{
		{"values", []any{1}, []any{2}},
		{"order", []any{1, 2}, []any{2, 1}},
		{"slice contents", []any{[]int{1, 2}}, []any{[]int{1, 3}}},
		{"slice lengths", []any{[]int{1}}, []any{[]int{1, 1}}},
		{"struct fields", []any{point{1, 2}}, []any{point{2, 1}}},
		{"arity", []any{1}, []any{1, 1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ka, err := KeyOf(tc.a...)
			if err != nil {
				t.Fatal(err)
			}
			kb, err := KeyOf(tc.b...)
			if err != nil {
				t.Fatal(err)
			}
			if ka == kb {
				t.Errorf("distinct arguments produced the same key")
			}
		})
	}
}

func TestKeyOfUnencodable(t *testing.T) {
	_, err := KeyOf(func() {})
	if err == nil {
		t.Fatal("expected error for function argument")
	}
	if !strings.Contains(err.Error(), "argument 0") {
		t.Errorf("error %q does not name the failing argument", err)
	}

	_, err = KeyOf("fine", make(chan int))
	if err == nil {
		t.Fatal("expected error for channel argument")
	}
	if !strings.Contains(err.Error(), "argument 1") {
		t.Errorf("error %q does not name the failing argument", err)
	}
}

func TestKeyOfDeterministic(t *testing.T) {
	args := []any{"user", 42, []string{"a", "b"}}

	first, err := KeyOf(args...)
	if err != nil {
		t.Fatal(err)
	}
	for range 10 {
		k, err := KeyOf(args...)
		if err != nil {
			t.Fatal(err)
		}
		if k != first {
			t.Fatal("repeated KeyOf over the same arguments diverged")
		}
	}
}

func TestHash64(t *testing.T) {
	a := Hash64("alpha")
	if a != Hash64("alpha") {
		t.Error("Hash64 not deterministic")
	}
	if a == Hash64("beta") {
		t.Error("distinct keys hashed identically")
	}
}

func TestKeyOfWithSharedGroup(t *testing.T) {
	var calls int
	g := NewShared(func(key string) (int, error) {
		calls++
		return len(key), nil
	}, nil)
	defer g.Close()

	key, err := KeyOf([]int{1, 2, 3}, "label")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := g.Do(key); err != nil {
		t.Fatal(err)
	}

	// An equal argument list reaches the cached entry.
	again, err := KeyOf([]int{1, 2, 3}, "label")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := g.Do(again); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("%d invocations, want 1", calls)
	}
}
