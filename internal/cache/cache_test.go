package cache

import (
	"errors"
	"fmt"
	"sort"
	"testing"
)

func TestUnbounded_PutGet(t *testing.T) {
	c := NewUnbounded[int](nil)

	c.Put("a", 1)
	c.Put("b", 2)

	got, err := c.Get("a")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != 1 {
		t.Errorf("Get(a): got %d, want 1", got)
	}

	// Overwrite
	c.Put("a", 10)
	got, _ = c.Get("a")
	if got != 10 {
		t.Errorf("Get(a) after overwrite: got %d, want 10", got)
	}
}

func TestUnbounded_GetMissing(t *testing.T) {
	c := NewUnbounded[int](nil)

	_, err := c.Get("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing): got %v, want ErrNotFound", err)
	}

	_, err = c.GetShallow("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetShallow(missing): got %v, want ErrNotFound", err)
	}
}

func TestUnbounded_NeverEvicts(t *testing.T) {
	c := NewUnbounded[int](nil)

	const n = 10000
	for i := 0; i < n; i++ {
		c.Put(fmt.Sprintf("key-%d", i), i)
	}

	if got := len(c.Keys()); got != n {
		t.Errorf("Keys length: got %d, want %d", got, n)
	}
	for _, probe := range []int{0, n / 2, n - 1} {
		if !c.Contains(fmt.Sprintf("key-%d", probe)) {
			t.Errorf("key-%d missing after %d inserts", probe, n)
		}
	}
}

func TestUnbounded_RemoveAndClear(t *testing.T) {
	c := NewUnbounded[int](nil)
	c.Put("a", 1)
	c.Put("b", 2)

	c.Remove("a")
	if c.Contains("a") {
		t.Error("a should be removed")
	}
	c.Remove("a") // absent key: no-op

	c.Clear()
	if len(c.Keys()) != 0 {
		t.Errorf("Keys after Clear: got %v, want empty", c.Keys())
	}
}

func TestUnbounded_KeysUnordered(t *testing.T) {
	c := NewUnbounded[int](nil)
	want := []string{"a", "b", "c"}
	for i, k := range want {
		c.Put(k, i)
	}

	got := c.Keys()
	sort.Strings(got)
	if len(got) != len(want) {
		t.Fatalf("Keys: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys[%d]: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestCloneSemantics(t *testing.T) {
	clone := func(s []int) []int {
		out := make([]int, len(s))
		copy(out, s)
		return out
	}

	caches := map[string]Cache[[]int]{
		"unbounded": NewUnbounded[[]int](clone),
		"lru":       NewLRU[[]int](4, clone),
	}

	for name, c := range caches {
		t.Run(name, func(t *testing.T) {
			stored := []int{1, 2, 3}
			c.Put("k", stored)

			deep, err := c.Get("k")
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			deep[0] = 99

			shallow, err := c.GetShallow("k")
			if err != nil {
				t.Fatalf("GetShallow failed: %v", err)
			}
			if shallow[0] != 1 {
				t.Errorf("deep copy mutation leaked into cache: got %d, want 1", shallow[0])
			}

			// Shallow result shares the backing array.
			shallow[1] = 42
			again, _ := c.GetShallow("k")
			if again[1] != 42 {
				t.Errorf("GetShallow should share storage: got %d, want 42", again[1])
			}
		})
	}
}
