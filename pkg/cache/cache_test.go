package cache_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/sandrolain/gotox/pkg/cache"
	"github.com/sandrolain/gotox/pkg/parser"
	"github.com/sandrolain/gotox/pkg/types"
)

func mustCompile(t *testing.T, src string) *types.Program {
	t.Helper()
	prog, err := parser.Compile(src)
	if err != nil {
		t.Fatalf("Compile(%q): %v", src, err)
	}
	return prog
}

func keyFor(src string) cache.Key {
	return cache.Key{Source: src}
}

func TestCacheNew(t *testing.T) {
	c := cache.New(10)
	if got := c.Len(); got != 0 {
		t.Fatalf("expected empty cache, got %d", got)
	}
	if got := c.Capacity(); got != 10 {
		t.Fatalf("expected capacity 10, got %d", got)
	}
}

func TestCacheDefaultCapacity(t *testing.T) {
	c := cache.New(0)
	if got := c.Capacity(); got != 256 {
		t.Fatalf("expected default capacity 256, got %d", got)
	}
}

func TestCacheSetGet(t *testing.T) {
	c := cache.New(4)
	prog := mustCompile(t, "print 1;")
	c.Set(keyFor("print 1;"), prog)
	if got := c.Len(); got != 1 {
		t.Fatalf("expected 1 entry, got %d", got)
	}
	got, ok := c.Get(keyFor("print 1;"))
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got != prog {
		t.Fatal("expected same program pointer")
	}
}

func TestCacheMiss(t *testing.T) {
	c := cache.New(4)
	if _, ok := c.Get(keyFor("missing")); ok {
		t.Fatal("expected cache miss")
	}
}

func TestCacheLRUEviction(t *testing.T) {
	c := cache.New(3)
	for _, k := range []string{"a", "b", "c", "d"} {
		c.Set(keyFor(k), mustCompile(t, "var x;"))
	}
	if got := c.Len(); got != 3 {
		t.Fatalf("expected 3 entries after eviction, got %d", got)
	}
	if _, ok := c.Get(keyFor("a")); ok {
		t.Fatal(`expected "a" to be evicted (LRU)`)
	}
	if _, ok := c.Get(keyFor("d")); !ok {
		t.Fatal(`expected most-recently-inserted "d" to survive`)
	}
}

func TestCacheGetPromotes(t *testing.T) {
	c := cache.New(2)
	c.Set(keyFor("a"), mustCompile(t, "1;"))
	c.Set(keyFor("b"), mustCompile(t, "2;"))
	c.Get(keyFor("a")) // a is now most recent
	c.Set(keyFor("c"), mustCompile(t, "3;"))

	if _, ok := c.Get(keyFor("b")); ok {
		t.Fatal(`expected "b" to be evicted`)
	}
	if _, ok := c.Get(keyFor("a")); !ok {
		t.Fatal(`expected promoted "a" to survive`)
	}
}

func TestCacheInvalidate(t *testing.T) {
	c := cache.New(4)
	c.Set(keyFor("k"), mustCompile(t, "var x;"))
	c.Invalidate(keyFor("k"))
	if _, ok := c.Get(keyFor("k")); ok {
		t.Fatal("expected miss after Invalidate")
	}
}

func TestCacheClear(t *testing.T) {
	c := cache.New(4)
	for _, k := range []string{"a", "b", "c"} {
		c.Set(keyFor(k), mustCompile(t, "var x;"))
	}
	c.Clear()
	if got := c.Len(); got != 0 {
		t.Fatalf("expected 0 after Clear, got %d", got)
	}
}

func TestCacheGetOrCompile(t *testing.T) {
	c := cache.New(4)
	callCount := 0
	compileFn := func() (*types.Program, error) {
		callCount++
		return parser.Compile("print 2 * 3;")
	}

	prog1, err := c.GetOrCompile(keyFor("print 2 * 3;"), compileFn)
	if err != nil || prog1 == nil {
		t.Fatalf("first GetOrCompile: %v", err)
	}
	if callCount != 1 {
		t.Fatalf("expected 1 compile call, got %d", callCount)
	}

	prog2, err := c.GetOrCompile(keyFor("print 2 * 3;"), compileFn)
	if err != nil || prog2 == nil {
		t.Fatalf("second GetOrCompile: %v", err)
	}
	if callCount != 1 {
		t.Fatalf("expected still 1 call (cached), got %d", callCount)
	}
	if prog1 != prog2 {
		t.Fatal("expected same pointer from cache")
	}
}

func TestCacheGetOrCompileErrorNotCached(t *testing.T) {
	c := cache.New(4)
	callCount := 0
	compileFn := func() (*types.Program, error) {
		callCount++
		return parser.Compile("print ;")
	}

	for i := 0; i < 2; i++ {
		prog, err := c.GetOrCompile(keyFor("print ;"), compileFn)
		if err == nil {
			t.Fatal("expected compile error")
		}
		var agg *types.AggregateError
		if !errors.As(err, &agg) {
			t.Fatalf("expected *types.AggregateError, got %T", err)
		}
		if prog != nil {
			t.Fatal("expected nil program on error")
		}
	}
	if callCount != 2 {
		t.Fatalf("expected 2 compile calls, got %d", callCount)
	}
	if c.Len() != 0 {
		t.Fatalf("expected empty cache, got %d", c.Len())
	}
}

func TestCacheSetUpdate(t *testing.T) {
	c := cache.New(4)
	prog1 := mustCompile(t, "var a;")
	prog2 := mustCompile(t, "var b;")
	c.Set(keyFor("k"), prog1)
	c.Set(keyFor("k"), prog2) // overwrite
	got, ok := c.Get(keyFor("k"))
	if !ok {
		t.Fatal("expected hit after overwrite")
	}
	if got != prog2 {
		t.Fatal("expected updated program pointer")
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 entry after overwrite, got %d", c.Len())
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := cache.New(8)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				src := fmt.Sprintf("print %d;", (g+i)%16)
				if _, err := c.GetOrCompile(keyFor(src), func() (*types.Program, error) {
					return parser.Compile(src)
				}); err != nil {
					t.Error(err)
					return
				}
			}
		}(g)
	}
	wg.Wait()

	if got := c.Len(); got > c.Capacity() {
		t.Fatalf("cache grew past capacity: %d > %d", got, c.Capacity())
	}
}

func TestCacheKeyIncludesName(t *testing.T) {
	c := cache.New(4)
	a, err := parser.Compile("print 1;", parser.WithSourceName("a.lox"))
	if err != nil {
		t.Fatal(err)
	}
	c.Set(cache.KeyOf(a), a)

	if _, ok := c.Get(cache.Key{Name: "b.lox", Source: "print 1;"}); ok {
		t.Fatal("same source under another name must miss")
	}
	got, ok := c.Get(cache.Key{Name: "a.lox", Source: "print 1;"})
	if !ok || got != a {
		t.Fatal("expected the program compiled as a.lox")
	}
}

func TestCacheStats(t *testing.T) {
	c := cache.New(2)
	c.Get(keyFor("a"))
	c.Set(keyFor("a"), mustCompile(t, "1;"))
	c.Get(keyFor("a"))
	c.Set(keyFor("b"), mustCompile(t, "2;"))
	c.Set(keyFor("c"), mustCompile(t, "3;"))

	want := cache.Stats{Hits: 1, Misses: 1, Evictions: 1}
	if got := c.Stats(); got != want {
		t.Fatalf("stats = %+v, want %+v", got, want)
	}

	c.Clear()
	if got := c.Stats(); got != (cache.Stats{}) {
		t.Fatalf("stats after Clear = %+v", got)
	}
}
