// Package cache provides a thread-safe LRU cache for compiled gotox programs.
//
// The cache is used by gotox.Interpreter when the WithCaching option is enabled.
// It avoids re-scanning and re-parsing the same source on every call, which
// pays off when scripts or REPL snippets are executed repeatedly.
//
// # Example
//
//	c := cache.New(1024)
//	key := cache.Key{Name: "main.lox", Source: src}
//	prog, err := c.GetOrCompile(key, func() (*types.Program, error) {
//	    return parser.Compile(src, parser.WithSourceName(key.Name))
//	})
package cache

import (
	"container/list"
	"sync"

	"github.com/sandrolain/gotox/pkg/types"
)

// DefaultCapacity is used when New is given a non-positive capacity.
const DefaultCapacity = 256

// Key identifies a compiled program. The same text compiled under two names
// yields two programs, since diagnostics and Program.Name differ.
type Key struct {
	Name   string
	Source string
}

// KeyOf returns the key under which prog would be cached.
func KeyOf(prog *types.Program) Key {
	return Key{Name: prog.Name(), Source: prog.Source()}
}

// Stats counts cache traffic since creation or the last Clear.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

type entry struct {
	key  Key
	prog *types.Program
}

// Cache is an LRU of compiled programs. Once the capacity is reached, the
// least recently used entry is evicted.
//
// Safe for concurrent use by multiple goroutines.
type Cache struct {
	mu       sync.RWMutex
	capacity int
	order    *list.List // front is most recent
	items    map[Key]*list.Element
	stats    Stats
}

// New creates a cache holding at most capacity programs.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[Key]*list.Element, capacity),
	}
}

// Get returns the program stored under key and marks it most recently used.
func (c *Cache) Get(key Key) (*types.Program, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		c.stats.Misses++
		return nil, false
	}
	c.stats.Hits++
	c.order.MoveToFront(el)
	return el.Value.(*entry).prog, true
}

// Set stores prog under key, evicting the least recently used entry when
// the cache is full.
func (c *Cache) Set(key Key, prog *types.Program) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		el.Value.(*entry).prog = prog
		c.order.MoveToFront(el)
		return
	}
	for c.order.Len() >= c.capacity {
		c.removeLocked(c.order.Back())
		c.stats.Evictions++
	}
	c.items[key] = c.order.PushFront(&entry{key: key, prog: prog})
}

// GetOrCompile returns the cached program for key, or compiles and stores
// it. Failed compilations are not cached; concurrent misses may compile
// twice.
func (c *Cache) GetOrCompile(key Key, compile func() (*types.Program, error)) (*types.Program, error) {
	if prog, ok := c.Get(key); ok {
		return prog, nil
	}
	prog, err := compile()
	if err != nil {
		return nil, err
	}
	c.Set(key, prog)
	return prog, nil
}

// Len returns the number of cached programs.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.order.Len()
}

// Capacity returns the maximum number of cached programs.
func (c *Cache) Capacity() int {
	return c.capacity
}

// Stats returns a snapshot of the traffic counters.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// Invalidate drops the program stored under key, if any.
func (c *Cache) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.removeLocked(el)
	}
}

// Clear drops every program and resets the counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	clear(c.items)
	c.stats = Stats{}
}

func (c *Cache) removeLocked(el *list.Element) {
	c.order.Remove(el)
	delete(c.items, el.Value.(*entry).key)
}
