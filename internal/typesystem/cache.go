package typesystem

import (
	"strconv"
	"sync"
)

// Cache memoizes the pure operations by the structural identity of their
// inputs; String doubles as the structural key, so two shapes that render
// identically share an entry. Safe for concurrent use: each key is
// computed at most once, and concurrent callers for the same key block
// until the first computation lands.
//
// Element-assignability verdicts depend on the ElemAssigner, so a Cache
// must not be shared across assigners. Nothing here is global: each
// analysis owns its Cache explicitly.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	once     sync.Once
	typ      Type
	failures []Failure
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]*cacheEntry)}
}

// ElementAt memoizes ElementAt.
func (c *Cache) ElementAt(t Type, index int) (Type, []Failure) {
	e := c.entry("idx:" + t.String() + "@" + strconv.Itoa(index))
	e.once.Do(func() {
		e.typ, e.failures = ElementAt(t, index)
	})
	return e.typ, e.failures
}

// CheckAssignable memoizes CheckAssignable.
func (c *Cache) CheckAssignable(src, dst Type, ea ElemAssigner) []Failure {
	e := c.entry("asn:" + src.String() + "->" + dst.String())
	e.once.Do(func() {
		e.failures = CheckAssignable(src, dst, ea)
	})
	return e.failures
}

// Len reports how many distinct keys have been interned.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) entry(key string) *cacheEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		e = &cacheEntry{}
		c.entries[key] = e
	}
	return e
}
