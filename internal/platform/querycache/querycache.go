// Package querycache keeps read results the UI layers reuse between requests,
// keyed the way the front end keys its queries: a scope plus optional
// parameters. Mutations invalidate whole scopes so the next read refetches.
package querycache

import (
	"strings"
	"sync"
)

// Key identifies a cached read. Scope is the invalidation unit; Params narrow
// it (e.g. an event id).
type Key struct {
	Scope  string
	Params []string
}

// NewKey builds a key for scope with params.
func NewKey(scope string, params ...string) Key {
	return Key{Scope: scope, Params: params}
}

func (k Key) String() string {
	if len(k.Params) == 0 {
		return k.Scope
	}
	return k.Scope + "/" + strings.Join(k.Params, "/")
}

// InvalidationHook observes scope invalidations (metrics, logging).
type InvalidationHook func(scope string)

// Cache is a concurrency-safe map of keys to values grouped by scope. Each
// scope carries a generation that Invalidate bumps, so a read that started
// before an invalidation cannot store its result after it.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]map[string]any
	gens    map[string]uint64
	onInval InvalidationHook
}

// Option configures a Cache.
type Option func(*Cache)

// WithInvalidationHook registers fn to be called on every Invalidate.
func WithInvalidationHook(fn InvalidationHook) Option {
	return func(c *Cache) {
		c.onInval = fn
	}
}

// New returns an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]map[string]any),
		gens:    make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached value for key.
func (c *Cache) Get(key Key) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	scope, ok := c.entries[key.Scope]
	if !ok {
		return nil, false
	}
	v, ok := scope[key.String()]
	return v, ok
}

// Generation returns the current generation of scope.
func (c *Cache) Generation(scope string) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gens[scope]
}

// Set stores value under key.
func (c *Cache) Set(key Key, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store(key, value)
}

// SetIfCurrent stores value under key only while the key's scope is still at
// generation gen. It reports whether the value was stored.
func (c *Cache) SetIfCurrent(key Key, value any, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[key.Scope] != gen {
		return false
	}
	c.store(key, value)
	return true
}

func (c *Cache) store(key Key, value any) {
	scope, ok := c.entries[key.Scope]
	if !ok {
		scope = make(map[string]any)
		c.entries[key.Scope] = scope
	}
	scope[key.String()] = value
}

// Invalidate drops every entry in the given scopes. Invalidating an empty or
// already-invalidated scope is a no-op.
func (c *Cache) Invalidate(scopes ...string) {
	c.mu.Lock()
	for _, s := range scopes {
		delete(c.entries, s)
		c.gens[s]++
	}
	c.mu.Unlock()

	if c.onInval != nil {
		for _, s := range scopes {
			c.onInval(s)
		}
	}
}

// Lookup returns the cached T for key, or calls fetch and caches its result.
// Errors are never cached, and neither is a result whose scope was
// invalidated while fetch ran.
func Lookup[T any](c *Cache, key Key, fetch func() (T, error)) (T, error) {
	var gen uint64
	if c != nil {
		gen = c.Generation(key.Scope)
		if v, ok := c.Get(key); ok {
			if typed, ok := v.(T); ok {
				return typed, nil
			}
		}
	}
	v, err := fetch()
	if err != nil {
		var zero T
		return zero, err
	}
	if c != nil {
		c.SetIfCurrent(key, v, gen)
	}
	return v, nil
}
