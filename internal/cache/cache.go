// ABOUTME: In-memory query cache with per-key staleness and retention
// ABOUTME: Dedupes in-flight fetches and serves stale data while revalidating

package cache

import (
	"context"
	"sync"
	"time"
)

// TTL is a cache policy: how long data stays fresh, and how long an
// unused entry is retained before the janitor evicts it.
type TTL struct {
	Stale  time.Duration
	Retain time.Duration
}

// Windows by expected change frequency, matching the per-resource
// policies of the original client.
var (
	Short  = TTL{Stale: 2 * time.Minute, Retain: 5 * time.Minute}   // files, notes, tasks, exams
	Medium = TTL{Stale: 5 * time.Minute, Retain: 10 * time.Minute}  // courses, profile
	Long   = TTL{Stale: 30 * time.Minute, Retain: 60 * time.Minute} // reference data
)

// fetchTimeout bounds every network fetch the cache issues. Fetches
// run detached from the caller's context so a caller tearing down
// does not abort a refetch other readers will want.
const fetchTimeout = 30 * time.Second

const janitorInterval = time.Minute

// FetchFunc loads the authoritative value for a key.
type FetchFunc func(ctx context.Context) (any, error)

type inflight struct {
	done chan struct{}
	data any
	err  error
}

type entry struct {
	data      any
	hasData   bool
	fetchedAt time.Time
	lastUsed  time.Time
	ttl       TTL
	inflight  *inflight
}

// Cache is a process-wide query cache. It is constructed explicitly
// and injected; there is no package-level instance.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

// New creates a cache and starts its garbage-collection janitor.
func New() *Cache {
	c := &Cache{
		entries: make(map[string]*entry),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go c.janitor()
	return c
}

// Close stops the janitor. Entries become unreachable with the cache.
func (c *Cache) Close() {
	c.once.Do(func() { close(c.stop) })
}

// Get returns the value for key. An empty key fetches and blocks until
// the first response; a fresh key answers from memory; a stale key
// answers from memory and triggers one background refetch. A key is
// never in two fetches at once: concurrent readers join the in-flight
// request.
func (c *Cache) Get(ctx context.Context, key string, ttl TTL, fetch FetchFunc) (any, error) {
	c.mu.Lock()
	e := c.entries[key]
	if e == nil {
		e = &entry{}
		c.entries[key] = e
	}
	now := c.now()
	e.lastUsed = now
	e.ttl = ttl

	if e.hasData {
		if now.Sub(e.fetchedAt) >= ttl.Stale && e.inflight == nil {
			fl := &inflight{done: make(chan struct{})}
			e.inflight = fl
			go c.runFetch(key, fl, fetch)
		}
		data := e.data
		c.mu.Unlock()
		return data, nil
	}

	if e.inflight == nil {
		fl := &inflight{done: make(chan struct{})}
		e.inflight = fl
		go c.runFetch(key, fl, fetch)
	}
	fl := e.inflight
	c.mu.Unlock()

	select {
	case <-fl.done:
		return fl.data, fl.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Cache) runFetch(key string, fl *inflight, fetch FetchFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	data, err := fetch(ctx)

	c.mu.Lock()
	if e := c.entries[key]; e != nil && e.inflight == fl {
		e.inflight = nil
		if err == nil {
			e.data = data
			e.hasData = true
			e.fetchedAt = c.now()
		}
	}
	c.mu.Unlock()

	fl.data = data
	fl.err = err
	close(fl.done)
}

// Patch applies an optimistic write to a key under the given policy,
// so a patch-created entry carries its domain's retention window from
// the start. fn receives the current value, or nil when the key has
// never been fetched, and its result replaces the entry as fresh data.
// Last write wins; there is no version stamp.
func (c *Cache) Patch(key string, ttl TTL, fn func(old any) any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.entries[key]
	if e == nil {
		e = &entry{}
		c.entries[key] = e
	}
	e.ttl = ttl
	var old any
	if e.hasData {
		old = e.data
	}
	e.data = fn(old)
	e.hasData = true
	now := c.now()
	e.fetchedAt = now
	e.lastUsed = now
}

// Peek returns the cached value without touching staleness or issuing
// a fetch.
func (c *Cache) Peek(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entries[key]
	if e == nil || !e.hasData {
		return nil, false
	}
	return e.data, true
}

// Remove evicts a key. The local mirror is untouched.
func (c *Cache) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Len reports the number of resident entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.collect()
		}
	}
}

// collect evicts entries unused past their retention window. Entries
// with a fetch in flight are skipped.
func (c *Cache) collect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for key, e := range c.entries {
		if e.inflight != nil {
			continue
		}
		retain := e.ttl.Retain
		if retain == 0 {
			retain = Medium.Retain
		}
		if now.Sub(e.lastUsed) > retain {
			delete(c.entries, key)
		}
	}
}

// GetTyped is a typed wrapper over Get for callers that know the
// shape stored under a key.
func GetTyped[T any](ctx context.Context, c *Cache, key string, ttl TTL, fetch func(ctx context.Context) (T, error)) (T, error) {
	v, err := c.Get(ctx, key, ttl, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	var zero T
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, nil
	}
	return t, nil
}
