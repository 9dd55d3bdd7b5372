// Package query is a small cache of remote query results keyed by name.
//
// Readers fetch through the cache and subscribe to invalidations. Writers
// never touch cached data directly: after a mutation they call Invalidate and
// every subscriber refetches on its own schedule.
package query

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/julianstephens/keepmoving/internal/logger"
)

// Key identifies a cached query result
type Key string

type entry struct {
	data          any
	stale         bool
	updatedAt     time.Time
	invalidations int
	// generation changes on every Invalidate so loads that started before it
	// cannot mark the entry fresh
	generation uint64
}

// Client holds cached query results. It is safe for concurrent use.
type Client struct {
	mu          sync.Mutex
	entries     map[Key]*entry
	subscribers map[int]chan Key
	nextSubID   int
	group       singleflight.Group
}

// NewClient creates an empty cache
func NewClient() *Client {
	return &Client{
		entries:     make(map[Key]*entry),
		subscribers: make(map[int]chan Key),
	}
}

// Invalidate marks the data under key as stale and tells every subscriber.
// Keys that were never fetched are still announced so late readers refetch.
func (c *Client) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	e.stale = true
	e.invalidations++
	e.generation++

	logger.Debug("query invalidated", "key", key)

	// Sends happen under the lock so a concurrent cancel cannot close a channel mid-send
	for _, ch := range c.subscribers {
		select {
		case ch <- key:
		default:
			// A full buffer already holds a pending refetch signal
			logger.Debug("dropped invalidation for busy subscriber", "key", key)
		}
	}
}

// Invalidations returns how many times key has been invalidated
func (c *Client) Invalidations(key Key) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		return e.invalidations
	}
	return 0
}

// Set stores fresh data under key
func (c *Client) Set(key Key, data any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	e.data = data
	e.stale = false
	e.updatedAt = time.Now()
}

// generation returns the current generation of key
func (c *Client) generation(key Key) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		return e.generation
	}
	return 0
}

// store keeps data loaded at generation gen. The entry only becomes fresh if
// no invalidation happened while the load was running.
func (c *Client) store(key Key, data any, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	if e.generation != gen {
		logger.Debug("discarded load superseded by invalidation", "key", key)
		if e.data == nil {
			e.data = data
		}
		return
	}
	e.data = data
	e.stale = false
	e.updatedAt = time.Now()
}

// Get returns the cached data and whether it is still fresh
func (c *Client) Get(key Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || e.data == nil {
		return nil, false
	}
	return e.data, !e.stale
}

// IsStale reports whether key has no data or was invalidated since its last fetch
func (c *Client) IsStale(key Key) bool {
	_, fresh := c.Get(key)
	return !fresh
}

// UpdatedAt returns when key was last stored
func (c *Client) UpdatedAt(key Key) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		return e.updatedAt
	}
	return time.Time{}
}

// Subscribe returns a channel that receives invalidated keys and a function
// that stops the subscription.
func (c *Client) Subscribe() (<-chan Key, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSubID
	c.nextSubID++
	ch := make(chan Key, 8)
	c.subscribers[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subscribers, id)
			c.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Fetch returns fresh cached data for key or calls fn to load it.
// Concurrent fetches of the same key share a single call to fn, as long as
// no invalidation separates them.
func Fetch[T any](ctx context.Context, c *Client, key Key, fn func(context.Context) (T, error)) (T, error) {
	if data, fresh := c.Get(key); fresh {
		if v, ok := data.(T); ok {
			return v, nil
		}
	}

	gen := c.generation(key)
	v, err, _ := c.group.Do(fmt.Sprintf("%s#%d", key, gen), func() (any, error) {
		result, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		c.store(key, result, gen)
		return result, nil
	})
	if err != nil {
		var zero T
		return zero, fmt.Errorf("query %s: %w", key, err)
	}

	result, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("query %s: cached %T is not %T", key, v, zero)
	}
	return result, nil
}

// Loader fetches one key into the cache
type Loader func(ctx context.Context) error

// RefetchAll runs every loader concurrently and returns the first error
func RefetchAll(ctx context.Context, loaders ...Loader) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, load := range loaders {
		g.Go(func() error {
			return load(gctx)
		})
	}
	return g.Wait()
}
