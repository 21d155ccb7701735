package query

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"
)

// ErrClosed is reported for queries registered after Close.
var ErrClosed = errors.New("query cache closed")

// Kind names a family of queries.
type Kind string

const (
	KindList   Kind = "pokemonList"
	KindDetail Kind = "pokemonDetails"
)

// Key identifies a cache entry. Two keys are the same entry iff both
// fields are equal.
type Key struct {
	Kind  Kind
	Param string
}

// ListKey returns the key of the collection query for a search term.
func ListKey(search string) Key {
	return Key{Kind: KindList, Param: search}
}

// DetailKey returns the key of the detail query for an entity name.
func DetailKey(name string) Key {
	return Key{Kind: KindDetail, Param: name}
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%q", k.Kind, k.Param)
}

// Status describes how far a query has resolved.
type Status int

const (
	StatusPending Status = iota
	StatusError
	StatusSuccess
)

func (s Status) String() string {
	switch s {
	case StatusError:
		return "error"
	case StatusSuccess:
		return "success"
	default:
		return "pending"
	}
}

// Result is a point-in-time view of a cache entry.
type Result struct {
	Key       Key
	Status    Status
	Data      any
	Err       error
	Enabled   bool
	UpdatedAt time.Time // entry creation, then settle time
}

// Settled reports whether the query reached success or error.
func (r Result) Settled() bool {
	return r.Status != StatusPending
}

// FetchFunc produces the value of a query. The context is the cache's
// lifetime context and is cancelled by Close.
type FetchFunc func(ctx context.Context) (any, error)

// Options tune a single Query call.
type Options struct {
	// Enabled gates the fetch. A disabled query issues no request and
	// stays pending.
	Enabled bool
}

// EnabledWhen is shorthand for Options{Enabled: cond}.
func EnabledWhen(cond bool) Options {
	return Options{Enabled: cond}
}

type entry struct {
	result Result
	done   chan struct{}
}

// Cache is a keyed store of in-flight and completed fetches. At most one
// fetch runs per key at a time; every caller interested in the key sees
// the same result.
type Cache struct {
	ctx    context.Context
	cancel context.CancelFunc
	logger *log.Logger
	group  singleflight.Group

	mu      sync.Mutex
	entries map[Key]*entry
	closed  bool
}

// CacheOption customises a Cache.
type CacheOption func(*Cache)

// WithLogger sets the logger used for fetch tracing.
func WithLogger(l *log.Logger) CacheOption {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a cache whose fetches run under ctx until Close.
func New(ctx context.Context, opts ...CacheOption) *Cache {
	if ctx == nil {
		ctx = context.Background()
	}
	cctx, cancel := context.WithCancel(ctx)
	c := &Cache{
		ctx:     cctx,
		cancel:  cancel,
		logger:  log.New(io.Discard),
		entries: make(map[Key]*entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Query registers interest in key. The first call for a key creates a
// pending entry and starts fetch; later calls return the entry as it
// stands without fetching again.
func (c *Cache) Query(key Key, fetch FetchFunc, opts Options) Result {
	if !opts.Enabled {
		return Result{Key: key, Status: StatusPending}
	}
	r, created := c.register(key)
	if created {
		_ = c.run(key, fetch)
	}
	return r
}

// Await returns the settled result for key, starting or joining the
// fetch as needed. It blocks until the entry settles or ctx is done.
func (c *Cache) Await(ctx context.Context, key Key, fetch FetchFunc) (Result, error) {
	r, _ := c.register(key)
	if r.Settled() {
		return r, r.Err
	}
	select {
	case <-ctx.Done():
		return r, ctx.Err()
	case <-c.run(key, fetch):
	}
	r, _ = c.Get(key)
	return r, r.Err
}

// Get returns the entry for key without registering interest.
func (c *Cache) Get(key Key) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return Result{Key: key, Status: StatusPending}, false
	}
	return e.result, true
}

// Done returns a channel closed once the entry for key settles, or nil
// when there is no entry.
func (c *Cache) Done(key Key) <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		return e.done
	}
	return nil
}

// Invalidate drops a settled entry so the next Query fetches again.
// Pending entries are left in place.
func (c *Cache) Invalidate(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || !e.result.Settled() {
		return false
	}
	delete(c.entries, key)
	// A call that settled the old entry may still be in the group.
	c.group.Forget(key.String())
	return true
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Close cancels in-flight fetches. Entries already present stay readable.
func (c *Cache) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.cancel()
}

func (c *Cache) register(key Key) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		return e.result, false
	}
	if c.closed {
		return Result{Key: key, Status: StatusError, Err: ErrClosed, Enabled: true}, false
	}
	e := &entry{
		result: Result{Key: key, Status: StatusPending, Enabled: true, UpdatedAt: time.Now()},
		done:   make(chan struct{}),
	}
	c.entries[key] = e
	return e.result, true
}

// run executes fetch through the singleflight group. A call that finds
// the entry already settled returns the stored value instead of fetching.
func (c *Cache) run(key Key, fetch FetchFunc) <-chan singleflight.Result {
	return c.group.DoChan(key.String(), func() (any, error) {
		if r, ok := c.Get(key); ok && r.Settled() {
			return r.Data, r.Err
		}
		start := time.Now()
		c.logger.Debug("query fetch", "key", key)
		v, err := fetch(c.ctx)
		c.settle(key, v, err)
		if err != nil {
			c.logger.Debug("query failed", "key", key, "err", err, "elapsed", time.Since(start).Round(time.Millisecond))
		} else {
			c.logger.Debug("query settled", "key", key, "elapsed", time.Since(start).Round(time.Millisecond))
		}
		return v, err
	})
}

func (c *Cache) settle(key Key, v any, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		e = &entry{
			result: Result{Key: key, Enabled: true},
			done:   make(chan struct{}),
		}
		c.entries[key] = e
	}
	if e.result.Settled() {
		return
	}
	e.result.UpdatedAt = time.Now()
	if err != nil {
		e.result.Status = StatusError
		e.result.Err = err
	} else {
		e.result.Status = StatusSuccess
		e.result.Data = v
	}
	close(e.done)
}
