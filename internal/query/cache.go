// Package query is a small server-state cache. Entries are loaded on demand,
// shared between concurrent callers, and kept until a mutation invalidates them.
//
// Policy: a Fetch returns the cached value when it is fresh; stale or absent
// entries are loaded. Nothing expires on a timer.
package query

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrClosed is returned by Fetch once the cache has been closed.
var ErrClosed = errors.New("query cache closed")

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// State is a snapshot of one entry.
type State struct {
	Status    Status    `json:"status"`
	Data      any       `json:"data,omitempty"`
	Err       error     `json:"-"`
	UpdatedAt time.Time `json:"updated_at"`
	Stale     bool      `json:"stale"`
	Fetching  bool      `json:"fetching"`
}

// Loader produces the value for one key.
type Loader func(ctx context.Context) (any, error)

type entry struct {
	key    Key
	state  State
	gen    uint64
	loader Loader
}

type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	closed  bool

	flights singleflight.Group
	wg      sync.WaitGroup

	baseCtx   func() context.Context
	done      context.Context
	stop      context.CancelFunc
	bgTimeout time.Duration
	logr      *zap.Logger
	now       func() time.Time
}

type Option func(*Cache)

// WithLogger sets the logger used for background refetch failures.
func WithLogger(l *zap.Logger) Option {
	return func(c *Cache) { c.logr = l }
}

// WithBaseContext supplies the context background refetches start from,
// typically one carrying the session's access token.
func WithBaseContext(fn func() context.Context) Option {
	return func(c *Cache) { c.baseCtx = fn }
}

// WithRefetchTimeout bounds each background refetch.
func WithRefetchTimeout(d time.Duration) Option {
	return func(c *Cache) { c.bgTimeout = d }
}

func New(opts ...Option) *Cache {
	done, stop := context.WithCancel(context.Background())
	c := &Cache{
		entries:   make(map[string]*entry),
		baseCtx:   context.Background,
		done:      done,
		stop:      stop,
		bgTimeout: 30 * time.Second,
		logr:      zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the value for key, calling load only when the entry is absent or stale.
// Concurrent callers for the same key share a single load.
func (c *Cache) Fetch(ctx context.Context, key Key, load Loader) (any, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	e := c.entryLocked(key)
	e.loader = load
	if e.state.Status == StatusSuccess && !e.state.Stale {
		data := e.state.Data
		c.mu.Unlock()
		return data, nil
	}
	gen := e.gen
	c.mu.Unlock()

	return c.run(ctx, key, gen)
}

// Refetch loads key unconditionally, superseding any load already in flight.
func (c *Cache) Refetch(ctx context.Context, key Key, load Loader) (any, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	e := c.entryLocked(key)
	e.loader = load
	e.gen++
	e.state.Stale = true
	gen := e.gen
	c.mu.Unlock()

	return c.run(ctx, key, gen)
}

// Invalidate marks every entry under the given prefixes stale and refetches
// the ones that have a loader in the background. It never blocks on the network.
func (c *Cache) Invalidate(prefixes ...Key) {
	type job struct {
		key Key
		gen uint64
	}
	var jobs []job

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	for _, e := range c.entries {
		if !matchesAny(e.key, prefixes) {
			continue
		}
		e.gen++
		e.state.Stale = true
		if e.loader != nil {
			jobs = append(jobs, job{key: e.key, gen: e.gen})
		}
	}
	c.wg.Add(len(jobs))
	c.mu.Unlock()

	for _, j := range jobs {
		go func() {
			defer c.wg.Done()
			ctx, cancel := context.WithTimeout(c.baseCtx(), c.bgTimeout)
			defer cancel()
			unhook := context.AfterFunc(c.done, cancel)
			defer unhook()

			if _, err := c.run(ctx, j.key, j.gen); err != nil && !errors.Is(err, context.Canceled) {
				c.logr.Warn("background refetch failed",
					zap.String("key", j.key.String()),
					zap.Error(err))
			}
		}()
	}
}

// State returns a snapshot of key. Unknown keys report StatusIdle.
func (c *Cache) State(key Key) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key.id()]; ok {
		return e.state
	}
	return State{Status: StatusIdle}
}

// Keys lists every cached key.
func (c *Cache) Keys() []Key {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]Key, 0, len(c.entries))
	for _, e := range c.entries {
		keys = append(keys, e.key)
	}
	return keys
}

// Wait blocks until background refetches started so far have finished.
func (c *Cache) Wait() {
	c.wg.Wait()
}

// Close cancels background work and drops all entries. Loads that complete
// afterwards are discarded.
func (c *Cache) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.entries = make(map[string]*entry)
	c.mu.Unlock()

	c.stop()
	c.wg.Wait()
}

func (c *Cache) entryLocked(key Key) *entry {
	id := key.id()
	e, ok := c.entries[id]
	if !ok {
		e = &entry{key: key.With(), state: State{Status: StatusIdle}}
		c.entries[id] = e
	}
	return e
}

// run performs or joins the load of key at generation gen. Each generation has its
// own flight, so a load started after an invalidation never joins an older one.
func (c *Cache) run(ctx context.Context, key Key, gen uint64) (any, error) {
	flight := key.id() + "#" + strconv.FormatUint(gen, 10)
	v, err, _ := c.flights.Do(flight, func() (any, error) {
		return c.load(ctx, key, gen)
	})
	return v, err
}

func (c *Cache) load(ctx context.Context, key Key, gen uint64) (any, error) {
	c.mu.Lock()
	e, ok := c.entries[key.id()]
	if c.closed || !ok {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	// The flight for this generation may have finished between Fetch and here.
	if e.gen == gen && e.state.Status == StatusSuccess && !e.state.Stale {
		data := e.state.Data
		c.mu.Unlock()
		return data, nil
	}
	load := e.loader
	if e.gen == gen {
		if e.state.Status == StatusIdle {
			e.state.Status = StatusLoading
		}
		e.state.Fetching = true
	}
	c.mu.Unlock()

	data, err := load(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return data, err
	}
	// A newer generation owns the entry now.
	if e.gen != gen || c.entries[key.id()] != e {
		return data, err
	}
	e.state.Fetching = false
	if err != nil {
		e.state.Status = StatusError
		e.state.Err = err
		return data, err
	}
	e.state = State{
		Status:    StatusSuccess,
		Data:      data,
		UpdatedAt: c.now(),
	}
	return data, nil
}

func matchesAny(k Key, prefixes []Key) bool {
	for _, p := range prefixes {
		if k.HasPrefix(p) {
			return true
		}
	}
	return false
}
