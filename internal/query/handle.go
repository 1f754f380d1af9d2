package query

import (
	"context"
	"sync/atomic"
	"time"
)

// Query is a typed view of one cache entry.
type Query[T any] struct {
	cache *Cache
	key   Key
	load  Loader
}

func NewQuery[T any](c *Cache, key Key, fn func(ctx context.Context) (T, error)) *Query[T] {
	return &Query[T]{
		cache: c,
		key:   key,
		load: func(ctx context.Context) (any, error) {
			return fn(ctx)
		},
	}
}

func (q *Query[T]) Key() Key { return q.key }

// Get returns cached data, loading it if the entry is absent or stale.
func (q *Query[T]) Get(ctx context.Context) (T, error) {
	v, err := q.cache.Fetch(ctx, q.key, q.load)
	data, _ := v.(T)
	return data, err
}

// Refetch forces a load regardless of freshness.
func (q *Query[T]) Refetch(ctx context.Context) (T, error) {
	v, err := q.cache.Refetch(ctx, q.key, q.load)
	data, _ := v.(T)
	return data, err
}

// Result is what a consumer renders: data, whether it is loading, and the last error.
type Result[T any] struct {
	Status    Status
	Data      T
	HasData   bool
	IsLoading bool
	Err       error
	Stale     bool
	UpdatedAt time.Time
}

func (q *Query[T]) State() Result[T] {
	s := q.cache.State(q.key)
	data, ok := s.Data.(T)
	return Result[T]{
		Status:    s.Status,
		Data:      data,
		HasData:   ok,
		IsLoading: s.Status == StatusLoading || (s.Fetching && !ok),
		Err:       s.Err,
		Stale:     s.Stale,
		UpdatedAt: s.UpdatedAt,
	}
}

// Mutation runs a write and, on success, invalidates the keys it declares.
type Mutation[In, Out any] struct {
	cache       *Cache
	fn          func(ctx context.Context, in In) (Out, error)
	invalidates func(in In) []Key
	pending     atomic.Int32
}

func NewMutation[In, Out any](
	c *Cache,
	fn func(ctx context.Context, in In) (Out, error),
	invalidates func(in In) []Key,
) *Mutation[In, Out] {
	return &Mutation[In, Out]{cache: c, fn: fn, invalidates: invalidates}
}

// MutateAsync performs the write and returns its result. Invalidated entries are refetched
// in the background, so the call returns as soon as the write itself completes.
func (m *Mutation[In, Out]) MutateAsync(ctx context.Context, in In) (Out, error) {
	m.pending.Add(1)
	defer m.pending.Add(-1)

	out, err := m.fn(ctx, in)
	if err != nil {
		return out, err
	}
	if m.invalidates != nil {
		m.cache.Invalidate(m.invalidates(in)...)
	}
	return out, nil
}

func (m *Mutation[In, Out]) IsPending() bool {
	return m.pending.Load() > 0
}

// Keys returns the keys a successful call with in would invalidate.
func (m *Mutation[In, Out]) Keys(in In) []Key {
	if m.invalidates == nil {
		return nil
	}
	return m.invalidates(in)
}
