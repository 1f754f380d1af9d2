package query

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counting(calls *atomic.Int32, values ...string) Loader {
	return func(ctx context.Context) (any, error) {
		n := int(calls.Add(1))
		if n > len(values) {
			n = len(values)
		}
		return values[n-1], nil
	}
}

func TestConcurrentFetchSharesOneLoad(t *testing.T) {
	c := New()
	defer c.Close()

	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	load := func(ctx context.Context) (any, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		return "dashboard", nil
	}

	key := K("collector-portal", "dashboard")
	var wg sync.WaitGroup
	results := make([]any, 10)

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], _ = c.Fetch(context.Background(), key, load)
	}()
	<-started

	for i := 1; i < len(results); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = c.Fetch(context.Background(), key, load)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.Equal(t, "dashboard", r)
	}
}

func TestFreshEntryIsServedFromCache(t *testing.T) {
	c := New()
	defer c.Close()

	var calls atomic.Int32
	key := K("portal", "profile")
	load := counting(&calls, "v1", "v2")

	first, err := c.Fetch(context.Background(), key, load)
	require.NoError(t, err)
	second, err := c.Fetch(context.Background(), key, load)
	require.NoError(t, err)

	assert.Equal(t, "v1", first)
	assert.Equal(t, "v1", second)
	assert.Equal(t, int32(1), calls.Load())

	st := c.State(key)
	assert.Equal(t, StatusSuccess, st.Status)
	assert.False(t, st.Stale)
	assert.False(t, st.UpdatedAt.IsZero())
}

func TestInvalidateRefetchesMatchingEntries(t *testing.T) {
	c := New()
	defer c.Close()

	var dash, sched, prof atomic.Int32
	ctx := context.Background()
	_, _ = c.Fetch(ctx, K("collector-portal", "dashboard"), counting(&dash, "d1", "d2"))
	_, _ = c.Fetch(ctx, K("collector-portal", "schedules", "date=today"), counting(&sched, "s1", "s2"))
	_, _ = c.Fetch(ctx, K("collector-portal", "profile"), counting(&prof, "p1", "p2"))

	c.Invalidate(K("collector-portal", "dashboard"), K("collector-portal", "schedules"))
	c.Wait()

	assert.Equal(t, "d2", c.State(K("collector-portal", "dashboard")).Data)
	assert.Equal(t, "s2", c.State(K("collector-portal", "schedules", "date=today")).Data)
	assert.Equal(t, "p1", c.State(K("collector-portal", "profile")).Data)
	assert.Equal(t, int32(1), prof.Load())
}

func TestInvalidationDuringLoadKeepsNewerData(t *testing.T) {
	c := New()
	defer c.Close()

	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	load := func(ctx context.Context) (any, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-release
			return "old", nil
		}
		return "new", nil
	}

	key := K("schedules", "detail", "s1")
	done := make(chan any)
	go func() {
		v, _ := c.Fetch(context.Background(), key, load)
		done <- v
	}()
	<-started

	c.Invalidate(K("schedules"))
	c.Wait()
	assert.Equal(t, "new", c.State(key).Data)

	close(release)
	assert.Equal(t, "old", <-done)

	st := c.State(key)
	assert.Equal(t, "new", st.Data)
	assert.False(t, st.Stale)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClosedCacheDropsLateResults(t *testing.T) {
	c := New()

	started := make(chan struct{})
	release := make(chan struct{})
	key := K("portal", "dashboard")
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.Fetch(context.Background(), key, func(ctx context.Context) (any, error) {
			close(started)
			<-release
			return "late", nil
		})
	}()
	<-started

	c.Close()
	close(release)
	<-done

	assert.Equal(t, StatusIdle, c.State(key).Status)
	assert.Empty(t, c.Keys())

	_, err := c.Fetch(context.Background(), key, counting(new(atomic.Int32), "x"))
	assert.ErrorIs(t, err, ErrClosed)
}

func TestFailedRefetchKeepsPreviousData(t *testing.T) {
	c := New()
	defer c.Close()

	key := K("portal", "invoices")
	_, err := c.Fetch(context.Background(), key, func(ctx context.Context) (any, error) {
		return []string{"INV-1"}, nil
	})
	require.NoError(t, err)

	boom := errors.New("upstream down")
	_, err = c.Refetch(context.Background(), key, func(ctx context.Context) (any, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)

	st := c.State(key)
	assert.Equal(t, StatusError, st.Status)
	assert.ErrorIs(t, st.Err, boom)
	assert.Equal(t, []string{"INV-1"}, st.Data)
}

func TestBackgroundRefetchUsesBaseContext(t *testing.T) {
	type tokenKey struct{}
	c := New(WithBaseContext(func() context.Context {
		return context.WithValue(context.Background(), tokenKey{}, "tok-2")
	}))
	defer c.Close()

	var seen atomic.Value
	key := K("routes", "list")
	_, _ = c.Fetch(context.Background(), key, func(ctx context.Context) (any, error) {
		if tok, ok := ctx.Value(tokenKey{}).(string); ok {
			seen.Store(tok)
		}
		return 1, nil
	})
	c.Invalidate(K("routes"))
	c.Wait()

	assert.Equal(t, "tok-2", seen.Load())
}
