package query

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dashboard struct{ Pending int }

func TestQueryTypedAccess(t *testing.T) {
	c := New()
	defer c.Close()

	pending := 3
	q := NewQuery(c, K("collector-portal", "dashboard"), func(ctx context.Context) (*dashboard, error) {
		return &dashboard{Pending: pending}, nil
	})

	assert.Equal(t, StatusIdle, q.State().Status)
	assert.False(t, q.State().HasData)

	d, err := q.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, d.Pending)

	pending = 2
	d, err = q.Refetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, d.Pending)

	st := q.State()
	assert.True(t, st.HasData)
	assert.False(t, st.IsLoading)
	assert.Equal(t, 2, st.Data.Pending)
}

func TestMutationInvalidatesConsumers(t *testing.T) {
	c := New()
	defer c.Close()

	pending := 3
	dash := NewQuery(c, K("collector-portal", "dashboard"), func(ctx context.Context) (*dashboard, error) {
		return &dashboard{Pending: pending}, nil
	})
	_, err := dash.Get(context.Background())
	require.NoError(t, err)

	start := NewMutation(c,
		func(ctx context.Context, id string) (string, error) {
			pending--
			return "in_progress", nil
		},
		func(id string) []Key {
			return []Key{K("collector-portal", "dashboard"), K("collector-portal", "schedules")}
		},
	)

	out, err := start.MutateAsync(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "in_progress", out)
	assert.False(t, start.IsPending())

	c.Wait()
	assert.Equal(t, 2, dash.State().Data.Pending)
}

func TestFailedMutationInvalidatesNothing(t *testing.T) {
	c := New()
	defer c.Close()

	calls := 0
	q := NewQuery(c, K("portal", "payments"), func(ctx context.Context) (int, error) {
		calls++
		return calls, nil
	})
	_, _ = q.Get(context.Background())

	m := NewMutation(c,
		func(ctx context.Context, amount int) (struct{}, error) {
			return struct{}{}, errors.New("declined")
		},
		func(int) []Key { return []Key{K("portal")} },
	)
	_, err := m.MutateAsync(context.Background(), 8)
	require.Error(t, err)

	c.Wait()
	assert.False(t, q.State().Stale)
	assert.Equal(t, 1, calls)
}

func TestMutationPendingWhileRunning(t *testing.T) {
	c := New()
	defer c.Close()

	entered := make(chan struct{})
	release := make(chan struct{})
	m := NewMutation(c,
		func(ctx context.Context, in string) (string, error) {
			close(entered)
			<-release
			return in, nil
		},
		nil,
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = m.MutateAsync(context.Background(), "x")
	}()
	<-entered
	assert.True(t, m.IsPending())
	close(release)
	<-done
	assert.False(t, m.IsPending())
	assert.Nil(t, m.Keys("x"))
}
