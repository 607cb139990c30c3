package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSnapshot struct {
	Year int `json:"year"`
	Seed int `json:"seed"`
}

func newTestCache(t *testing.T) (*SnapshotCache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewSnapshotCache(client, time.Minute), mr
}

func TestSetThenGetRoundTrips(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "run-a", fakeSnapshot{Year: 42, Seed: 7}))

	var out fakeSnapshot
	require.NoError(t, c.Get(ctx, "run-a", &out))
	assert.Equal(t, fakeSnapshot{Year: 42, Seed: 7}, out)
}

func TestGetMissReturnsRedisNil(t *testing.T) {
	c, _ := newTestCache(t)
	var out fakeSnapshot
	err := c.Get(context.Background(), "missing-run", &out)
	assert.ErrorIs(t, err, redis.Nil)
}

func TestInvalidateRemovesEntry(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "run-b", fakeSnapshot{Year: 1}))
	require.NoError(t, c.Invalidate(ctx, "run-b"))

	var out fakeSnapshot
	err := c.Get(ctx, "run-b", &out)
	assert.ErrorIs(t, err, redis.Nil)
}

func TestGetOrBuildPopulatesCacheOnMiss(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	calls := 0
	builder := func() (interface{}, error) {
		calls++
		return fakeSnapshot{Year: 99, Seed: 3}, nil
	}

	var out fakeSnapshot
	require.NoError(t, c.GetOrBuild(ctx, "run-c", &out, builder))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 99, out.Year)

	mr.FastForward(0) // ensure background Set in GetOrBuild has a chance to run
	time.Sleep(10 * time.Millisecond)

	var cached fakeSnapshot
	require.NoError(t, c.Get(ctx, "run-c", &cached))
	assert.Equal(t, 99, cached.Year)
}
