package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SnapshotCache implements a cache-aside layer over persisted run snapshots.
// A snapshot write is cheap to produce but expensive for clients to poll for
// repeatedly; caching the latest marshaled snapshot per run avoids re-reading
// and re-marshaling simulation state on every poll.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshotCache creates a new snapshot cache with the specified TTL.
func NewSnapshotCache(client *redis.Client, ttl time.Duration) *SnapshotCache {
	if ttl == 0 {
		ttl = 10 * time.Second // default when the caller passes 0
	}
	return &SnapshotCache{
		client: client,
		ttl:    ttl,
	}
}

// Ping satisfies health.Pinger so the cache can be included in readiness checks.
func (c *SnapshotCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func snapshotKey(runID string) string {
	return fmt.Sprintf("planetsim:snapshot:%s", runID)
}

// Get retrieves the cached snapshot bytes for a run and unmarshals into target.
// Returns redis.Nil on cache miss.
func (c *SnapshotCache) Get(ctx context.Context, runID string, target interface{}) error {
	data, err := c.client.Get(ctx, snapshotKey(runID)).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}

// Set caches a run's snapshot with the configured TTL.
func (c *SnapshotCache) Set(ctx context.Context, runID string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot for cache: %w", err)
	}
	return c.client.Set(ctx, snapshotKey(runID), data, c.ttl).Err()
}

// Invalidate drops a run's cached snapshot, e.g. after an explicit save.
func (c *SnapshotCache) Invalidate(ctx context.Context, runID string) error {
	return c.client.Del(ctx, snapshotKey(runID)).Err()
}

// InvalidateAll drops every cached snapshot, used when the server restarts
// with a fresh run roster.
func (c *SnapshotCache) InvalidateAll(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, "planetsim:snapshot:*", 0).Iterator()
	keys := make([]string, 0)

	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan snapshot keys: %w", err)
	}
	if len(keys) > 0 {
		return c.client.Del(ctx, keys...).Err()
	}
	return nil
}

// GetOrBuild returns the cached snapshot for a run, or invokes builder to
// produce a fresh one on a cache miss. The cache is populated by a background
// goroutine, so the entry may not be stored yet when this returns.
func (c *SnapshotCache) GetOrBuild(ctx context.Context, runID string, target interface{}, builder func() (interface{}, error)) error {
	err := c.Get(ctx, runID, target)
	if err == nil {
		return nil // cache hit
	}
	if err != redis.Nil {
		// Redis unreachable or similar — fall through to the builder so a
		// cache outage degrades to "always rebuild" rather than failing hard.
	}

	value, err := builder()
	if err != nil {
		return err
	}

	go func() {
		_ = c.Set(context.Background(), runID, value)
	}()

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}
