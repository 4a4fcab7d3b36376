package search

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/McSimik/inf-search/internal/index"
	pkgredis "github.com/McSimik/inf-search/pkg/redis"
	"golang.org/x/sync/singleflight"
)

const keyPrefix = "query:"

// QueryCache stores query results in Redis keyed by a hash of the raw
// query. Concurrent identical queries collapse into one evaluation via
// singleflight. Cache failures are never surfaced to callers; a broken
// cache degrades to direct evaluation.
type QueryCache struct {
	client *pkgredis.Client
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
	hits   atomic.Int64
	misses atomic.Int64
}

// NewQueryCache creates a QueryCache over an established Redis client.
func NewQueryCache(client *pkgredis.Client, ttl time.Duration) *QueryCache {
	return &QueryCache{
		client: client,
		ttl:    ttl,
		logger: slog.Default().With("component", "query-cache"),
	}
}

// Get returns the cached result for query, if any.
func (c *QueryCache) Get(ctx context.Context, query string) ([]index.DocID, bool) {
	key := c.buildKey(query)
	data, err := c.client.Get(ctx, key)
	if err != nil {
		if !pkgredis.IsNilError(err) {
			c.logger.Error("cache get failed", "key", key, "error", err)
		}
		c.misses.Add(1)
		return nil, false
	}
	var results []index.DocID
	if err := json.Unmarshal([]byte(data), &results); err != nil {
		c.logger.Error("cache unmarshal failed", "key", key, "error", err)
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return results, true
}

// Set stores the result for query with the configured TTL.
func (c *QueryCache) Set(ctx context.Context, query string, results []index.DocID) {
	key := c.buildKey(query)
	data, err := json.Marshal(results)
	if err != nil {
		c.logger.Error("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.Error("cache set failed", "key", key, "error", err)
	}
}

// GetOrCompute returns the cached result for query or computes and caches
// it, collapsing concurrent identical queries. The bool reports a cache
// hit.
func (c *QueryCache) GetOrCompute(ctx context.Context, query string, compute func() []index.DocID) ([]index.DocID, bool) {
	if results, ok := c.Get(ctx, query); ok {
		return results, true
	}
	key := c.buildKey(query)
	val, _, _ := c.group.Do(key, func() (interface{}, error) {
		if results, ok := c.Get(ctx, query); ok {
			return results, nil
		}
		results := compute()
		c.Set(ctx, query, results)
		return results, nil
	})
	return val.([]index.DocID), false
}

// Invalidate removes every cached query result.
func (c *QueryCache) Invalidate(ctx context.Context) error {
	deleted, err := c.client.FlushByPattern(ctx, keyPrefix+"*")
	if err != nil {
		return fmt.Errorf("invalidating query cache: %w", err)
	}
	c.logger.Debug("query cache invalidated", "keys_deleted", deleted)
	return nil
}

// Stats returns the hit and miss counts since startup.
func (c *QueryCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *QueryCache) buildKey(query string) string {
	hash := sha256.Sum256([]byte(strings.TrimSpace(query)))
	return fmt.Sprintf("%s%x", keyPrefix, hash[:16])
}
