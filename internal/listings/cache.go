package listings

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"listings-search/internal/common/database"
	"listings-search/internal/common/logger"
	"listings-search/internal/common/metrics"
	"listings-search/internal/search"
)

// Cache is a read-through result cache. Any Redis failure degrades to an
// uncached read; callers never see cache errors.
type Cache struct {
	redis *database.RedisClient
	ttl   time.Duration
	log   logger.Logger
}

func NewCache(client *database.RedisClient, ttl time.Duration, log logger.Logger) *Cache {
	return &Cache{redis: client, ttl: ttl, log: log}
}

// Key derives a stable cache key from the compiled query and the actor's
// visibility scope. Two actors with different scopes never share an entry
// even when their queries compile identically. Values are hashed through
// JSON: array binds are pointers, and JSON renders their contents where
// fmt would render heap addresses.
func (c *Cache) Key(cq search.CompiledQuery, actor search.ActorContext) string {
	h := sha1.New()
	vals, err := json.Marshal(cq.Values)
	if err != nil {
		vals = []byte(fmt.Sprintf("%v", cq.Values))
	}
	fmt.Fprintf(h, "%s|%s|%s|%d|%d", cq.Query, vals, actor.Role, actor.UserID, actor.AgencyID)
	return "search:" + hex.EncodeToString(h.Sum(nil))
}

func (c *Cache) Get(ctx context.Context, key string) (*SearchResult, bool) {
	if c == nil || c.redis == nil {
		return nil, false
	}

	raw, err := c.redis.Get(ctx, key)
	if err != nil {
		if err != redis.Nil {
			c.log.WithError(err).Warn("result cache read failed", map[string]interface{}{"key": key})
		}
		metrics.SearchCacheMisses.Inc()
		return nil, false
	}

	var result SearchResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		c.log.WithError(err).Warn("result cache entry corrupt", map[string]interface{}{"key": key})
		metrics.SearchCacheMisses.Inc()
		return nil, false
	}

	metrics.SearchCacheHits.Inc()
	return &result, true
}

func (c *Cache) Set(ctx context.Context, key string, result *SearchResult) {
	if c == nil || c.redis == nil {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		c.log.WithError(err).Warn("result cache marshal failed", map[string]interface{}{"key": key})
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl); err != nil {
		c.log.WithError(err).Warn("result cache write failed", map[string]interface{}{"key": key})
	}
}
