// In file: internal/llm/cache.go
package llm

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"

	"github.com/dileep-u-k/prompt-optimizer/internal/analyzer"
	"github.com/dileep-u-k/prompt-optimizer/internal/version"
)

const (
	rewriteCachePrefix = "rewritecache"
	rewriteCacheTTL    = 24 * time.Hour
)

// RewriteCache stores parsed rewrites by prompt text. Redis errors are logged
// and treated as misses. A nil *RewriteCache never hits and stores nothing.
type RewriteCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRewriteCache creates a cache. A non-positive ttl selects the 24h default.
// It returns nil, a cache that never hits, when rdb is nil.
func NewRewriteCache(rdb *redis.Client, ttl time.Duration) *RewriteCache {
	if rdb == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = rewriteCacheTTL
	}
	return &RewriteCache{rdb: rdb, ttl: ttl}
}

func rewriteCacheKey(text string) string {
	return version.GenerateVersionedCacheKey(rewriteCachePrefix, text)
}

// Get looks up a cached rewrite for text.
func (c *RewriteCache) Get(ctx context.Context, text string) (*analyzer.Enrichment, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, rewriteCacheKey(text)).Bytes()
	if err == redis.Nil {
		return nil, false
	} else if err != nil {
		log.Warnf("Redis GET error for rewrite cache: %v", err)
		return nil, false
	}

	var e analyzer.Enrichment
	if err := json.Unmarshal(raw, &e); err != nil {
		log.Warnf("Error unmarshalling cached rewrite: %v", err)
		return nil, false
	}
	return &e, true
}

// Set stores a rewrite for text. Empty rewrites are not cached.
func (c *RewriteCache) Set(ctx context.Context, text string, e *analyzer.Enrichment) {
	if c == nil || e.Empty() {
		return
	}
	raw, err := json.Marshal(e)
	if err != nil {
		log.Warnf("Error marshalling rewrite for cache: %v", err)
		return
	}
	if err := c.rdb.Set(ctx, rewriteCacheKey(text), raw, c.ttl).Err(); err != nil {
		log.Warnf("Redis SET error for rewrite cache: %v", err)
	}
}
