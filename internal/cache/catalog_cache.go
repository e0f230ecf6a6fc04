package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// catalogTTL bounds catalog staleness. Pages may be up to this old by design.
const catalogTTL = 60 * time.Second

// CatalogCache caches the serialized first catalog page per division so the
// storefront landing request does not hit Postgres on every render.
type CatalogCache struct {
	redis *RedisClient
}

// NewCatalogCache creates a new CatalogCache.
func NewCatalogCache(redis *RedisClient) *CatalogCache {
	return &CatalogCache{redis: redis}
}

func (c *CatalogCache) key(division string) string {
	return fmt.Sprintf("catalog:page1:%s", division)
}

// Get returns the cached page payload for a division, or ok=false on miss.
// Redis failures are treated as misses so the catalog read path never fails
// because of the cache.
func (c *CatalogCache) Get(ctx context.Context, division string) ([]byte, bool) {
	val, err := c.redis.Get(ctx, c.key(division))
	if err != nil {
		if !IsNil(err) {
			log.Warn().Err(err).Str("division", division).Msg("catalog cache read failed")
		}
		return nil, false
	}
	return []byte(val), true
}

// Set stores a page payload for a division with the fixed revalidation TTL.
func (c *CatalogCache) Set(ctx context.Context, division string, payload []byte) {
	if err := c.redis.Set(ctx, c.key(division), string(payload), catalogTTL); err != nil {
		log.Warn().Err(err).Str("division", division).Msg("catalog cache write failed")
	}
}

// Invalidate drops the cached pages for both divisions. Called after any
// admin catalog mutation.
func (c *CatalogCache) Invalidate(ctx context.Context, divisions ...string) {
	keys := make([]string, 0, len(divisions))
	for _, d := range divisions {
		keys = append(keys, c.key(d))
	}
	if len(keys) == 0 {
		return
	}
	if err := c.redis.Delete(ctx, keys...); err != nil {
		log.Warn().Err(err).Msg("catalog cache invalidation failed")
	}
}
