package jobs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"ats-backend/internal/shared/telemetry"
)

const cacheTTL = 5 * time.Minute

// CachedSearcher caches search results in Redis for a short window, keeping
// repeated queries from burning the provider quota. Cache failures degrade
// to the wrapped searcher.
type CachedSearcher struct {
	Next  Searcher
	Redis *redis.Client
}

// NewCachedSearcher wraps a searcher with a Redis cache.
func NewCachedSearcher(next Searcher, client *redis.Client) *CachedSearcher {
	return &CachedSearcher{Next: next, Redis: client}
}

// Search serves from cache when possible.
func (c *CachedSearcher) Search(ctx context.Context, query string) ([]Listing, error) {
	key := cacheKey(query)

	if raw, err := c.Redis.Get(ctx, key).Result(); err == nil {
		var listings []Listing
		if err := json.Unmarshal([]byte(raw), &listings); err == nil {
			return listings, nil
		}
	} else if err != redis.Nil {
		telemetry.Warn("jobs.cache.get_failed", map[string]any{"err": err.Error()})
	}

	listings, err := c.Next.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(listings); err == nil {
		if err := c.Redis.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
			telemetry.Warn("jobs.cache.set_failed", map[string]any{"err": err.Error()})
		}
	}
	return listings, nil
}

func cacheKey(query string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(query))))
	return "jobs:search:" + hex.EncodeToString(sum[:])
}

var _ Searcher = (*CachedSearcher)(nil)
