package cache

import (
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// LimiterCache hands out one token bucket per client key. Idle buckets
// expire so the map does not grow with every address ever seen.
type LimiterCache struct {
	limiters *cache.Cache
	limit    rate.Limit
	burst    int
}

func NewLimiterCache(limit rate.Limit, burst int, idle time.Duration) *LimiterCache {
	return &LimiterCache{
		limiters: cache.New(idle, 2*idle),
		limit:    limit,
		burst:    burst,
	}
}

func (c *LimiterCache) Get(key string) *rate.Limiter {
	if val, found := c.limiters.Get(key); found {
		return val.(*rate.Limiter)
	}
	limiter := rate.NewLimiter(c.limit, c.burst)
	if err := c.limiters.Add(key, limiter, cache.DefaultExpiration); err != nil {
		// Lost a race with another request from the same client.
		if val, found := c.limiters.Get(key); found {
			return val.(*rate.Limiter)
		}
	}
	return limiter
}
