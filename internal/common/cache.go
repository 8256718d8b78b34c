package common

import (
	"time"

	"github.com/patrickmn/go-cache"
)

type Cache struct {
	*cache.Cache
}

func NewCache(expirationTime, cleanupTime time.Duration) *Cache {
	return &Cache{cache.New(expirationTime, cleanupTime)}
}

func (c *Cache) Set(key string, value interface{}, expiration ...time.Duration) {
	if len(expiration) > 0 {
		c.Cache.Set(key, value, expiration[0])
		return
	}
	c.Cache.Set(key, value, cache.DefaultExpiration)
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.Cache.Get(key)
}

// GetOrSet returns the cached value for key, storing newValue() first when the key
// is missing. Every read refreshes the default expiration.
func (c *Cache) GetOrSet(key string, newValue func() interface{}) interface{} {
	if v, ok := c.Cache.Get(key); ok {
		c.Cache.Set(key, v, cache.DefaultExpiration)
		return v
	}

	v := newValue()
	if err := c.Cache.Add(key, v, cache.DefaultExpiration); err != nil {
		// lost a race with another request for the same key
		if existing, ok := c.Cache.Get(key); ok {
			return existing
		}
	}

	return v
}

func (c *Cache) Flush() {
	c.Cache.Flush()
}

func CacheKeyClientLimiter(ip string) string {
	return "limiter:" + ip
}
