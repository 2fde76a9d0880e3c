package providers

import (
	"leadsdesk/internal/structures"

	"github.com/coocood/freecache"
)

// CacheProviderInterface holds rendered JSON responses under namespaced keys
// such as "slot:viewedLeads".
type CacheProviderInterface interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Del(key string)
	Len() int64
}

type CacheProvider struct {
	cache *freecache.Cache
	ttl   int
}

// NewCacheProvider sizes the cache in megabytes. Entries expire after
// cache.ttl.
func NewCacheProvider(conf *structures.Config, logger Logger) CacheProviderInterface {
	if !conf.Cache.Enabled || conf.Cache.Size <= 0 {
		logger.Infof(TypeApp, "Response cache disabled")
		return noopCache{}
	}

	ttl := max(int(conf.Cache.TTL.Seconds()), 1)
	logger.Infof(TypeApp, "Response cache: %dMB, TTL=%ds", conf.Cache.Size, ttl)

	return &CacheProvider{
		cache: freecache.NewCache(conf.Cache.Size << 20),
		ttl:   ttl,
	}
}

func (c *CacheProvider) Get(key string) ([]byte, bool) {
	val, err := c.cache.Get([]byte(key))
	if err != nil {
		return nil, false
	}
	return val, true
}

func (c *CacheProvider) Set(key string, value []byte) {
	_ = c.cache.Set([]byte(key), value, c.ttl)
}

func (c *CacheProvider) Del(key string) {
	c.cache.Del([]byte(key))
}

func (c *CacheProvider) Len() int64 {
	return c.cache.EntryCount()
}

type noopCache struct{}

func (noopCache) Get(string) ([]byte, bool) { return nil, false }
func (noopCache) Set(string, []byte)        {}
func (noopCache) Del(string)                {}
func (noopCache) Len() int64                { return 0 }
