package providers

import (
	"leadsdesk/internal/structures"
	"strings"
)

// instrumentedCache reports hits and misses labelled by key namespace, the
// part of the key before the first colon.
type instrumentedCache struct {
	CacheProviderInterface
	metrics MetricsProviderInterface
}

func cacheNamespace(key string) string {
	ns, _, found := strings.Cut(key, ":")
	if !found {
		return "other"
	}
	return ns
}

func (c *instrumentedCache) Get(key string) ([]byte, bool) {
	val, ok := c.CacheProviderInterface.Get(key)
	if ok {
		c.metrics.IncCacheHits(cacheNamespace(key))
	} else {
		c.metrics.IncCacheMisses(cacheNamespace(key))
	}
	return val, ok
}

// NewInstrumentedCacheProvider returns the response cache wrapped with
// hit/miss counters. A disabled cache is returned bare so it does not report
// misses that no cache could have served.
func NewInstrumentedCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	inner := NewCacheProvider(conf, logger)
	if _, disabled := inner.(noopCache); disabled {
		return inner
	}
	return &instrumentedCache{CacheProviderInterface: inner, metrics: metrics}
}
