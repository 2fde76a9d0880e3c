package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type cacheMetricsTestMetrics struct {
	hits   map[string]int
	misses map[string]int
}

func newCacheMetricsTestMetrics() *cacheMetricsTestMetrics {
	return &cacheMetricsTestMetrics{hits: map[string]int{}, misses: map[string]int{}}
}

func (m *cacheMetricsTestMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *cacheMetricsTestMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *cacheMetricsTestMetrics) IncCacheHits(ns string)                           { m.hits[ns]++ }
func (m *cacheMetricsTestMetrics) IncCacheMisses(ns string)                         { m.misses[ns]++ }
func (m *cacheMetricsTestMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (m *cacheMetricsTestMetrics) SetBusinessOpen(_ string, _ int)                  {}

func TestCacheNamespace(t *testing.T) {
	assert.Equal(t, "slot", cacheNamespace("slot:viewedLeads"))
	assert.Equal(t, "hours", cacheNamespace("hours:cafe:lines"))
	assert.Equal(t, "other", cacheNamespace("plain"))
}

func TestInstrumentedCache_CountsPerNamespace(t *testing.T) {
	metrics := newCacheMetricsTestMetrics()
	c := NewInstrumentedCacheProvider(cacheConfig(true, 1, 5*time.Second), &cacheTestLogger{}, metrics)
	assert.IsType(t, &instrumentedCache{}, c)

	c.Set("slot:viewedLeads", []byte(`[]`))
	c.Get("slot:viewedLeads")
	c.Get("slot:viewedEvents")
	c.Get("plain")

	assert.Equal(t, map[string]int{"slot": 1}, metrics.hits)
	assert.Equal(t, map[string]int{"slot": 1, "other": 1}, metrics.misses)
}

func TestInstrumentedCache_DelAndLenDelegate(t *testing.T) {
	metrics := newCacheMetricsTestMetrics()
	c := NewInstrumentedCacheProvider(cacheConfig(true, 1, 5*time.Second), &cacheTestLogger{}, metrics)

	c.Set("slot:viewedLeads", []byte(`[]`))
	assert.Equal(t, int64(1), c.Len())
	c.Del("slot:viewedLeads")
	assert.Zero(t, c.Len())
	assert.Empty(t, metrics.hits)
	assert.Empty(t, metrics.misses)
}

func TestInstrumentedCache_DisabledIsBare(t *testing.T) {
	metrics := newCacheMetricsTestMetrics()
	c := NewInstrumentedCacheProvider(cacheConfig(false, 1, 5*time.Second), &cacheTestLogger{}, metrics)

	assert.IsType(t, noopCache{}, c)
	c.Get("slot:viewedLeads")
	assert.Empty(t, metrics.misses)
}
