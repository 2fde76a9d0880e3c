package providers

import (
	"leadsdesk/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits(namespace string)
	IncCacheMisses(namespace string)
	ObservePersistenceDuration(duration time.Duration)
	SetBusinessOpen(business string, state int)
}

// StoreStats is the read side of the slot store needed by gauges.
type StoreStats interface {
	Len() int
	Subscribers() int
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           *prometheus.CounterVec
	cacheMisses         *prometheus.CounterVec
	persistenceDuration prometheus.Histogram
	businessOpen        *prometheus.GaugeVec
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits(namespace string) {
	m.cacheHits.WithLabelValues(namespace).Inc()
}

func (m *MetricsProvider) IncCacheMisses(namespace string) {
	m.cacheMisses.WithLabelValues(namespace).Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

// SetBusinessOpen records 1 for open, 0 for closed and -1 when unknown.
func (m *MetricsProvider) SetBusinessOpen(business string, state int) {
	m.businessOpen.WithLabelValues(business).Set(float64(state))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, stats StoreStats) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "leadsdesk_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "leadsdesk_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "leadsdesk_cache_hits_total",
			Help: "Response cache hits per key namespace",
		}, []string{"namespace"}),

		cacheMisses: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "leadsdesk_cache_misses_total",
			Help: "Response cache misses per key namespace",
		}, []string{"namespace"}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "leadsdesk_persistence_duration_seconds",
			Help:    "Duration of persistence operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		businessOpen: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "leadsdesk_business_open",
			Help: "Open state per business: 1 open, 0 closed, -1 unknown",
		}, []string{"business"}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "leadsdesk_slots_total",
		Help: "Number of slots held by the durable store",
	}, func() float64 {
		return float64(stats.Len())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "leadsdesk_subscribers_total",
		Help: "Number of active change subscriptions",
	}, func() float64 {
		return float64(stats.Subscribers())
	})

	return m
}

// noopMetrics is used when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits(_ string)                            {}
func (n *noopMetrics) IncCacheMisses(_ string)                          {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) SetBusinessOpen(_ string, _ int)                  {}
