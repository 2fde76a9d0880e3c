package testutil

import (
	"leadsdesk/internal/providers"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.Logs {
		if l.Level == level {
			n++
		}
	}
	return n
}

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu                   sync.Mutex
	PersistenceDurations []time.Duration
	BusinessStates       map[string]int
	CacheHits            map[string]int
	CacheMisses          map[string]int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits(namespace string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CacheHits == nil {
		m.CacheHits = make(map[string]int)
	}
	m.CacheHits[namespace]++
}
func (m *MockMetrics) IncCacheMisses(namespace string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CacheMisses == nil {
		m.CacheMisses = make(map[string]int)
	}
	m.CacheMisses[namespace]++
}
func (m *MockMetrics) ObservePersistenceDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistenceDurations = append(m.PersistenceDurations, d)
}
func (m *MockMetrics) SetBusinessOpen(business string, state int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.BusinessStates == nil {
		m.BusinessStates = make(map[string]int)
	}
	m.BusinessStates[business] = state
}

// BusinessState returns the last recorded state and whether one was set.
func (m *MockMetrics) BusinessState(business string) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.BusinessStates[business]
	return s, ok
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
}

func (m *MockCache) Len() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.Data))
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
	Closed       bool
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: identity
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() { m.Closed = true }
