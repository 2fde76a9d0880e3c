package structures

import (
	"net/http"
	"time"
)

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
	// zstd level name: fastest, default, better or best
	Compression string `yaml:"compression" validate:"in:fastest,default,better,best"`
	// MaxSnapshotSize bounds the decompressed snapshot, in bytes
	MaxSnapshotSize uint64 `yaml:"maxSnapshotSize"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

// RateLimitConfig throttles writes per client: PerMinute tokens refill a
// bucket holding Burst.
type RateLimitConfig struct {
	Enabled   bool `yaml:"enabled"`
	PerMinute int  `yaml:"perMinute"`
	Burst     int  `yaml:"burst"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// StorageConfig describes the durable slot store shared by all dashboard clients.
type StorageConfig struct {
	Slots        []string `yaml:"slots"`
	MaxValueSize int      `yaml:"maxValueSize"`
}

type BusinessConfig struct {
	ID       string           `yaml:"id"`
	Name     string           `yaml:"name"`
	TimeZone string           `yaml:"timeZone"`
	Open     []IntervalConfig `yaml:"open"`
}

type IntervalConfig struct {
	Day       int    `yaml:"day"`
	Start     string `yaml:"start"`
	End       string `yaml:"end"`
	Overnight bool   `yaml:"overnight"`
}

type HoursConfig struct {
	RefreshInterval   time.Duration    `yaml:"refreshInterval" validate:"required|min:1"`
	OvernightLookback bool             `yaml:"overnightLookback"`
	Businesses        []BusinessConfig `yaml:"businesses"`
}

type TokensConfig struct {
	RefreshTTL    time.Duration `yaml:"refreshTTL"`
	AlertCooldown time.Duration `yaml:"alertCooldown"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	WebServer   Server          `yaml:"webServer"`
	Persistence Persistence     `yaml:"persistence"`
	Logger      LoggerConfig    `yaml:"logger"`
	Cache       CacheConfig     `yaml:"cache"`
	Metrics     MetricsConfig   `yaml:"metrics"`
	RateLimit   RateLimitConfig `yaml:"rateLimit"`
	Storage     StorageConfig   `yaml:"storage"`
	Hours       HoursConfig     `yaml:"hours"`
	Tokens      TokensConfig    `yaml:"tokens"`
}

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Route struct {
	Url     string
	Handler http.Handler
}
