package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// DefaultTimestampFormat is the Go layout used for the timestamp field
const DefaultTimestampFormat = "2006-01-02"

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Logging    LogConfig
	RateLimit  RateLimitConfig
	HTTPClient HTTPClientConfig
	Fields     FieldsConfig
	Cleanup    CleanupConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds per-IP API rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// HTTPClientConfig configures the outbound client used by full-text fetchers.
// RequestsPerSecond of 0 means unlimited.
type HTTPClientConfig struct {
	Timeout           time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	RetryCount        int           `envconfig:"HTTP_RETRY_COUNT" default:"0"`
	RetryWaitMin      time.Duration `envconfig:"HTTP_RETRY_WAIT_MIN" default:"1s"`
	RetryWaitMax      time.Duration `envconfig:"HTTP_RETRY_WAIT_MAX" default:"30s"`
	UserAgent         string        `envconfig:"HTTP_USER_AGENT" default:"bibkit/1.0"`
	RequestsPerSecond float64       `envconfig:"HTTP_RATE_LIMIT" default:"0"`
}

// FieldsConfig controls owner and timestamp stamping of imported entries.
type FieldsConfig struct {
	UseOwner        bool   `envconfig:"USE_OWNER" default:"false"`
	DefaultOwner    string `envconfig:"DEFAULT_OWNER" default:""`
	UseTimestamp    bool   `envconfig:"USE_TIMESTAMP" default:"false"`
	TimestampField  string `envconfig:"TIMESTAMP_FIELD" default:"timestamp"`
	TimestampFormat string `envconfig:"TIMESTAMP_FORMAT" default:"2006-01-02"`
}

// CleanupConfig points at optional cleanup preset files (.yaml, .yml or .toml).
// PresetsFile may be a doublestar glob such as "conf.d/*.yaml".
type CleanupConfig struct {
	PresetsFile string `envconfig:"CLEANUP_PRESETS" default:""`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		HTTPClient: HTTPClientConfig{
			Timeout:      30 * time.Second,
			RetryCount:   0,
			RetryWaitMin: time.Second,
			RetryWaitMax: 30 * time.Second,
			UserAgent:    "bibkit/1.0",
		},
		Fields: FieldsConfig{
			TimestampField:  "timestamp",
			TimestampFormat: DefaultTimestampFormat,
		},
	}
}
