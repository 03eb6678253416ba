package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	assert.Equal(t, 100, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 200, cfg.RateLimit.Burst)
	assert.True(t, cfg.RateLimit.Enabled)

	assert.Equal(t, 30*time.Second, cfg.HTTPClient.Timeout)
	assert.Equal(t, 0, cfg.HTTPClient.RetryCount)

	assert.False(t, cfg.Fields.UseOwner)
	assert.False(t, cfg.Fields.UseTimestamp)
	assert.Equal(t, "timestamp", cfg.Fields.TimestampField)
	assert.Equal(t, DefaultTimestampFormat, cfg.Fields.TimestampFormat)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":             "9000",
		"HOST":             "127.0.0.1",
		"LOG_LEVEL":        "debug",
		"LOG_DEV":          "true",
		"RATE_LIMIT_RPS":   "500",
		"RATE_LIMIT_BURST": "1000",
		"HTTP_TIMEOUT":     "5s",
		"HTTP_RETRY_COUNT": "2",
		"HTTP_RATE_LIMIT":  "1.5",
		"HTTP_USER_AGENT":  "test-agent",
		"USE_OWNER":        "true",
		"DEFAULT_OWNER":    "alice",
		"USE_TIMESTAMP":    "true",
		"TIMESTAMP_FIELD":  "added",
		"TIMESTAMP_FORMAT": "2006.01.02",
		"CLEANUP_PRESETS":  "/etc/bibkit/presets.yaml",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, 500, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 1000, cfg.RateLimit.Burst)

	assert.Equal(t, 5*time.Second, cfg.HTTPClient.Timeout)
	assert.Equal(t, 2, cfg.HTTPClient.RetryCount)
	assert.Equal(t, 1.5, cfg.HTTPClient.RequestsPerSecond)
	assert.Equal(t, "test-agent", cfg.HTTPClient.UserAgent)

	assert.True(t, cfg.Fields.UseOwner)
	assert.Equal(t, "alice", cfg.Fields.DefaultOwner)
	assert.True(t, cfg.Fields.UseTimestamp)
	assert.Equal(t, "added", cfg.Fields.TimestampField)
	assert.Equal(t, "2006.01.02", cfg.Fields.TimestampFormat)

	assert.Equal(t, "/etc/bibkit/presets.yaml", cfg.Cleanup.PresetsFile)
}

func TestLoadInvalidValue(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT", "forever")

	_, err := Load()
	assert.Error(t, err)

	cfg := LoadOrDefault()
	assert.Equal(t, Default(), cfg)
}
