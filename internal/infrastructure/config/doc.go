// Package config provides 12-factor configuration management for bibkit.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags in cmd/server can override a few of them for development.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting of the API
//   - HTTPClient: Outbound client used to fetch publisher pages
//   - Fields: Owner and timestamp stamping of imported entries
//   - Cleanup: Location of the cleanup preset file
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//
// Environment Variables:
//   - PORT, HOST, LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - HTTP_TIMEOUT, HTTP_RETRY_COUNT, HTTP_RETRY_WAIT_MIN, HTTP_RETRY_WAIT_MAX,
//     HTTP_USER_AGENT, HTTP_RATE_LIMIT
//   - USE_OWNER, DEFAULT_OWNER, USE_TIMESTAMP, TIMESTAMP_FIELD, TIMESTAMP_FORMAT
//   - CLEANUP_PRESETS
package config
