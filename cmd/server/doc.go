// Package main is the entry point for the bibkit server.
//
// The server exposes bibliographic cleanup (DOI canonicalization and field
// formatters), owner/timestamp stamping, DOI parsing and full-text lookup
// against publisher sites as a JSON API, plus a WebSocket stream for
// entry-at-a-time imports.
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	./server -port 8000 -presets /etc/bibkit/presets.yaml
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
