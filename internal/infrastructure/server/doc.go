// Package server assembles the bibkit HTTP server: configuration, logging,
// metrics, tracing, the cleanup registry and presets, the full-text
// pipeline, the REST and WebSocket handlers, and the gin router with its
// middleware stack.
package server
