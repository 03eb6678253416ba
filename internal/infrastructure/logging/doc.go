// Package logging provides structured logging using uber/zap.
//
// Two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Subsystems take a named child via Component so log lines carry
// "cleanup", "fulltext" or "api" in the logger field.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Info("Server starting", zap.String("port", "8000"))
//	fetchLog := logger.Component("fulltext")
package logging
