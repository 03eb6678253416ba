// Package http exposes the cleanup, stamping, DOI and full-text operations
// as a JSON API on gin.
//
// Routes:
//   - GET  /health
//   - GET  /api/v1/doi?value=...
//   - POST /api/v1/cleanup
//   - POST /api/v1/stamp
//   - POST /api/v1/fulltext
//
// Entries travel as {"id", "type", "fields"}; the id is optional on input
// and generated when missing.
package http
