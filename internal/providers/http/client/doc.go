// Package client is the outbound HTTP client used by the full-text
// fetchers to download publisher pages and resolve DOIs.
//
// Built on go-resty/resty for production reliability:
//   - Optional retries with exponential backoff
//   - Connection pooling and keep-alive
//   - Context-based cancellation
//   - Rate limiting per client instance
//   - One circuit breaker per publisher host
//
// Non-2xx responses are returned as *StatusError. Only 5xx responses and
// transport failures count against a host's breaker.
//
// Example Usage:
//
//	c := client.NewClient(cfg.HTTPClient, logger)
//	page, err := c.Download(ctx, "https://doi.org/10.1109/5.771073")
package client
