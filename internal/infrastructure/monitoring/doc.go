/*
Package monitoring provides Prometheus metrics for the bibkit server.

# Overview

Metrics live on a private registry per Metrics value, so tests and multiple
servers in one process never collide on registration.

# Metrics

- HTTP request metrics (latency, throughput, size)
- Cleanup passes: entries processed and field changes by field and kind
- Full-text lookups by provider and outcome
- Publisher requests by host and status
- Go runtime, process and uptime

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	finder.WithRecorder(metrics)
	httpClient.SetObserver(metrics)

	timer := monitoring.NewTimer(metrics, "cleanup")
	// ... run jobs ...
	timer.Stop("success")
*/
package monitoring
