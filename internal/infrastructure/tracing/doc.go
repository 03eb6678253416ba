/*
Package tracing provides lightweight request tracing written to the
structured log.

# Overview

A trace follows one API request through the full-text providers it fans
out to. Spans are collected on a buffered channel and logged by a single
goroutine, so recording a span never blocks the request path.

# Usage

	tracer := tracing.New("bibkit", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	span, ctx := tracer.StartSpan(ctx, "fulltext.ieee")
	defer tracer.Submit(span)

# Propagation

Incoming X-Trace-ID and X-Span-ID headers are honored, and the trace and
span IDs are echoed back in the response headers.
*/
package tracing
