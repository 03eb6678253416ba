package fulltext

import (
	"context"
	"net/url"

	"github.com/GriffinCanCode/bibkit/internal/domain/entry"
	"github.com/GriffinCanCode/bibkit/internal/infrastructure/tracing"
)

type tracedFetcher struct {
	Fetcher
	tracer *tracing.Tracer
}

// Traced wraps f so each lookup is recorded as a span named "fulltext.<name>"
func Traced(f Fetcher, tracer *tracing.Tracer) Fetcher {
	return &tracedFetcher{Fetcher: f, tracer: tracer}
}

// TraceAll wraps every fetcher with Traced
func TraceAll(fetchers []Fetcher, tracer *tracing.Tracer) []Fetcher {
	out := make([]Fetcher, len(fetchers))
	for i, f := range fetchers {
		out[i] = Traced(f, tracer)
	}
	return out
}

func (t *tracedFetcher) FindFullText(ctx context.Context, rec entry.Record) (*url.URL, error) {
	span, ctx := t.tracer.StartSpan(ctx, "fulltext."+t.Name())
	defer t.tracer.Submit(span)

	if !entry.IsNil(rec) {
		span.SetTag("entry", rec.ID().String())
	}

	u, err := t.Fetcher.FindFullText(ctx, rec)
	switch {
	case err != nil:
		span.SetError(err)
		span.SetTag("outcome", string(OutcomeError))
	case u != nil:
		span.SetTag("outcome", string(OutcomeFound))
	default:
		span.SetTag("outcome", string(OutcomeNotFound))
	}
	return u, err
}
