package fulltext

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/GriffinCanCode/bibkit/internal/domain/entry"
	"go.uber.org/zap"
)

// Outcome labels one fetcher's result for metrics
type Outcome string

const (
	OutcomeFound    Outcome = "found"
	OutcomeNotFound Outcome = "not_found"
	OutcomeError    Outcome = "error"
)

// Recorder receives one observation per fetcher attempt
type Recorder interface {
	RecordFullText(provider string, outcome Outcome, elapsed time.Duration)
}

// DefaultFetchers returns the built-in providers in lookup order
func DefaultFetchers(downloader Downloader, logger *zap.Logger) []Fetcher {
	return []Fetcher{
		NewIEEE(downloader, logger),
		NewScienceDirect(downloader, logger),
		NewSpringer(downloader, logger),
	}
}

// Finder tries fetchers in order and returns the first document found.
// A failing fetcher does not stop the others; its error is reported only
// when no fetcher finds anything.
type Finder struct {
	fetchers []Fetcher
	logger   *zap.Logger
	recorder Recorder
}

// NewFinder creates a finder over fetchers
func NewFinder(logger *zap.Logger, fetchers ...Fetcher) *Finder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Finder{fetchers: fetchers, logger: logger}
}

// WithRecorder installs a metrics recorder
func (f *Finder) WithRecorder(r Recorder) *Finder {
	f.recorder = r
	return f
}

func (f *Finder) Name() string { return "finder" }

// Fetchers returns the names of the configured fetchers in order
func (f *Finder) Fetchers() []string {
	names := make([]string, len(f.fetchers))
	for i, fetcher := range f.fetchers {
		names[i] = fetcher.Name()
	}
	return names
}

// FindFullText returns the first document URL any fetcher finds
func (f *Finder) FindFullText(ctx context.Context, rec entry.Record) (*url.URL, error) {
	if entry.IsNil(rec) {
		return nil, ErrInvalidArgument
	}

	var errs []error
	for _, fetcher := range f.fetchers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		u, err := fetcher.FindFullText(ctx, rec)
		elapsed := time.Since(start)

		switch {
		case err != nil:
			f.record(fetcher.Name(), OutcomeError, elapsed)
			f.logger.Warn("full-text fetcher failed",
				zap.String("provider", fetcher.Name()),
				zap.Stringer("entry", rec.ID()),
				zap.Error(err))
			errs = append(errs, err)
		case u != nil:
			f.record(fetcher.Name(), OutcomeFound, elapsed)
			f.logger.Info("full text found",
				zap.String("provider", fetcher.Name()),
				zap.Stringer("entry", rec.ID()),
				zap.String("url", u.String()))
			return u, nil
		default:
			f.record(fetcher.Name(), OutcomeNotFound, elapsed)
		}
	}

	return nil, errors.Join(errs...)
}

func (f *Finder) record(provider string, outcome Outcome, elapsed time.Duration) {
	if f.recorder != nil {
		f.recorder.RecordFullText(provider, outcome, elapsed)
	}
}
