package fulltext

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strings"

	"github.com/GriffinCanCode/bibkit/internal/domain/doi"
	"github.com/GriffinCanCode/bibkit/internal/domain/entry"
	"github.com/GriffinCanCode/bibkit/internal/providers/scraper"
	"go.uber.org/zap"
)

// ErrInvalidArgument is returned, before any I/O, when the entry is nil
var ErrInvalidArgument = errors.New("fulltext: entry must not be nil")

// Downloader fetches a page and returns its body as text. A missing page
// should be reported with an error that has a NotFound() bool method
// returning true; fetchers treat it as "no document" rather than a failure.
type Downloader interface {
	Download(ctx context.Context, rawURL string) (string, error)
}

// Fetcher finds a full-text document URL for an entry. A nil URL with a nil
// error means no document was found.
type Fetcher interface {
	Name() string
	FindFullText(ctx context.Context, rec entry.Record) (*url.URL, error)
}

// Provider configures a PatternFetcher for one publisher
type Provider struct {
	Name string
	// BaseURL is prepended to direct-link fragments and resolves relative document links
	BaseURL string
	// DirectPattern captures a landing-page path in group 1
	DirectPattern *regexp.Regexp
	// Registrant is the DOI prefix owned by the publisher, e.g. "10.1109"
	Registrant string
	// DocumentPattern captures the document link in group 1
	DocumentPattern *regexp.Regexp
}

// PatternFetcher runs the shared lookup for a Provider
type PatternFetcher struct {
	provider   Provider
	base       *url.URL
	downloader Downloader
	logger     *zap.Logger
}

// NewPatternFetcher creates a fetcher. It panics if provider.BaseURL is not
// an absolute URL, since providers are static configuration.
func NewPatternFetcher(provider Provider, downloader Downloader, logger *zap.Logger) *PatternFetcher {
	base, err := url.Parse(provider.BaseURL)
	if err != nil || !base.IsAbs() {
		panic(fmt.Sprintf("fulltext: invalid base url %q for %s", provider.BaseURL, provider.Name))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PatternFetcher{
		provider:   provider,
		base:       base,
		downloader: downloader,
		logger:     logger.With(zap.String("provider", provider.Name)),
	}
}

func (f *PatternFetcher) Name() string { return f.provider.Name }

// Provider returns the fetcher's configuration
func (f *PatternFetcher) Provider() Provider { return f.provider }

// FindFullText runs the direct-link, DOI and extraction stages in order
func (f *PatternFetcher) FindFullText(ctx context.Context, rec entry.Record) (*url.URL, error) {
	if entry.IsNil(rec) {
		return nil, ErrInvalidArgument
	}

	fragment := f.directFragment(rec)

	if fragment == "" {
		d, ok := f.ownDOI(rec)
		if !ok {
			return nil, nil
		}

		page, err := f.downloader.Download(ctx, d.URIString())
		if isNotFound(err) {
			f.logger.Debug("DOI not registered", zap.String("doi", d.DOI()))
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%s: resolve %s: %w", f.provider.Name, d, err)
		}
		if u := f.documentLink(page); u != nil {
			f.logger.Debug("full text found on resolved page", zap.String("doi", d.DOI()))
			return u, nil
		}
		if fragment, ok = scraper.FindFirst(f.provider.DirectPattern, page); !ok {
			return nil, nil
		}
	}

	landing := f.base.String() + fragment
	page, err := f.downloader.Download(ctx, landing)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: landing page: %w", f.provider.Name, err)
	}
	if u := f.documentLink(page); u != nil {
		f.logger.Debug("full text found on landing page", zap.String("landing", landing))
		return u, nil
	}
	return nil, nil
}

// isNotFound reports whether a download failed because the page does not
// exist. Downloaders signal this with an error exposing NotFound() bool.
func isNotFound(err error) bool {
	var nf interface{ NotFound() bool }
	return errors.As(err, &nf) && nf.NotFound()
}

// directFragment returns the landing-page path when the url field already
// points at this provider
func (f *PatternFetcher) directFragment(rec entry.Record) string {
	raw, ok := rec.Field(entry.FieldURL)
	if !ok || raw == "" {
		return ""
	}
	u, err := parseLoose(strings.TrimSpace(raw))
	if err != nil || !sameSite(u.Hostname(), f.base.Hostname()) {
		return ""
	}
	fragment, _ := scraper.FindFirst(f.provider.DirectPattern, raw)
	return fragment
}

func (f *PatternFetcher) ownDOI(rec entry.Record) (doi.DOI, bool) {
	raw, ok := rec.Field(entry.FieldDOI)
	if !ok {
		return doi.DOI{}, false
	}
	d, ok := doi.Parse(raw)
	if !ok || !d.HasPrefix(f.provider.Registrant) {
		return doi.DOI{}, false
	}
	return d, true
}

// documentLink extracts and absolutizes the document link from page
func (f *PatternFetcher) documentLink(page string) *url.URL {
	link, ok := scraper.FindFirst(f.provider.DocumentPattern, page)
	if !ok {
		return nil
	}
	ref, err := url.Parse(html.UnescapeString(link))
	if err != nil {
		f.logger.Debug("malformed document link", zap.String("link", link), zap.Error(err))
		return nil
	}
	return f.base.ResolveReference(ref)
}

// sameSite compares hosts ignoring a leading "www."
// parseLoose parses raw, treating a scheme-less value such as
// "ieeexplore.ieee.org/stamp/..." as an https URL
func parseLoose(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err == nil && u.Host != "" {
		return u, nil
	}
	if !strings.Contains(raw, "://") {
		return url.Parse("https://" + raw)
	}
	return u, err
}

func sameSite(host, base string) bool {
	host = strings.TrimPrefix(strings.ToLower(host), "www.")
	base = strings.TrimPrefix(strings.ToLower(base), "www.")
	return host != "" && (host == base || strings.HasSuffix(host, "."+base))
}
