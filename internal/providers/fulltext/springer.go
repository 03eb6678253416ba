package fulltext

import (
	"regexp"

	"go.uber.org/zap"
)

// Springer links articles and chapters by DOI and serves the PDF under
// /content/pdf
var Springer = Provider{
	Name:            "springer",
	BaseURL:         "https://link.springer.com",
	DirectPattern:   regexp.MustCompile(`(/(?:article|chapter)/10\.1007/[^?#\s"]+)`),
	Registrant:      "10.1007",
	DocumentPattern: regexp.MustCompile(`"((?:https?://link\.springer\.com)?/content/pdf/10\.1007/[^"]+?\.pdf)"`),
}

// NewSpringer creates the SpringerLink fetcher
func NewSpringer(downloader Downloader, logger *zap.Logger) *PatternFetcher {
	return NewPatternFetcher(Springer, downloader, logger)
}
