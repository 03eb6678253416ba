package fulltext

import (
	"regexp"

	"go.uber.org/zap"
)

// ScienceDirect links article PDFs as pdfft URLs, absolute or site-relative
var ScienceDirect = Provider{
	Name:            "sciencedirect",
	BaseURL:         "https://www.sciencedirect.com",
	DirectPattern:   regexp.MustCompile(`(/science/article/pii/[0-9A-Z]+)`),
	Registrant:      "10.1016",
	DocumentPattern: regexp.MustCompile(`"((?:https?://www\.sciencedirect\.com)?/science/article/pii/[0-9A-Z]+/pdfft\?[^"]+)"`),
}

// NewScienceDirect creates the ScienceDirect fetcher
func NewScienceDirect(downloader Downloader, logger *zap.Logger) *PatternFetcher {
	return NewPatternFetcher(ScienceDirect, downloader, logger)
}
