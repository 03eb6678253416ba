package fulltext

import (
	"regexp"

	"go.uber.org/zap"
)

// IEEE Xplore serves PDFs from a frame on its stamp page
var IEEE = Provider{
	Name:            "ieee",
	BaseURL:         "https://ieeexplore.ieee.org",
	DirectPattern:   regexp.MustCompile(`(/stamp/stamp\.jsp\?t?p?=?&?arnumber=[0-9]+)`),
	Registrant:      "10.1109",
	DocumentPattern: regexp.MustCompile(`"(https?://ieeexplore\.ieee\.org/ielx[0-9/]+\.pdf[^"]+)"`),
}

// NewIEEE creates the IEEE Xplore fetcher
func NewIEEE(downloader Downloader, logger *zap.Logger) *PatternFetcher {
	return NewPatternFetcher(IEEE, downloader, logger)
}
