package scraper

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
)

const (
	// MaxPageSize limits page bodies to 10MB to prevent memory exhaustion
	MaxPageSize = 10 * 1024 * 1024

	// fallbackCharset is what charset.DetermineEncoding reports when nothing
	// declares an encoding and the bytes are not valid UTF-8
	fallbackCharset = "windows-1252"
)

var ErrPageTooLarge = fmt.Errorf("page exceeds maximum size of %d bytes", MaxPageSize)

// IsText reports whether data sniffs as a textual format
func IsText(data []byte) bool {
	mtype := mimetype.Detect(data)
	return strings.HasPrefix(mtype.String(), "text/") ||
		mtype.Is("application/json") ||
		mtype.Is("application/xml") ||
		mtype.Is("application/xhtml+xml")
}

// DetectCharset detects and returns charset from page bytes
func DetectCharset(data []byte) string {
	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(data)
	if err != nil || result == nil {
		return "utf-8"
	}
	return strings.ToLower(result.Charset)
}

// EncodingLabel picks the encoding name for data. Declared encodings win;
// chardet is only consulted when nothing was declared.
func EncodingLabel(data []byte, contentType string) string {
	_, name, certain := charset.DetermineEncoding(data, contentType)
	if certain || name != fallbackCharset {
		return name
	}

	if _, detected := charset.Lookup(DetectCharset(data)); detected != "" {
		return detected
	}
	return name
}

// Decode converts a page body to a UTF-8 string. Non-text bodies yield "".
func Decode(data []byte, contentType string) (string, error) {
	if len(data) > MaxPageSize {
		return "", ErrPageTooLarge
	}
	if len(data) == 0 || !IsText(data) {
		return "", nil
	}

	reader, err := charset.NewReaderLabel(EncodingLabel(data, contentType), bytes.NewReader(data))
	if err != nil {
		// Unknown label: hand back the raw bytes
		return string(data), nil
	}

	out, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("decode page: %w", err)
	}
	return string(out), nil
}

// FindFirst returns the first submatch of re in body, or the whole match
// when re has no groups.
func FindFirst(re *regexp.Regexp, body string) (string, bool) {
	m := re.FindStringSubmatch(body)
	if m == nil {
		return "", false
	}
	if len(m) > 1 {
		return m[1], true
	}
	return m[0], true
}
