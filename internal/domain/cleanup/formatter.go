package cleanup

import "strings"

// Formatter rewrites a single field value. An empty result means "remove the field".
type Formatter interface {
	Key() string
	Format(value string) string
}

// ClearFormatter always returns the empty string
type ClearFormatter struct{}

func (ClearFormatter) Key() string          { return "clear" }
func (ClearFormatter) Format(string) string { return "" }

// TrimWhitespaceFormatter strips leading and trailing whitespace
type TrimWhitespaceFormatter struct{}

func (TrimWhitespaceFormatter) Key() string { return "trim" }

func (TrimWhitespaceFormatter) Format(value string) string {
	return strings.TrimSpace(value)
}

// NormalizeWhitespaceFormatter collapses runs of whitespace, including
// newlines, into single spaces.
type NormalizeWhitespaceFormatter struct{}

func (NormalizeWhitespaceFormatter) Key() string { return "normalize" }

func (NormalizeWhitespaceFormatter) Format(value string) string {
	return strings.Join(strings.Fields(value), " ")
}
