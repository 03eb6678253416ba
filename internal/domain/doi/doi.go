// Package doi parses and canonicalizes Digital Object Identifiers.
//
// Parse accepts a bare DOI (10.1000/xyz), one prefixed with doi: or urn:,
// or a resolver URL such as https://doi.org/10.1000/xyz. Anything that does
// not have the overall DOI shape is rejected; Parse never extracts a DOI
// from the middle of unrelated text.
//
// DOIs are compared case-sensitively on their canonical form.
package doi

import (
	"net/url"
	"regexp"
	"strings"
)

// Resolver host used by URI
const (
	ResolverScheme = "https"
	ResolverHost   = "doi.org"
)

// The suffix stops at whitespace, quotes and ampersands so trailing prose
// or markup never becomes part of a DOI.
const doiExp = `(?:urn:)?(?:doi:)?(10(?:\.[0-9]+)+[/:][^\s"&']+)`

var (
	doiPattern = regexp.MustCompile(`(?i)^(?:https?://[^\s]+?)?` + doiExp + `$`)
	// Resolver URLs may carry a query; it is stripped before doiPattern runs.
	httpPattern = regexp.MustCompile(`(?i)^https?://\S+?(?:urn:)?(?:doi:)?10(?:\.[0-9]+)+[/:]\S+$`)
)

var enclosing = map[byte]byte{'<': '>', '(': ')', '[': ']', '{': '}', '"': '"'}

// DOI is a parsed identifier. The zero value is not a valid DOI; obtain one
// from Parse.
type DOI struct {
	doi string
}

// Parse returns the DOI contained in raw, or false if raw is not a DOI.
func Parse(raw string) (DOI, bool) {
	s := unwrap(strings.TrimSpace(raw))
	if s == "" {
		return DOI{}, false
	}

	if httpPattern.MatchString(s) {
		u, err := url.Parse(s)
		if err != nil {
			return DOI{}, false
		}
		// Path is already percent-decoded; query and fragment are dropped.
		s = u.Scheme + "://" + u.Host + u.Path
	}

	m := doiPattern.FindStringSubmatch(s)
	if m == nil {
		return DOI{}, false
	}
	return DOI{doi: m[1]}, true
}

// MustParse is Parse for known-good constants; it panics on invalid input.
func MustParse(raw string) DOI {
	d, ok := Parse(raw)
	if !ok {
		panic("doi: invalid DOI " + raw)
	}
	return d
}

// IsValid reports whether raw parses as a DOI
func IsValid(raw string) bool {
	_, ok := Parse(raw)
	return ok
}

// DOI returns the canonical form, e.g. 10.1016/j.foo.2015.08.004
func (d DOI) DOI() string { return d.doi }

func (d DOI) String() string { return d.doi }

// URI returns the resolver URL for the DOI
func (d DOI) URI() *url.URL {
	return &url.URL{Scheme: ResolverScheme, Host: ResolverHost, Path: "/" + d.doi}
}

// URIString returns URI as an ASCII string
func (d DOI) URIString() string { return d.URI().String() }

// HasPrefix reports whether the DOI belongs to registrant prefix, e.g. "10.1109".
// A sub-registrant such as 10.1109.2 belongs to 10.1109; 10.11090 does not.
func (d DOI) HasPrefix(registrant string) bool {
	rest, ok := strings.CutPrefix(d.doi, registrant)
	if !ok || rest == "" {
		return false
	}
	switch rest[0] {
	case '/', ':', '.':
		return true
	}
	return false
}

// Equal compares canonical forms
func (d DOI) Equal(other DOI) bool { return d.doi == other.doi }

func unwrap(s string) string {
	if len(s) < 2 {
		return s
	}
	if closing, ok := enclosing[s[0]]; ok && s[len(s)-1] == closing {
		return strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}
