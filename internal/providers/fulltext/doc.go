// Package fulltext locates the full-text document (usually a PDF) for a
// bibliographic entry on a publisher's site.
//
// Every provider runs the same three-stage lookup, configured by a Provider
// value:
//
//  1. Direct link: the entry's url field already points at the provider and
//     matches its landing-page pattern.
//  2. DOI resolution: the entry's DOI belongs to the provider's registrant
//     prefix; the resolved page is searched for a document link, or failing
//     that, for a landing-page link.
//  3. Extraction: the landing page is downloaded and searched for a
//     document link.
//
// Not finding a document is a normal outcome (nil URL, nil error). Errors
// are reserved for invalid arguments and transport failures; a lookup never
// retries and performs at most two downloads.
//
// Example Usage:
//
//	finder := fulltext.NewFinder(logger, fulltext.DefaultFetchers(httpClient, logger)...)
//	u, err := finder.FindFullText(ctx, e)
package fulltext
