// Package entry defines the bibliographic record the cleanup and full-text
// packages operate on, and the FieldChange audit record they emit.
//
// Field names are case-insensitive and stored lower-case. A field is either
// present (possibly with an empty string) or absent.
//
// An Entry is not safe for concurrent mutation. Callers that share one
// across goroutines must serialize access themselves.
package entry
