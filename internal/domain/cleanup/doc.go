// Package cleanup provides idempotent field transformations ("cleanup jobs")
// over bibliographic entries.
//
// A Job inspects one entry, rewrites some of its fields through
// fields.Update, and returns the FieldChanges it made. Running a job a
// second time on its own output returns no changes.
//
// Jobs are stateless values: build them once and share them. The entry
// passed to Cleanup is mutated in place and must not be shared with other
// goroutines during the call.
//
// Available jobs:
//   - DoiCleanup: canonicalizes the doi field and moves DOIs out of note, url and ee
//   - FieldFormatterCleanup: applies a Formatter to one field (clear, trim, normalize)
//   - Chain: runs several jobs in order
//
// Jobs can be looked up by name through a Registry and grouped into presets
// loaded from YAML or TOML files.
package cleanup
