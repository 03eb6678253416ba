package entry

import (
	"sort"
	"strings"

	"github.com/GriffinCanCode/bibkit/internal/shared/id"
)

// Standard field names
const (
	FieldDOI       = "doi"
	FieldNote      = "note"
	FieldURL       = "url"
	FieldEE        = "ee"
	FieldOwner     = "owner"
	FieldTimestamp = "timestamp"
)

// Record is what the cleanup and full-text packages need from a record store
type Record interface {
	ID() id.EntryID
	HasField(name string) bool
	Field(name string) (string, bool)
	SetField(name, value string)
	ClearField(name string)
	HasChanged() bool
	SetChanged(changed bool)
}

// Entry is the in-memory Record implementation
type Entry struct {
	id        id.EntryID
	entryType string
	fields    map[string]string
	changed   bool
}

// New creates an empty entry with a fresh ID
func New(entryType string) *Entry {
	return NewWithID(id.NewEntryID(), entryType)
}

// NewWithID creates an empty entry with the given ID
func NewWithID(entryID id.EntryID, entryType string) *Entry {
	return &Entry{
		id:        entryID,
		entryType: strings.ToLower(entryType),
		fields:    make(map[string]string),
	}
}

// FromFields builds an unchanged entry from a field map. Names that differ
// only by case or surrounding space are applied in byte order, so the
// lower-case spelling wins when present.
func FromFields(entryID id.EntryID, entryType string, fields map[string]string) *Entry {
	e := NewWithID(entryID, entryType)
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		e.fields[normalize(name)] = fields[name]
	}
	return e
}

// DuplicateFieldNames returns, sorted, the normalized names that more than
// one key of fields maps to
func DuplicateFieldNames(fields map[string]string) []string {
	seen := make(map[string]int, len(fields))
	for name := range fields {
		seen[normalize(name)]++
	}
	var dups []string
	for name, n := range seen {
		if n > 1 {
			dups = append(dups, name)
		}
	}
	sort.Strings(dups)
	return dups
}

func (e *Entry) ID() id.EntryID { return e.id }

// Type returns the lower-cased entry type (article, book, ...)
func (e *Entry) Type() string { return e.entryType }

func (e *Entry) HasField(name string) bool {
	_, ok := e.fields[normalize(name)]
	return ok
}

func (e *Entry) Field(name string) (string, bool) {
	value, ok := e.fields[normalize(name)]
	return value, ok
}

// SetField writes a field and marks the entry changed
func (e *Entry) SetField(name, value string) {
	e.fields[normalize(name)] = value
	e.changed = true
}

// ClearField removes a field and marks the entry changed. Clearing an
// absent field is a no-op.
func (e *Entry) ClearField(name string) {
	key := normalize(name)
	if _, ok := e.fields[key]; !ok {
		return
	}
	delete(e.fields, key)
	e.changed = true
}

func (e *Entry) HasChanged() bool { return e.changed }

func (e *Entry) SetChanged(changed bool) { e.changed = changed }

// FieldNames returns the present field names in sorted order
func (e *Entry) FieldNames() []string {
	names := make([]string, 0, len(e.fields))
	for name := range e.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Fields returns a copy of the field map
func (e *Entry) Fields() map[string]string {
	out := make(map[string]string, len(e.fields))
	for k, v := range e.fields {
		out[k] = v
	}
	return out
}

// Clone returns a deep copy, including the changed flag
func (e *Entry) Clone() *Entry {
	c := FromFields(e.id, e.entryType, e.fields)
	c.changed = e.changed
	return c
}

// IsNil reports whether r is nil or wraps a nil *Entry
func IsNil(r Record) bool {
	if r == nil {
		return true
	}
	if e, ok := r.(*Entry); ok && e == nil {
		return true
	}
	return false
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
