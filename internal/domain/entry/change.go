package entry

import (
	"fmt"

	"github.com/GriffinCanCode/bibkit/internal/shared/id"
)

// FieldChange records one field transition. A nil OldValue means the field
// was absent before; a nil NewValue means it was cleared.
type FieldChange struct {
	EntryID  id.EntryID `json:"entry_id"`
	Field    string     `json:"field"`
	OldValue *string    `json:"old_value,omitempty"`
	NewValue *string    `json:"new_value,omitempty"`
}

// NewFieldChange builds a change record. Pass ok=false for an absent side.
func NewFieldChange(entryID id.EntryID, field string, oldValue string, hadOld bool, newValue string, hasNew bool) FieldChange {
	c := FieldChange{EntryID: entryID, Field: normalize(field)}
	if hadOld {
		c.OldValue = &oldValue
	}
	if hasNew {
		c.NewValue = &newValue
	}
	return c
}

// IsClear reports whether the change removed the field
func (c FieldChange) IsClear() bool { return c.NewValue == nil }

// Old returns the previous value and whether there was one
func (c FieldChange) Old() (string, bool) {
	if c.OldValue == nil {
		return "", false
	}
	return *c.OldValue, true
}

// New returns the written value and whether there is one
func (c FieldChange) New() (string, bool) {
	if c.NewValue == nil {
		return "", false
	}
	return *c.NewValue, true
}

func (c FieldChange) String() string {
	return fmt.Sprintf("%s.%s: %s -> %s", c.EntryID, c.Field, show(c.OldValue), show(c.NewValue))
}

func show(v *string) string {
	if v == nil {
		return "<absent>"
	}
	return fmt.Sprintf("%q", *v)
}
