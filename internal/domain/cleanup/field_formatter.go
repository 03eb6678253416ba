package cleanup

import (
	"github.com/GriffinCanCode/bibkit/internal/domain/entry"
	"github.com/GriffinCanCode/bibkit/internal/domain/fields"
)

// FieldFormatterCleanup applies Formatter to Field. Absent fields are left alone.
type FieldFormatterCleanup struct {
	Field     string
	Formatter Formatter
}

// NewClearFieldCleanup returns the job that removes field
func NewClearFieldCleanup(field string) FieldFormatterCleanup {
	return FieldFormatterCleanup{Field: field, Formatter: ClearFormatter{}}
}

func (c FieldFormatterCleanup) Cleanup(rec entry.Record) []entry.FieldChange {
	oldValue, ok := rec.Field(c.Field)
	if !ok {
		return nil
	}

	formatted := c.Formatter.Format(oldValue)
	var newValue *string
	if formatted != "" {
		newValue = &formatted
	}

	change, changed := fields.Update(rec, c.Field, newValue, false)
	if !changed {
		return nil
	}
	return []entry.FieldChange{change}
}
