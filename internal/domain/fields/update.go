package fields

import (
	"github.com/GriffinCanCode/bibkit/internal/domain/entry"
)

// Update writes newValue (nil meaning "absent") to field and returns the
// resulting change. The bool is false when the write was a no-op.
//
//	old     new     clearIfEqual  effect
//	absent  absent  any           no-op
//	absent  v       any           set
//	x       absent  any           clear
//	x       x       true          clear
//	x       x       false         no-op
//	x       y       any           set
func Update(rec entry.Record, field string, newValue *string, clearIfEqual bool) (entry.FieldChange, bool) {
	oldValue, hadOld := rec.Field(field)

	if !hadOld {
		if newValue == nil {
			return entry.FieldChange{}, false
		}
		rec.SetField(field, *newValue)
		return entry.NewFieldChange(rec.ID(), field, "", false, *newValue, true), true
	}

	switch {
	case newValue == nil || (oldValue == *newValue && clearIfEqual):
		rec.ClearField(field)
		return entry.NewFieldChange(rec.ID(), field, oldValue, true, "", false), true
	case oldValue != *newValue:
		rec.SetField(field, *newValue)
		return entry.NewFieldChange(rec.ID(), field, oldValue, true, *newValue, true), true
	default:
		return entry.FieldChange{}, false
	}
}

// Set writes value to field; equal values are a no-op
func Set(rec entry.Record, field, value string) (entry.FieldChange, bool) {
	return Update(rec, field, &value, false)
}

// Clear removes field
func Clear(rec entry.Record, field string) (entry.FieldChange, bool) {
	return Update(rec, field, nil, false)
}

// SetSilently is Set for fields that are not shown to the user: the entry's
// changed flag is restored afterwards so the write does not trigger a
// reformat on save.
func SetSilently(rec entry.Record, field, value string) (entry.FieldChange, bool) {
	changed := rec.HasChanged()
	defer rec.SetChanged(changed)
	return Set(rec, field, value)
}
