package cleanup

import (
	"github.com/GriffinCanCode/bibkit/internal/domain/doi"
	"github.com/GriffinCanCode/bibkit/internal/domain/entry"
	"github.com/GriffinCanCode/bibkit/internal/domain/fields"
)

// doiAlternateFields are scanned for DOIs, in this order
var doiAlternateFields = []string{entry.FieldNote, entry.FieldURL, entry.FieldEE}

// DoiCleanup canonicalizes the doi field (strips resolver prefixes) and
// moves DOIs found in note, url or ee into it.
//
// When doi is absent every alternate field holding a DOI is promoted in
// turn, so the last one wins, and all of them are cleared. A doi value that
// does not parse is left untouched, and so are the alternates.
type DoiCleanup struct{}

func (DoiCleanup) Cleanup(rec entry.Record) []entry.FieldChange {
	var changes []entry.FieldChange

	if current, ok := rec.Field(entry.FieldDOI); ok {
		parsed, valid := doi.Parse(current)
		if !valid {
			return nil
		}
		if change, changed := fields.Set(rec, entry.FieldDOI, parsed.DOI()); changed {
			changes = append(changes, change)
		}
		for _, field := range doiAlternateFields {
			if holdsDOI(rec, field) {
				changes = append(changes, NewClearFieldCleanup(field).Cleanup(rec)...)
			}
		}
		return changes
	}

	for _, field := range doiAlternateFields {
		value, ok := rec.Field(field)
		if !ok {
			continue
		}
		parsed, valid := doi.Parse(value)
		if !valid {
			continue
		}
		if change, changed := fields.Set(rec, entry.FieldDOI, parsed.DOI()); changed {
			changes = append(changes, change)
		}
		changes = append(changes, NewClearFieldCleanup(field).Cleanup(rec)...)
	}
	return changes
}

func holdsDOI(rec entry.Record, field string) bool {
	value, ok := rec.Field(field)
	return ok && doi.IsValid(value)
}
