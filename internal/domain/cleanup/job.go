package cleanup

import (
	"github.com/GriffinCanCode/bibkit/internal/domain/entry"
)

// Job transforms one entry and reports what it changed
type Job interface {
	Cleanup(rec entry.Record) []entry.FieldChange
}

// JobFunc adapts a function to the Job interface
type JobFunc func(rec entry.Record) []entry.FieldChange

func (f JobFunc) Cleanup(rec entry.Record) []entry.FieldChange { return f(rec) }

// Chain runs jobs in order and concatenates their changes
type Chain []Job

func (c Chain) Cleanup(rec entry.Record) []entry.FieldChange {
	var changes []entry.FieldChange
	for _, job := range c {
		changes = append(changes, job.Cleanup(rec)...)
	}
	return changes
}

// Run applies job to every record and returns all changes in record order
func Run[R entry.Record](job Job, records []R) []entry.FieldChange {
	var changes []entry.FieldChange
	for _, rec := range records {
		changes = append(changes, job.Cleanup(rec)...)
	}
	return changes
}
