package cleanup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/bibkit/internal/domain/entry"
)

func TestFieldFormatterCleanup(t *testing.T) {
	tests := []struct {
		name        string
		job         FieldFormatterCleanup
		fields      map[string]string
		wantValue   string
		wantPresent bool
		wantChanges int
	}{
		{
			name:        "clear removes field",
			job:         NewClearFieldCleanup("note"),
			fields:      map[string]string{"note": "x"},
			wantChanges: 1,
		},
		{
			name:        "clear on absent field",
			job:         NewClearFieldCleanup("note"),
			fields:      map[string]string{},
			wantChanges: 0,
		},
		{
			name:        "clear on empty field still clears",
			job:         NewClearFieldCleanup("note"),
			fields:      map[string]string{"note": ""},
			wantChanges: 1,
		},
		{
			name:        "trim",
			job:         FieldFormatterCleanup{Field: "title", Formatter: TrimWhitespaceFormatter{}},
			fields:      map[string]string{"title": "  A title \n"},
			wantValue:   "A title",
			wantPresent: true,
			wantChanges: 1,
		},
		{
			name:        "trim already clean",
			job:         FieldFormatterCleanup{Field: "title", Formatter: TrimWhitespaceFormatter{}},
			fields:      map[string]string{"title": "A title"},
			wantValue:   "A title",
			wantPresent: true,
			wantChanges: 0,
		},
		{
			name:        "normalize",
			job:         FieldFormatterCleanup{Field: "abstract", Formatter: NormalizeWhitespaceFormatter{}},
			fields:      map[string]string{"abstract": "one\n  two\tthree"},
			wantValue:   "one two three",
			wantPresent: true,
			wantChanges: 1,
		},
		{
			name:        "trim to empty removes field",
			job:         FieldFormatterCleanup{Field: "title", Formatter: TrimWhitespaceFormatter{}},
			fields:      map[string]string{"title": "   "},
			wantChanges: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEntry(tt.fields)

			changes := tt.job.Cleanup(e)
			assert.Len(t, changes, tt.wantChanges)

			value, present := e.Field(tt.job.Field)
			assert.Equal(t, tt.wantPresent, present)
			if tt.wantPresent {
				assert.Equal(t, tt.wantValue, value)
			}

			assert.Empty(t, tt.job.Cleanup(e), "second pass must be a no-op")
		})
	}
}

func TestChain(t *testing.T) {
	e := newEntry(map[string]string{
		entry.FieldNote: " doi:10.1000/abc ",
		"title":         "  Title ",
	})
	chain := Chain{
		DoiCleanup{},
		FieldFormatterCleanup{Field: "title", Formatter: TrimWhitespaceFormatter{}},
	}

	changes := chain.Cleanup(e)

	require.Len(t, changes, 3)
	assert.Equal(t, "doi", changes[0].Field)
	assert.Equal(t, "note", changes[1].Field)
	assert.Equal(t, "title", changes[2].Field)
	assert.Empty(t, chain.Cleanup(e))
}

func TestJobFunc(t *testing.T) {
	calls := 0
	job := JobFunc(func(rec entry.Record) []entry.FieldChange {
		calls++
		return nil
	})

	Run(job, []*entry.Entry{newEntry(nil), newEntry(nil)})

	assert.Equal(t, 2, calls)
}

func TestRun(t *testing.T) {
	entries := []*entry.Entry{
		newEntry(map[string]string{entry.FieldNote: "10.1/a"}),
		newEntry(map[string]string{"title": "untouched"}),
		newEntry(map[string]string{entry.FieldDOI: "doi:10.1/c"}),
	}

	changes := Run(DoiCleanup{}, entries)

	require.Len(t, changes, 3)
	assert.Equal(t, entries[0].ID(), changes[0].EntryID)
	assert.Equal(t, entries[0].ID(), changes[1].EntryID)
	assert.Equal(t, entries[2].ID(), changes[2].EntryID)
}
