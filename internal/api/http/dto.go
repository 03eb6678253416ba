package http

import (
	"fmt"
	"strings"

	"github.com/GriffinCanCode/bibkit/internal/domain/entry"
	"github.com/GriffinCanCode/bibkit/internal/shared/id"
)

// EntryDTO is the wire form of an entry
type EntryDTO struct {
	ID      string            `json:"id,omitempty"`
	Type    string            `json:"type"`
	Fields  map[string]string `json:"fields"`
	Changed bool              `json:"changed,omitempty"`
}

// CleanupRequest selects jobs either by preset or by explicit job names
type CleanupRequest struct {
	Preset  string     `json:"preset,omitempty"`
	Jobs    []string   `json:"jobs,omitempty"`
	Entries []EntryDTO `json:"entries" binding:"required,min=1"`
}

type CleanupResponse struct {
	Entries []EntryDTO          `json:"entries"`
	Changes []entry.FieldChange `json:"changes"`
}

type StampRequest struct {
	Entries            []EntryDTO `json:"entries" binding:"required,min=1"`
	OverwriteOwner     bool       `json:"overwrite_owner"`
	OverwriteTimestamp bool       `json:"overwrite_timestamp"`
}

type StampResponse struct {
	Entries []EntryDTO `json:"entries"`
}

type FullTextRequest struct {
	Entry *EntryDTO `json:"entry"`
}

type FullTextResponse struct {
	Found bool   `json:"found"`
	URL   string `json:"url,omitempty"`
}

type DOIResponse struct {
	Valid bool   `json:"valid"`
	DOI   string `json:"doi,omitempty"`
	URI   string `json:"uri,omitempty"`
}

// ToEntry validates the DTO's id, generating one when empty. Field names
// that collide once case is ignored are rejected.
func (d EntryDTO) ToEntry() (*entry.Entry, error) {
	if dups := entry.DuplicateFieldNames(d.Fields); len(dups) > 0 {
		return nil, fmt.Errorf("duplicate fields differing only by case: %s", strings.Join(dups, ", "))
	}
	entryID := id.NewEntryID()
	if d.ID != "" {
		parsed, err := id.ParseEntryID(d.ID)
		if err != nil {
			return nil, err
		}
		entryID = parsed
	}
	return entry.FromFields(entryID, d.Type, d.Fields), nil
}

// FromEntry converts an entry to its wire form
func FromEntry(e *entry.Entry) EntryDTO {
	return EntryDTO{
		ID:      e.ID().String(),
		Type:    e.Type(),
		Fields:  e.Fields(),
		Changed: e.HasChanged(),
	}
}

func toEntries(dtos []EntryDTO) ([]*entry.Entry, error) {
	entries := make([]*entry.Entry, len(dtos))
	for i, dto := range dtos {
		e, err := dto.ToEntry()
		if err != nil {
			return nil, fmt.Errorf("entries[%d]: %w", i, err)
		}
		entries[i] = e
	}
	return entries, nil
}

func fromEntries(entries []*entry.Entry) []EntryDTO {
	dtos := make([]EntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = FromEntry(e)
	}
	return dtos
}
