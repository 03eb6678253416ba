// Package id provides ULID-based identity for bibliographic entries.
//
// Entry IDs are prefixed ULIDs (entry_01HX...). They sort by creation time,
// which keeps change logs readable when they are replayed in order.
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// EntryID identifies a bibliographic entry
type EntryID string

// EntryPrefix is prepended to every generated entry ID
const EntryPrefix = "entry"

// Generator generates ULIDs with optional prefixes
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the singleton generator instance
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a new ULID generator
func NewGenerator() *Generator {
	return &Generator{entropy: rand.Reader}
}

// NewGeneratorWithEntropy creates a generator with a custom entropy source.
// Tests use it for deterministic IDs.
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{entropy: entropy}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.Generate().String())
}

// NewEntryID generates a new entry ID
func NewEntryID() EntryID {
	return EntryID(Default().GenerateWithPrefix(EntryPrefix))
}

func (id EntryID) String() string { return string(id) }

// IsZero reports whether the ID is unset
func (id EntryID) IsZero() bool { return id == "" }

// ParseEntryID validates an entry ID received from outside (e.g. the API).
// Both prefixed and bare ULIDs are accepted; bare ones get the prefix added.
func ParseEntryID(s string) (EntryID, error) {
	raw := strings.TrimPrefix(s, EntryPrefix+"_")
	if _, err := ulid.ParseStrict(raw); err != nil {
		return "", fmt.Errorf("invalid entry id %q: %w", s, err)
	}
	return EntryID(EntryPrefix + "_" + raw), nil
}

// Timestamp extracts the creation time from an entry ID
func (id EntryID) Timestamp() (time.Time, error) {
	parsed, err := ulid.Parse(strings.TrimPrefix(string(id), EntryPrefix+"_"))
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}
