package cleanup

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownJob is returned when a job name cannot be resolved
var ErrUnknownJob = errors.New("unknown cleanup job")

// Registry resolves job names. Plain names ("doi") map to registered jobs;
// "<formatter>:<field>" names ("clear:note", "trim:title") build a
// FieldFormatterCleanup on demand.
type Registry struct {
	mu         sync.RWMutex
	jobs       map[string]Job
	formatters map[string]Formatter
}

// NewRegistry returns a registry with the built-in jobs and formatters
func NewRegistry() *Registry {
	r := &Registry{
		jobs:       make(map[string]Job),
		formatters: make(map[string]Formatter),
	}
	r.Register("doi", DoiCleanup{})
	for _, f := range []Formatter{ClearFormatter{}, TrimWhitespaceFormatter{}, NormalizeWhitespaceFormatter{}} {
		r.RegisterFormatter(f)
	}
	return r
}

// Register adds or replaces a named job
func (r *Registry) Register(name string, job Job) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[strings.ToLower(name)] = job
}

// RegisterFormatter makes formatter available as "<key>:<field>"
func (r *Registry) RegisterFormatter(formatter Formatter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.formatters[strings.ToLower(formatter.Key())] = formatter
}

// Lookup resolves a single job name
func (r *Registry) Lookup(name string) (Job, error) {
	key := strings.ToLower(strings.TrimSpace(name))

	r.mu.RLock()
	defer r.mu.RUnlock()

	if job, ok := r.jobs[key]; ok {
		return job, nil
	}
	if formatterKey, field, ok := strings.Cut(key, ":"); ok && field != "" {
		if formatter, ok := r.formatters[formatterKey]; ok {
			return FieldFormatterCleanup{Field: field, Formatter: formatter}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownJob, name)
}

// Build resolves names into a Chain, failing on the first unknown name
func (r *Registry) Build(names []string) (Chain, error) {
	chain := make(Chain, 0, len(names))
	for _, name := range names {
		job, err := r.Lookup(name)
		if err != nil {
			return nil, err
		}
		chain = append(chain, job)
	}
	return chain, nil
}

// Names lists the registered plain job names
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.jobs))
	for name := range r.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
