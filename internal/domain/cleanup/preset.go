package cleanup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// DefaultPresetName is used when a caller names no preset
const DefaultPresetName = "default"

// ErrUnknownPreset is returned for a preset name that is not defined
var ErrUnknownPreset = errors.New("unknown cleanup preset")

// Presets maps a preset name to an ordered list of job names.
//
// File form (YAML):
//
//	presets:
//	  default: [doi]
//	  tidy: [doi, "trim:title", "normalize:abstract"]
//
// or TOML:
//
//	[presets]
//	default = ["doi"]
type Presets map[string][]string

type presetFile struct {
	Presets Presets `yaml:"presets" toml:"presets"`
}

// DefaultPresets returns the built-in preset set
func DefaultPresets() Presets {
	return Presets{DefaultPresetName: {"doi"}}
}

// LoadPresets reads presets from a .yaml, .yml or .toml file. The built-in
// default preset is kept unless the file overrides it.
func LoadPresets(path string) (Presets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presets: %w", err)
	}
	return ParsePresets(data, filepath.Ext(path))
}

// LoadPresetsGlob merges every preset file matching pattern (doublestar
// syntax, e.g. "conf.d/**/*.yaml") in lexical order; later files override
// earlier ones. A plain path matches itself.
func LoadPresetsGlob(pattern string) (Presets, error) {
	paths, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid preset pattern %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no preset files match %q", pattern)
	}
	sort.Strings(paths)

	presets := DefaultPresets()
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read presets: %w", err)
		}
		file, err := decodePresets(data, filepath.Ext(path))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		presets.merge(file)
	}
	return presets, nil
}

// ParsePresets decodes preset data; ext selects the format (".yaml", ".yml", ".toml").
func ParsePresets(data []byte, ext string) (Presets, error) {
	file, err := decodePresets(data, ext)
	if err != nil {
		return nil, err
	}
	presets := DefaultPresets()
	presets.merge(file)
	return presets, nil
}

func decodePresets(data []byte, ext string) (Presets, error) {
	var file presetFile
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse yaml presets: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse toml presets: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported preset format %q", ext)
	}
	return file.Presets, nil
}

func (p Presets) merge(other Presets) {
	for name, jobs := range other {
		p[strings.ToLower(name)] = jobs
	}
}

// Resolve builds the named preset into a Chain using registry
func (p Presets) Resolve(name string, registry *Registry) (Chain, error) {
	if name == "" {
		name = DefaultPresetName
	}
	jobs, ok := p[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return registry.Build(jobs)
}

// Validate checks that every job in every preset resolves
func (p Presets) Validate(registry *Registry) error {
	var errs []error
	for _, name := range p.Names() {
		if _, err := registry.Build(p[name]); err != nil {
			errs = append(errs, fmt.Errorf("preset %q: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Names returns preset names in sorted order
func (p Presets) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
