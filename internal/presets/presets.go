// Package presets stores named combinations of role, size, sections and smart
// selection so they can be reused with --preset.
package presets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/debendraoli/promptctl/internal/prompt"
)

// FileName is the presets file looked up in the working directory and home.
const FileName = ".promptctl-presets.toml"

// Sentinel errors matched by the typed errors below.
var (
	ErrNotFound = errors.New("preset not found")
	ErrExists   = errors.New("preset already exists")
)

// NotFoundError names a preset that does not exist.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("preset '%s' not found", e.Name) }

// Is lets errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ExistsError names a preset that would be overwritten.
type ExistsError struct {
	Name string
}

func (e *ExistsError) Error() string {
	return fmt.Sprintf("preset '%s' already exists (use --force to overwrite)", e.Name)
}

// Is lets errors.Is(err, ErrExists) match.
func (e *ExistsError) Is(target error) bool { return target == ErrExists }

// Preset is a saved prompt configuration. Empty fields leave the
// corresponding flag at its own default.
type Preset struct {
	Description string      `toml:"description,omitempty" json:"description,omitempty"`
	Role        string      `toml:"role,omitempty" json:"role,omitempty"`
	Language    string      `toml:"language,omitempty" json:"language,omitempty"`
	Size        prompt.Size `toml:"size" json:"size"`
	Sections    []string    `toml:"sections,omitempty" json:"sections,omitempty"`
	Smart       bool        `toml:"smart" json:"smart"`
}

// ParsedSize returns the preset size, falling back to the default for an
// empty or unknown value.
func (p Preset) ParsedSize() prompt.Size {
	if s, err := prompt.ParseSize(string(p.Size)); err == nil {
		return s
	}
	return prompt.DefaultSize
}

// ParsedSections resolves the section names, skipping unknown ones.
func (p Preset) ParsedSections() []prompt.Section {
	var out []prompt.Section
	for _, name := range p.Sections {
		if s, ok := prompt.ParseSection(name); ok && !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

// Builtins returns the presets that are always available.
func Builtins() map[string]Preset {
	return map[string]Preset{
		"quick": {
			Description: "Quick fixes - minimal context",
			Size:        prompt.SizeMinimal,
		},
		"review": {
			Description: "Code review focused",
			Role:        "reviewer",
			Size:        prompt.SizeCompact,
			Sections:    []string{"error-handling", "types", "testing", "style"},
		},
		"security": {
			Description: "Security audit",
			Role:        "security",
			Size:        prompt.SizeCompact,
			Sections:    []string{"error-handling", "types", "memory"},
		},
		"learn": {
			Description: "Learning mode - full explanations",
			Role:        "mentor",
			Size:        prompt.SizeFull,
		},
		"perf": {
			Description: "Performance optimization",
			Role:        "performance",
			Size:        prompt.SizeCompact,
			Sections:    []string{"memory", "concurrency", "async"},
		},
		"daily": {
			Description: "Daily development with smart filtering",
			Size:        prompt.SizeCompact,
			Smart:       true,
		},
	}
}

// Store holds user presets and knows where to save them.
type Store struct {
	Presets map[string]Preset `toml:"presets"`

	loadedFrom string
	savePath   string
}

// Load reads presets from dir/FileName, else home/FileName. A missing file
// yields an empty store. Saves always go to home.
func Load(dir, home string) (*Store, error) {
	s := &Store{
		Presets:  map[string]Preset{},
		savePath: filepath.Join(home, FileName),
	}
	for _, candidate := range []string{filepath.Join(dir, FileName), s.savePath} {
		data, err := os.ReadFile(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read presets file: %w", err)
		}
		if err := toml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("failed to parse presets file %s: %w", candidate, err)
		}
		if s.Presets == nil {
			s.Presets = map[string]Preset{}
		}
		s.loadedFrom = candidate
		break
	}
	return s, nil
}

// Path returns the file the store was loaded from, or "" for none.
func (s *Store) Path() string { return s.loadedFrom }

// SavePath returns where Save writes.
func (s *Store) SavePath() string { return s.savePath }

// Save writes the user presets and returns the path.
func (s *Store) Save() (string, error) {
	data, err := toml.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to serialize presets: %w", err)
	}
	// #nosec G306 -- presets are not secrets
	if err := os.WriteFile(s.savePath, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", s.savePath, err)
	}
	return s.savePath, nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Get returns the user preset named name, else the built-in one.
func (s *Store) Get(name string) (Preset, bool) {
	name = normalizeName(name)
	if s != nil {
		if p, ok := s.Presets[name]; ok {
			return p, true
		}
	}
	p, ok := Builtins()[name]
	return p, ok
}

// Set adds or replaces a user preset.
func (s *Store) Set(name string, p Preset, force bool) error {
	name = normalizeName(name)
	if _, ok := s.Presets[name]; ok && !force {
		return &ExistsError{Name: name}
	}
	if p.Size == "" {
		p.Size = prompt.DefaultSize
	}
	s.Presets[name] = p
	return nil
}

// Remove deletes a user preset. Built-ins cannot be removed.
func (s *Store) Remove(name string) (Preset, error) {
	name = normalizeName(name)
	p, ok := s.Presets[name]
	if !ok {
		return Preset{}, &NotFoundError{Name: name}
	}
	delete(s.Presets, name)
	return p, nil
}

// Entry is one row of List.
type Entry struct {
	Name      string `json:"name"`
	Preset    Preset `json:"preset"`
	Builtin   bool   `json:"builtin"`
	Overrides bool   `json:"overrides,omitempty"`
}

// List returns user and built-in presets sorted by name. A user preset that
// shadows a built-in is flagged as an override.
func (s *Store) List() []Entry {
	builtins := Builtins()
	var entries []Entry
	for name, p := range s.Presets {
		_, shadows := builtins[name]
		entries = append(entries, Entry{Name: name, Preset: p, Overrides: shadows})
	}
	for name, p := range builtins {
		if _, ok := s.Presets[name]; ok {
			continue
		}
		entries = append(entries, Entry{Name: name, Preset: p, Builtin: true})
	}
	slices.SortFunc(entries, func(a, b Entry) int { return strings.Compare(a.Name, b.Name) })
	return entries
}
