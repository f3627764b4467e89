package prompt

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/debendraoli/promptctl/internal/config"
)

// ErrTemplateNotFound is returned when no source has a template for a language.
var ErrTemplateNotFound = errors.New("template not found")

// Template sources.
const (
	SourceProject = "project"
	SourceGlobal  = "global"
	SourceBuiltin = "built-in"
)

// Template is a language guideline document split into sections.
type Template struct {
	// Metadata from frontmatter
	Language    string `yaml:"language"`
	Description string `yaml:"description"`
	Version     string `yaml:"version,omitempty"`

	Blocks []Block `yaml:"-"`

	// Source location for display
	Source string `yaml:"-"`
}

// Block is one section of a template.
type Block struct {
	Section Section
	Title   string
	Content string
}

// Sections lists the sections the template defines, in document order.
func (t *Template) Sections() []Section {
	out := make([]Section, 0, len(t.Blocks))
	for _, b := range t.Blocks {
		out = append(out, b.Section)
	}
	return out
}

// TemplateInfo provides template metadata for listing.
type TemplateInfo struct {
	Language    string `json:"language"`
	Description string `json:"description"`
	Version     string `json:"version,omitempty"`
	Source      string `json:"source"`
	Overrides   string `json:"overrides,omitempty"`
}

// Loader resolves templates: project-local, then user global, then built-in.
type Loader struct {
	ProjectDir string
	GlobalDir  string
}

// NewLoader returns a loader for the project rooted at root.
func NewLoader(root string) *Loader {
	return &Loader{
		ProjectDir: ProjectTemplatesDir(root),
		GlobalDir:  config.TemplatesDir(),
	}
}

// ProjectTemplatesDir is where a project keeps template overrides.
func ProjectTemplatesDir(root string) string {
	return filepath.Join(root, ".promptctl", "templates")
}

// Load finds and parses the template for lang.
func (l *Loader) Load(lang string) (*Template, error) {
	lang = strings.ToLower(lang)
	if l != nil {
		for _, src := range l.dirs() {
			tmpl, err := loadFromPath(src.dir, lang)
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			if err != nil {
				return nil, err
			}
			tmpl.Source = src.name
			return tmpl, nil
		}
	}

	if tmpl, err := loadBuiltin(lang); err == nil {
		tmpl.Source = SourceBuiltin
		return tmpl, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, lang)
}

// Has reports whether any source provides a template for lang.
func (l *Loader) Has(lang string) bool {
	_, err := l.Load(lang)
	return err == nil
}

// List returns every available template. Built-ins shadowed by a project or
// global file are reported on the overriding entry.
func (l *Loader) List() []TemplateInfo {
	seen := make(map[string]int)
	var templates []TemplateInfo

	if l != nil {
		for _, src := range l.dirs() {
			for _, info := range listFromPath(src.dir, src.name) {
				if _, exists := seen[info.Language]; !exists {
					seen[info.Language] = len(templates)
					templates = append(templates, info)
				}
			}
		}
	}

	for _, info := range listBuiltins() {
		if i, exists := seen[info.Language]; exists {
			if templates[i].Overrides == "" {
				templates[i].Overrides = SourceBuiltin
			}
			continue
		}
		templates = append(templates, info)
	}

	slices.SortFunc(templates, func(a, b TemplateInfo) int {
		return strings.Compare(a.Language, b.Language)
	})
	return templates
}

type templateDir struct {
	name string
	dir  string
}

func (l *Loader) dirs() []templateDir {
	return []templateDir{{SourceProject, l.ProjectDir}, {SourceGlobal, l.GlobalDir}}
}

func loadFromPath(dir, lang string) (*Template, error) {
	if dir == "" {
		return nil, os.ErrNotExist
	}

	path := filepath.Join(dir, lang+".md")
	data, err := os.ReadFile(path) // #nosec G304 -- template lookup by language name
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", path, err)
	}

	tmpl, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", path, err)
	}
	if tmpl.Language == "" {
		tmpl.Language = lang
	}
	return tmpl, nil
}

func listFromPath(dir, source string) []TemplateInfo {
	if dir == "" {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var templates []TemplateInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		lang := strings.ToLower(strings.TrimSuffix(entry.Name(), ".md"))
		tmpl, err := loadFromPath(dir, lang)
		if err != nil {
			continue
		}
		templates = append(templates, TemplateInfo{
			Language:    lang,
			Description: tmpl.Description,
			Version:     tmpl.Version,
			Source:      source,
		})
	}
	return templates
}

var sectionMarker = regexp.MustCompile(`(?m)^<!--\s*section:\s*([a-z-]+)\s*-->\s*$`)

// Parse reads a template: YAML frontmatter followed by section blocks. Each
// block starts with "<!-- section: key -->" and a "## Title" line.
func Parse(raw string) (*Template, error) {
	frontmatter, body := splitFrontmatter(raw)

	var tmpl Template
	if frontmatter != "" {
		if err := yaml.Unmarshal([]byte(frontmatter), &tmpl); err != nil {
			return nil, fmt.Errorf("invalid frontmatter: %w", err)
		}
	}
	tmpl.Language = strings.ToLower(tmpl.Language)

	markers := sectionMarker.FindAllStringSubmatchIndex(body, -1)
	if len(markers) == 0 {
		return nil, errors.New("no <!-- section: ... --> markers found")
	}

	seen := make(map[Section]bool)
	for i, m := range markers {
		key := body[m[2]:m[3]]
		section, ok := ParseSection(key)
		if !ok {
			return nil, fmt.Errorf("unknown section %q", key)
		}
		if seen[section] {
			return nil, fmt.Errorf("section %q appears twice", key)
		}
		seen[section] = true

		end := len(body)
		if i+1 < len(markers) {
			end = markers[i+1][0]
		}
		title, content, err := splitTitle(body[m[1]:end])
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", key, err)
		}
		tmpl.Blocks = append(tmpl.Blocks, Block{Section: section, Title: title, Content: content})
	}
	return &tmpl, nil
}

func splitTitle(block string) (title, content string, err error) {
	block = strings.TrimSpace(block)
	first, rest, _ := strings.Cut(block, "\n")
	if !strings.HasPrefix(first, "## ") {
		return "", "", errors.New("missing '## Title' line")
	}
	return strings.TrimSpace(strings.TrimPrefix(first, "## ")), strings.TrimSpace(rest), nil
}

// splitFrontmatter separates YAML frontmatter from content.
// Frontmatter is delimited by --- at the start and end.
func splitFrontmatter(raw string) (frontmatter, content string) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "---") {
		return "", raw
	}

	rest := raw[3:]
	before, after, ok := strings.Cut(rest, "\n---")
	if !ok {
		return "", raw
	}

	return strings.TrimSpace(before), strings.TrimSpace(after)
}
