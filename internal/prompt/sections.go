package prompt

import (
	"fmt"
	"slices"
	"strings"
)

// Section identifies one block of a language template.
type Section string

// Sections in canonical order.
const (
	SectionVersion       Section = "version"
	SectionStyle         Section = "style"
	SectionErrorHandling Section = "error-handling"
	SectionTypes         Section = "types"
	SectionMemory        Section = "memory"
	SectionConcurrency   Section = "concurrency"
	SectionAsync         Section = "async"
	SectionTesting       Section = "testing"
	SectionStructure     Section = "structure"
	SectionDependencies  Section = "dependencies"
	SectionDocumentation Section = "documentation"
	SectionPatterns      Section = "patterns"
	SectionTooling       Section = "tooling"
	SectionSecurity      Section = "security"
)

var allSections = []Section{
	SectionVersion, SectionStyle, SectionErrorHandling, SectionTypes,
	SectionMemory, SectionConcurrency, SectionAsync, SectionTesting,
	SectionStructure, SectionDependencies, SectionDocumentation,
	SectionPatterns, SectionTooling, SectionSecurity,
}

var sectionDescriptions = map[Section]string{
	SectionVersion:       "Language version and edition info",
	SectionStyle:         "Code style and idioms",
	SectionErrorHandling: "Error handling patterns",
	SectionTypes:         "Type system usage",
	SectionMemory:        "Memory and performance",
	SectionConcurrency:   "Concurrency patterns",
	SectionAsync:         "Async programming",
	SectionTesting:       "Testing strategies",
	SectionStructure:     "Project structure",
	SectionDependencies:  "Dependencies management",
	SectionDocumentation: "Documentation practices",
	SectionPatterns:      "Common patterns and examples",
	SectionTooling:       "Tooling (linting, formatting)",
	SectionSecurity:      "Security best practices",
}

var sectionAliases = map[string]Section{
	"errors":       SectionErrorHandling,
	"error":        SectionErrorHandling,
	"type":         SectionTypes,
	"performance":  SectionMemory,
	"perf":         SectionMemory,
	"concurrent":   SectionConcurrency,
	"sync":         SectionConcurrency,
	"asynchronous": SectionAsync,
	"tests":        SectionTesting,
	"test":         SectionTesting,
	"project":      SectionStructure,
	"deps":         SectionDependencies,
	"docs":         SectionDocumentation,
	"doc":          SectionDocumentation,
	"pattern":      SectionPatterns,
	"examples":     SectionPatterns,
	"tools":        SectionTooling,
	"lint":         SectionTooling,
	"format":       SectionTooling,
	"sec":          SectionSecurity,
	"audit":        SectionSecurity,
}

// AllSections returns every section in canonical order.
func AllSections() []Section {
	return slices.Clone(allSections)
}

// Description returns a short human description of the section.
func (s Section) Description() string {
	return sectionDescriptions[s]
}

func (s Section) String() string {
	return string(s)
}

// ParseSection resolves a section name or alias, ignoring case.
func ParseSection(name string) (Section, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if s := Section(key); slices.Contains(allSections, s) {
		return s, true
	}
	s, ok := sectionAliases[key]
	return s, ok
}

// ParseSections resolves each name and fails on the first unknown entry.
// Duplicates are dropped; the result is in canonical order.
func ParseSections(names []string) ([]Section, error) {
	seen := make(map[Section]bool, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		s, ok := ParseSection(name)
		if !ok {
			return nil, fmt.Errorf("unknown section: '%s'. Use 'promptctl sections' to list them", name)
		}
		seen[s] = true
	}
	return inOrder(seen), nil
}

func inOrder(set map[Section]bool) []Section {
	out := make([]Section, 0, len(set))
	for _, s := range allSections {
		if set[s] {
			out = append(out, s)
		}
	}
	return out
}

// Size is a named section preset.
type Size string

// Sizes.
const (
	SizeMinimal Size = "minimal"
	SizeCompact Size = "compact"
	SizeFull    Size = "full"
)

// DefaultSize is used when no size is given.
const DefaultSize = SizeCompact

var sizeAliases = map[string]Size{
	"minimal":  SizeMinimal,
	"min":      SizeMinimal,
	"tiny":     SizeMinimal,
	"small":    SizeMinimal,
	"compact":  SizeCompact,
	"medium":   SizeCompact,
	"default":  SizeCompact,
	"full":     SizeFull,
	"large":    SizeFull,
	"complete": SizeFull,
	"all":      SizeFull,
}

// ParseSize resolves a size name or alias, ignoring case.
func ParseSize(name string) (Size, error) {
	if s, ok := sizeAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return s, nil
	}
	return "", fmt.Errorf("unknown size: '%s'. Available: minimal, compact, full", name)
}

// Sizes lists the sizes from smallest to largest.
func Sizes() []Size {
	return []Size{SizeMinimal, SizeCompact, SizeFull}
}

// Sections returns the sections the size includes, in canonical order.
func (s Size) Sections() []Section {
	switch s {
	case SizeMinimal:
		return []Section{SectionVersion, SectionStyle, SectionErrorHandling}
	case SizeFull:
		return AllSections()
	default:
		return []Section{SectionVersion, SectionStyle, SectionErrorHandling, SectionTypes, SectionTesting, SectionTooling}
	}
}

func (s Size) String() string {
	return string(s)
}
