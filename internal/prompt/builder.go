package prompt

import (
	"strings"

	"github.com/debendraoli/promptctl/internal/indexer"
)

// smartThreshold is the file count above which structure and dependency
// guidance is added.
const smartThreshold = 20

var asyncFrameworks = []string{"tokio", "async-std", "actix", "axum"}

// Builder selects and renders template sections.
type Builder struct {
	Size     Size
	Sections []Section
	Smart    bool
}

// Select decides which sections to render. Explicit sections win, then smart
// selection when an index is available, then the size preset.
func (b Builder) Select(idx *indexer.Index) []Section {
	if len(b.Sections) > 0 {
		set := make(map[Section]bool, len(b.Sections))
		for _, s := range b.Sections {
			set[s] = true
		}
		return inOrder(set)
	}

	size := b.Size
	if size == "" {
		size = DefaultSize
	}
	set := make(map[Section]bool)
	for _, s := range size.Sections() {
		set[s] = true
	}

	if b.Smart && idx != nil {
		for _, name := range asyncFrameworks {
			if idx.HasFramework(name) {
				set[SectionAsync] = true
				set[SectionConcurrency] = true
				break
			}
		}
		if idx.Structure.HasTests {
			set[SectionTesting] = true
		}
		if idx.Structure.HasDocs {
			set[SectionDocumentation] = true
		}
		if idx.TotalFiles() > smartThreshold {
			set[SectionStructure] = true
			set[SectionDependencies] = true
		}
	}
	return inOrder(set)
}

// Build renders the selected blocks in template order.
func (b Builder) Build(tmpl *Template, idx *indexer.Index) string {
	return Render(tmpl, b.Select(idx))
}

// Render writes the blocks of tmpl whose section is in sections, keeping the
// template's order, as "## Title\n\nContent" separated by blank lines.
func Render(tmpl *Template, sections []Section) string {
	if tmpl == nil {
		return ""
	}
	allowed := make(map[Section]bool, len(sections))
	for _, s := range sections {
		allowed[s] = true
	}

	var out strings.Builder
	for _, block := range tmpl.Blocks {
		if !allowed[block.Section] {
			continue
		}
		if out.Len() > 0 {
			out.WriteString("\n\n")
		}
		out.WriteString("## ")
		out.WriteString(block.Title)
		out.WriteString("\n\n")
		out.WriteString(block.Content)
	}
	return out.String()
}

// EstimateTokens approximates the token count at four bytes per token.
func EstimateTokens(text string) int {
	return len(text) / 4
}
