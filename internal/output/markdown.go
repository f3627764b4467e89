package output

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// markdownWidth is the wrap width for rendered markdown.
const markdownWidth = 100

// Markdown writes a markdown document. On a TTY it is rendered with glamour;
// otherwise, and in JSON mode, the source is written unchanged so pipes and
// redirects get the exact prompt text.
func (p *Printer) Markdown(doc string) error {
	if !p.isTTY || p.json {
		mustWrite(fmt.Fprint(p.w, doc))
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(markdownWidth),
	)
	if err != nil {
		return fmt.Errorf("creating markdown renderer: %w", err)
	}
	rendered, err := renderer.Render(doc)
	if err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}
	mustWrite(fmt.Fprint(p.w, rendered))
	return nil
}
