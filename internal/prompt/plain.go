package prompt

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ToPlain renders markdown as plain text: heading hashes, emphasis markers,
// inline backticks, code fences and HTML comments are dropped while text,
// list bullets and code block bodies are kept.
func ToPlain(markdown string) string {
	src := []byte(markdown)
	doc := goldmark.DefaultParser().Parse(text.NewReader(src))

	var b strings.Builder
	writeBlocks(&b, doc, src)
	return strings.TrimSpace(b.String())
}

func writeBlocks(b *strings.Builder, parent ast.Node, src []byte) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading, *ast.Paragraph:
			b.WriteString(inlineText(node, src))
			b.WriteString("\n\n")
		case *ast.TextBlock:
			b.WriteString(inlineText(node, src))
			b.WriteString("\n")
		case *ast.List:
			writeList(b, node, src)
			b.WriteString("\n")
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			lines := node.Lines()
			for i := range lines.Len() {
				seg := lines.At(i)
				b.Write(seg.Value(src))
			}
			b.WriteString("\n")
		case *ast.HTMLBlock, *ast.ThematicBreak:
		default:
			writeBlocks(b, node, src)
		}
	}
}

func writeList(b *strings.Builder, list *ast.List, src []byte) {
	num := list.Start
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "- "
		if list.IsOrdered() {
			marker = strconv.Itoa(num) + ". "
			num++
		}

		var inner strings.Builder
		writeBlocks(&inner, item, src)
		body := strings.TrimSpace(inner.String())

		lines := strings.Split(body, "\n")
		b.WriteString(marker)
		b.WriteString(lines[0])
		b.WriteString("\n")
		indent := strings.Repeat(" ", len(marker))
		for _, line := range lines[1:] {
			if line != "" {
				b.WriteString(indent)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
}

func inlineText(parent ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(parent, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n == parent {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Text:
			b.Write(node.Segment.Value(src))
			if node.HardLineBreak() || node.SoftLineBreak() {
				b.WriteString("\n")
			}
		case *ast.String:
			b.Write(node.Value)
		case *ast.AutoLink:
			b.Write(node.URL(src))
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
