package agents

import (
	"bytes"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Field is one frontmatter entry. String values are double quoted, an empty
// value is rendered as a bare key.
type Field struct {
	Key   string
	Value any
}

// Frontmatter renders fields as a "---" delimited YAML block in the given
// order.
func Frontmatter(fields ...Field) (string, error) {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range fields {
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: f.Key}
		val := &yaml.Node{Kind: yaml.ScalarNode}
		switch v := f.Value.(type) {
		case nil:
			val.Tag = "!!null"
		case string:
			val.Tag = "!!str"
			val.Value = v
			val.Style = yaml.DoubleQuotedStyle
		case bool:
			val.Tag = "!!bool"
			val.Value = strconv.FormatBool(v)
		default:
			return "", fmt.Errorf("frontmatter field %q: unsupported type %T", f.Key, f.Value)
		}
		doc.Content = append(doc.Content, key, val)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("encoding frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encoding frontmatter: %w", err)
	}
	return "---\n" + buf.String() + "---\n", nil
}

func generatedHeader(what, agent string) string {
	return fmt.Sprintf("<!-- Generated by promptctl — %s -->\n<!-- Regenerate: promptctl init %s -->\n\n", what, agent)
}

// Format wraps content in the agent's file conventions. lang only matters to
// agents that describe the file by language.
func (a Agent) Format(content, lang string) string {
	switch a {
	case Copilot:
		return generatedHeader("GitHub Copilot instructions", "copilot") +
			"<!-- COPILOT INSTRUCTIONS START -->\n" + content + "\n<!-- COPILOT INSTRUCTIONS END -->\n"
	case Claude:
		return generatedHeader("Claude Code instructions", "claude") +
			"<instructions>\n" + content + "\n</instructions>\n"
	case Cursor:
		fm, err := Frontmatter(
			Field{Key: "description", Value: lang + " development guidelines generated by promptctl"},
			Field{Key: "globs"},
			Field{Key: "alwaysApply", Value: true},
		)
		if err != nil {
			// Only string and bool fields are passed above.
			panic(err)
		}
		return fm + "\n" + content + "\n"
	case Codex:
		return generatedHeader("OpenAI Codex agent instructions", "codex") + content + "\n"
	case Aider:
		return generatedHeader("Aider conventions", "aider") + content + "\n"
	default:
		return content
	}
}
