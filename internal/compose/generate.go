package compose

import (
	"errors"
	"fmt"
	"strings"

	"github.com/debendraoli/promptctl/internal/agents"
	"github.com/debendraoli/promptctl/internal/config"
	"github.com/debendraoli/promptctl/internal/indexer"
	"github.com/debendraoli/promptctl/internal/presets"
	"github.com/debendraoli/promptctl/internal/prompt"
	"github.com/debendraoli/promptctl/internal/roles"
)

// ErrNoLanguage is returned when no language was given and none was detected.
var ErrNoLanguage = errors.New("no language detected; pass --language")

// Format is the text format of generated output.
type Format string

// Formats.
const (
	FormatMarkdown Format = "markdown"
	FormatPlain    Format = "plain"
)

// ParseFormat accepts markdown (or md) and plain (or text).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "markdown", "md":
		return FormatMarkdown, nil
	case "plain", "text", "txt":
		return FormatPlain, nil
	default:
		return "", fmt.Errorf("unknown format: '%s'. Available: markdown, plain", s)
	}
}

// Options select what Generate produces. Zero values mean defaults.
type Options struct {
	Role         string
	Language     string
	Size         string
	Sections     []string
	Smart        bool
	Agent        string
	Format       string
	NoGuardrails bool
}

// Result is a generated prompt with its accounting.
type Result struct {
	Content    string           `json:"content"`
	Language   string           `json:"language"`
	Role       string           `json:"role"`
	Agent      string           `json:"agent,omitempty"`
	Sections   []prompt.Section `json:"sections,omitempty"`
	Tokens     int              `json:"tokens"`
	Budget     int              `json:"budget,omitempty"`
	OverBudget bool             `json:"over_budget"`
}

// Generate builds a single-language prompt: role prefix, project context,
// the language block with custom merge, then guardrails. The text is
// converted to plain form and wrapped for the agent when requested.
func (c *Composer) Generate(opts Options, idx *indexer.Index) (*Result, error) {
	role, err := roles.Parse(firstNonEmpty(opts.Role, roles.DefaultName))
	if err != nil {
		return nil, err
	}

	lang := strings.ToLower(strings.TrimSpace(opts.Language))
	if lang == "" {
		primary := idx.PrimaryLanguage()
		if primary == nil {
			return nil, ErrNoLanguage
		}
		lang = primary.Name
	}

	size := prompt.DefaultSize
	if opts.Size != "" {
		if size, err = prompt.ParseSize(opts.Size); err != nil {
			return nil, err
		}
	}
	sections, err := prompt.ParseSections(opts.Sections)
	if err != nil {
		return nil, err
	}
	format, err := ParseFormat(opts.Format)
	if err != nil {
		return nil, err
	}
	var agent agents.Agent
	if opts.Agent != "" {
		if agent, err = agents.Parse(opts.Agent); err != nil {
			return nil, err
		}
	}

	builder := prompt.Builder{Size: size, Sections: sections, Smart: opts.Smart}
	block, selected, err := c.languageBlock(lang, builder, idx)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString(role.Prefix)
	b.WriteString("\n")
	if ctx := idx.ContextString(); ctx != "" {
		b.WriteString("## Project Context\n\n")
		b.WriteString(ctx)
		b.WriteString("\n\n")
	}
	b.WriteString(block)
	if !opts.NoGuardrails {
		b.WriteString("\n\n")
		b.WriteString(agents.Guardrails(lang))
	}

	content := b.String()
	if format == FormatPlain {
		content = prompt.ToPlain(content)
	}

	res := &Result{
		Language: lang,
		Role:     role.Name,
		Sections: selected,
	}
	if agent != "" {
		content = agent.Format(content, lang)
		res.Agent = agent.Name()
		res.Budget = agent.TokenBudget()
	}
	res.Content = content
	res.Tokens = prompt.EstimateTokens(content)
	res.OverBudget = res.Budget > 0 && res.Tokens > res.Budget
	return res, nil
}

func (c *Composer) languageBlock(lang string, builder prompt.Builder, idx *indexer.Index) (string, []prompt.Section, error) {
	tmpl, err := c.Loader.Load(lang)
	if err == nil {
		selected := builder.Select(idx)
		body := Heading(lang) + prompt.Render(tmpl, selected)
		return c.Config.ApplyMerge(lang, body), selected, nil
	}
	if custom, ok := c.Config.Prompt(lang); ok && custom.Content != "" {
		return custom.Content, nil, nil
	}
	if !isNotFound(err) {
		return "", nil, err
	}
	return "", nil, &UnknownLanguageError{Name: lang}
}

// ApplyDefaults fills options the user did not set from the config
// [defaults] table. changed reports whether a flag was given explicitly.
func ApplyDefaults(opts *Options, d config.Defaults, changed func(flag string) bool) {
	if !changed("role") && d.Role != "" {
		opts.Role = d.Role
	}
	if !changed("size") && d.Size != "" {
		opts.Size = d.Size
	}
	if !changed("agent") && opts.Agent == "" && d.Agent != "" {
		opts.Agent = d.Agent
	}
	if !changed("smart") && d.Smart {
		opts.Smart = true
	}
	if !changed("no-guardrails") && !d.Guardrails {
		opts.NoGuardrails = true
	}
}

// ApplyPreset fills options the user did not set explicitly from p. A preset
// overrides config defaults.
func ApplyPreset(opts *Options, p presets.Preset, changed func(flag string) bool) {
	if !changed("role") && p.Role != "" {
		opts.Role = p.Role
	}
	if !changed("language") && p.Language != "" {
		opts.Language = p.Language
	}
	if !changed("size") && p.Size != "" {
		opts.Size = string(p.Size)
	}
	if !changed("sections") && len(p.Sections) > 0 {
		opts.Sections = append([]string(nil), p.Sections...)
	}
	if !changed("smart") && p.Smart {
		opts.Smart = true
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
