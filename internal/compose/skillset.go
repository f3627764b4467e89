package compose

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/debendraoli/promptctl/internal/agents"
	"github.com/debendraoli/promptctl/internal/config"
	"github.com/debendraoli/promptctl/internal/indexer"
	"github.com/debendraoli/promptctl/internal/logging"
	"github.com/debendraoli/promptctl/internal/prompt"
	"github.com/debendraoli/promptctl/internal/roles"
)

// maxParallel bounds concurrent skillset builds.
const maxParallel = 4

// UnknownLanguageError reports a language with neither a template nor a
// custom prompt.
type UnknownLanguageError struct {
	Name string
}

func (e *UnknownLanguageError) Error() string {
	return fmt.Sprintf("unknown language: '%s'. Use 'promptctl list' to see available prompts.", e.Name)
}

// Composer builds prompts from templates and a project's config.
type Composer struct {
	Loader *prompt.Loader
	Config *config.Config
	Logger *zap.Logger
}

// New returns a Composer for the project at root. cfg and logger may be nil.
func New(root string, cfg *config.Config, logger *zap.Logger) *Composer {
	logger = logging.OrNop(logger)
	return &Composer{
		Loader: prompt.NewLoader(root),
		Config: cfg,
		Logger: logger,
	}
}

// Heading is the title line that opens a language block.
func Heading(lang string) string {
	return "# " + strings.ToUpper(lang) + " Development Guidelines\n\n"
}

// BuildSkillset returns the full guidance for lang: every template section
// with smart selection, the custom merge and the language guardrails. A
// language with only a custom prompt uses that prompt as its body.
func (c *Composer) BuildSkillset(lang string, idx *indexer.Index) (string, error) {
	key := strings.ToLower(strings.TrimSpace(lang))

	var body string
	tmpl, err := c.Loader.Load(key)
	switch {
	case err == nil:
		builder := prompt.Builder{Size: prompt.SizeFull, Smart: true}
		body = c.Config.ApplyMerge(key, Heading(lang)+builder.Build(tmpl, idx))
	default:
		custom, ok := c.Config.Prompt(key)
		if !ok || custom.Content == "" {
			if !isNotFound(err) {
				return "", err
			}
			return "", &UnknownLanguageError{Name: lang}
		}
		body = custom.Content
	}

	return body + "\n\n" + agents.Guardrails(key), nil
}

// BuildSkillsets builds a skillset for every language in parallel. Languages
// that fail to build are logged and left out of the result.
func (c *Composer) BuildSkillsets(ctx context.Context, langs []string, idx *indexer.Index) map[string]string {
	var (
		mu  sync.Mutex
		out = make(map[string]string, len(langs))
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)
	for _, lang := range langs {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			s, err := c.BuildSkillset(lang, idx)
			if err != nil {
				c.Logger.Debug("skipping skillset", zap.String("language", lang), zap.Error(err))
				return nil
			}
			mu.Lock()
			out[lang] = s
			mu.Unlock()
			return nil
		})
	}
	// Workers never return errors.
	_ = g.Wait()
	return out
}

// Show returns the skillset for lang, opened by the role prefix when role is
// not nil.
func (c *Composer) Show(lang string, role *roles.Role, idx *indexer.Index) (string, error) {
	s, err := c.BuildSkillset(lang, idx)
	if err != nil {
		return "", err
	}
	if role == nil {
		return s, nil
	}
	return role.Prefix + "\n" + s, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, prompt.ErrTemplateNotFound)
}

// BuildAgentPrompt is the base instruction file: role, project context, a
// pointer to the per-language skillsets and generic guardrails.
func BuildAgentPrompt(role roles.Role, idx *indexer.Index) string {
	var b strings.Builder
	b.WriteString(role.Prefix)
	b.WriteString("\n")

	if ctx := idx.ContextString(); ctx != "" {
		b.WriteString("## Project Context\n\n")
		b.WriteString(ctx)
		b.WriteString("\n\n")
	}

	if langs := idx.LanguageNames(); len(langs) > 0 {
		b.WriteString("## Language Skillsets\n\n")
		b.WriteString("This project uses language-specific coding guidelines loaded as separate skillsets.\n")
		b.WriteString("Refer to each language's skillset for idiomatic patterns, error handling, " +
			"type system usage, testing, and tooling conventions.\n\n")
		b.WriteString("Detected languages: ")
		b.WriteString(strings.Join(langs, ", "))
		b.WriteString("\n\n")
	}

	b.WriteString(agents.GenericGuardrails)
	return b.String()
}
