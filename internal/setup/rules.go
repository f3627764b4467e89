package setup

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/debendraoli/promptctl/internal/agents"
	"github.com/debendraoli/promptctl/internal/fsutil"
)

// ruleEnv writes one glob-scoped rule file per language into a single
// directory. Cursor and Copilot differ only in layout and wrapping.
type ruleEnv struct {
	name    string
	display string
	dir     []string
	suffix  string
	render  func(lang, role, skillset string, g agents.Globs) (string, error)
}

func init() {
	Register(&ruleEnv{
		name:    "cursor",
		display: "Cursor",
		dir:     []string{".cursor", "rules"},
		suffix:  ".mdc",
		render:  renderCursorRule,
	})
	Register(&ruleEnv{
		name:    "copilot",
		display: "GitHub Copilot",
		dir:     []string{".github", "instructions"},
		suffix:  ".instructions.md",
		render:  renderCopilotRule,
	})
}

func (e *ruleEnv) Name() string        { return e.name }
func (e *ruleEnv) DisplayName() string { return e.display }

func (e *ruleEnv) rulesDir(root string) string {
	return filepath.Join(append([]string{root}, e.dir...)...)
}

func (e *ruleEnv) path(root, lang string) string {
	return filepath.Join(e.rulesDir(root), FilePrefix+lang+e.suffix)
}

// Install writes a rule file for every language with known globs. It fails
// with ErrNoLanguages when none qualifies.
func (e *ruleEnv) Install(root string, req Request) ([]HookFile, error) {
	log := req.logger()
	var written []HookFile
	for _, lang := range req.Languages {
		g, ok := agents.LanguageGlobs(lang)
		if !ok {
			log.Debug("no globs for language, skipping", zap.String("agent", e.name), zap.String("language", lang))
			continue
		}
		content, err := e.render(lang, req.Role, req.skillset(lang), g)
		if err != nil {
			return written, err
		}
		path := e.path(root, lang)
		if err := fsutil.WriteFile(path, content, 0o644, req.Force); err != nil {
			return written, err
		}
		written = append(written, HookFile{
			Path:        path,
			Description: fmt.Sprintf("%s skillset for %s files", lang, g.Extensions),
		})
	}
	if len(written) == 0 {
		return nil, ErrNoLanguages
	}
	return written, nil
}

func (e *ruleEnv) Remove(root string) ([]string, error) {
	return removePrefixed(e.rulesDir(root))
}

func (e *ruleEnv) List(root string) ([]string, error) {
	return listPrefixed(e.rulesDir(root))
}

func (e *ruleEnv) Preview(root string, languages []string) []string {
	var paths []string
	for _, lang := range languages {
		if _, ok := agents.LanguageGlobs(lang); ok {
			paths = append(paths, e.path(root, lang))
		}
	}
	return paths
}

func renderCursorRule(lang, role, skillset string, g agents.Globs) (string, error) {
	fm, err := agents.Frontmatter(
		agents.Field{Key: "description", Value: fmt.Sprintf("%s coding guidelines from promptctl, applied when editing %s files", lang, g.Extensions)},
		agents.Field{Key: "globs", Value: g.Patterns},
		agents.Field{Key: "alwaysApply", Value: false},
	)
	if err != nil {
		return "", err
	}
	return fm + "\n" +
		fmt.Sprintf("<!-- Generated by promptctl init cursor --role %s -->\n", role) +
		fmt.Sprintf("<!-- Regenerate: promptctl init cursor --role %s --force -->\n\n", role) +
		skillset + "\n", nil
}

func renderCopilotRule(lang, role, skillset string, g agents.Globs) (string, error) {
	fm, err := agents.Frontmatter(agents.Field{Key: "applyTo", Value: g.Patterns})
	if err != nil {
		return "", err
	}
	return fm + "\n" +
		fmt.Sprintf("<!-- COPILOT INSTRUCTIONS START, %s skillset -->\n", lang) +
		fmt.Sprintf("<!-- Generated by promptctl init copilot --role %s -->\n", role) +
		fmt.Sprintf("<!-- Regenerate: promptctl init copilot --role %s --force -->\n\n", role) +
		skillset + "\n\n<!-- COPILOT INSTRUCTIONS END -->\n", nil
}
