package mcp

import (
	"fmt"
	"os"

	"github.com/debendraoli/promptctl/internal/agents"
	"github.com/debendraoli/promptctl/internal/compose"
	"github.com/debendraoli/promptctl/internal/config"
	"github.com/debendraoli/promptctl/internal/indexer"
	"github.com/debendraoli/promptctl/internal/presets"
	"github.com/debendraoli/promptctl/internal/prompt"
	"github.com/debendraoli/promptctl/internal/roles"
)

// resolveRoot picks the tool's path argument, then the server root, then
// the working directory.
func (e *Env) resolveRoot(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	if e != nil && e.Root != "" {
		return e.Root, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return cwd, nil
}

// project loads config and a composer for root.
func (e *Env) project(root string) (*compose.Composer, *config.Config, error) {
	cfg, _, err := config.Load(root)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	return compose.New(root, cfg, e.logger()), cfg, nil
}

func (e *Env) scan(root string) *indexer.Index {
	return indexer.Scan(root, indexer.WithLogger(e.logger()))
}

func languageInfos(loader *prompt.Loader, cfg *config.Config) []LanguageInfo {
	var out []LanguageInfo
	seen := map[string]bool{}
	for _, t := range loader.List() {
		seen[t.Language] = true
		out = append(out, LanguageInfo{
			Name:        t.Language,
			Description: t.Description,
			Version:     t.Version,
			Source:      t.Source,
			Customized:  hasCustom(cfg, t.Language),
		})
	}
	for _, lang := range cfg.CustomLanguages() {
		if seen[lang] {
			continue
		}
		p, _ := cfg.Prompt(lang)
		out = append(out, LanguageInfo{
			Name:        lang,
			Description: p.Description,
			Source:      "config",
			Customized:  true,
		})
	}
	return out
}

func hasCustom(cfg *config.Config, lang string) bool {
	_, ok := cfg.Prompt(lang)
	return ok
}

func roleInfos() []RoleInfo {
	var out []RoleInfo
	for _, r := range roles.All() {
		out = append(out, RoleInfo{Name: r.Name, Description: r.Description, Aliases: r.Aliases})
	}
	return out
}

func agentInfos() []AgentInfo {
	var out []AgentInfo
	for _, a := range agents.All() {
		out = append(out, AgentInfo{
			Name:        a.Name(),
			DisplayName: a.DisplayName(),
			File:        a.InstructionFile(),
			GlobalFile:  a.GlobalInstructionFile(),
			TokenBudget: a.TokenBudget(),
			Hooks:       agents.SupportsHooks(a),
		})
	}
	return out
}

func sectionInfos() []SectionInfo {
	var out []SectionInfo
	for _, s := range prompt.AllSections() {
		out = append(out, SectionInfo{Name: string(s), Description: s.Description()})
	}
	return out
}

func presetInfos(store *presets.Store) []PresetInfo {
	var out []PresetInfo
	for _, e := range store.List() {
		out = append(out, PresetInfo{
			Name:        e.Name,
			Description: e.Preset.Description,
			Builtin:     e.Builtin,
		})
	}
	return out
}

func scanOutput(idx *indexer.Index) ScanOutput {
	out := ScanOutput{
		Root:        idx.Root,
		ConfigFiles: idx.ConfigFiles,
		Structure:   idx.Structure,
		Context:     idx.ContextString(),
	}
	for _, l := range idx.SortedLanguages() {
		out.Languages = append(out.Languages, *l)
	}
	if primary := idx.PrimaryLanguage(); primary != nil {
		out.Primary = primary.Name
	}
	out.Frameworks = idx.Frameworks
	return out
}

// flagSet reports which generate inputs the caller set, so config defaults
// and presets only fill the rest.
func flagSet(in GenerateInput) func(string) bool {
	set := map[string]bool{
		"role":          in.Role != "",
		"language":      in.Language != "",
		"size":          in.Size != "",
		"sections":      len(in.Sections) > 0,
		"smart":         in.Smart,
		"agent":         in.Agent != "",
		"no-guardrails": in.NoGuardrails,
	}
	return func(flag string) bool { return set[flag] }
}
