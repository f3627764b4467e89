package mcp

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/debendraoli/promptctl/internal/compose"
	"github.com/debendraoli/promptctl/internal/indexer"
	"github.com/debendraoli/promptctl/internal/presets"
	"github.com/debendraoli/promptctl/internal/prompt"
	"github.com/debendraoli/promptctl/internal/roles"
)

// --- Shared types ---

// LanguageInfo is one available language.
type LanguageInfo struct {
	Name        string `json:"name"                  jsonschema:"language name"`
	Description string `json:"description,omitempty" jsonschema:"short description"`
	Version     string `json:"version,omitempty"     jsonschema:"language version the guidelines target"`
	Source      string `json:"source"                jsonschema:"where the guidelines come from: project, global, built-in or config"`
	Customized  bool   `json:"customized"            jsonschema:"whether .promptctl.toml adds a custom prompt"`
}

// RoleInfo is one persona.
type RoleInfo struct {
	Name        string   `json:"name"              jsonschema:"role name"`
	Description string   `json:"description"       jsonschema:"what the role focuses on"`
	Aliases     []string `json:"aliases,omitempty" jsonschema:"alternative names"`
}

// AgentInfo is one supported coding agent.
type AgentInfo struct {
	Name        string `json:"name"                  jsonschema:"agent name"`
	DisplayName string `json:"display_name"          jsonschema:"product name"`
	File        string `json:"file"                  jsonschema:"project instruction file"`
	GlobalFile  string `json:"global_file,omitempty" jsonschema:"instruction file under the home directory"`
	TokenBudget int    `json:"token_budget"          jsonschema:"recommended maximum prompt size in tokens"`
	Hooks       bool   `json:"hooks"                 jsonschema:"whether the agent supports native hooks"`
}

// SectionInfo is one template section.
type SectionInfo struct {
	Name        string `json:"name"        jsonschema:"section key"`
	Description string `json:"description" jsonschema:"what the section covers"`
}

// PresetInfo is one preset.
type PresetInfo struct {
	Name        string `json:"name"                  jsonschema:"preset name"`
	Description string `json:"description,omitempty" jsonschema:"preset description"`
	Builtin     bool   `json:"builtin"               jsonschema:"whether the preset ships with promptctl"`
}

// --- list_catalog ---

// CatalogInput is the input for the list_catalog tool.
type CatalogInput struct {
	Path string `json:"path,omitempty" jsonschema:"project directory for template overrides and custom prompts"`
}

// CatalogOutput is the output for the list_catalog tool.
type CatalogOutput struct {
	Languages []LanguageInfo `json:"languages" jsonschema:"available languages"`
	Roles     []RoleInfo     `json:"roles"     jsonschema:"available roles"`
	Agents    []AgentInfo    `json:"agents"    jsonschema:"supported agents"`
	Sections  []SectionInfo  `json:"sections"  jsonschema:"template sections"`
	Presets   []PresetInfo   `json:"presets"   jsonschema:"built-in and saved presets"`
}

func handleListCatalog(env *Env) mcp.ToolHandlerFor[CatalogInput, CatalogOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input CatalogInput) (*mcp.CallToolResult, CatalogOutput, error) {
		root, err := env.resolveRoot(input.Path)
		if err != nil {
			return nil, CatalogOutput{}, err
		}
		composer, cfg, err := env.project(root)
		if err != nil {
			return nil, CatalogOutput{}, err
		}
		store, err := loadPresets(root)
		if err != nil {
			return nil, CatalogOutput{}, err
		}

		out := CatalogOutput{
			Languages: languageInfos(composer.Loader, cfg),
			Roles:     roleInfos(),
			Agents:    agentInfos(),
			Sections:  sectionInfos(),
			Presets:   presetInfos(store),
		}
		return nil, out, nil
	}
}

// --- scan_project ---

// ScanInput is the input for the scan_project tool.
type ScanInput struct {
	Path string `json:"path,omitempty" jsonschema:"directory to scan (defaults to the server's project)"`
}

// ScanOutput is the output for the scan_project tool.
type ScanOutput struct {
	Root        string              `json:"root"               jsonschema:"scanned directory"`
	Primary     string              `json:"primary,omitempty"  jsonschema:"language with the most files"`
	Languages   []indexer.Language  `json:"languages"          jsonschema:"detected languages, most files first"`
	Frameworks  []indexer.Framework `json:"frameworks"         jsonschema:"detected frameworks and tools"`
	ConfigFiles []string            `json:"config_files"       jsonschema:"manifest and config files found"`
	Structure   indexer.Structure   `json:"structure"          jsonschema:"top-level layout"`
	Context     string              `json:"context,omitempty"  jsonschema:"summary used in generated prompts"`
}

func handleScanProject(env *Env) mcp.ToolHandlerFor[ScanInput, ScanOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ScanInput) (*mcp.CallToolResult, ScanOutput, error) {
		root, err := env.resolveRoot(input.Path)
		if err != nil {
			return nil, ScanOutput{}, err
		}
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			return nil, ScanOutput{}, fmt.Errorf("not a directory: %s", root)
		}
		return nil, scanOutput(env.scan(root)), nil
	}
}

// --- show_skillset ---

// SkillsetInput is the input for the show_skillset tool.
type SkillsetInput struct {
	Language string `json:"language"       jsonschema:"language name, e.g. go or rust"`
	Role     string `json:"role,omitempty" jsonschema:"prefix the skillset with this role"`
	Path     string `json:"path,omitempty" jsonschema:"project directory used for smart section selection"`
}

// SkillsetOutput is the output for the show_skillset tool.
type SkillsetOutput struct {
	Language string `json:"language" jsonschema:"resolved language"`
	Content  string `json:"content"  jsonschema:"markdown guidelines"`
	Tokens   int    `json:"tokens"   jsonschema:"estimated token count"`
}

func handleShowSkillset(env *Env) mcp.ToolHandlerFor[SkillsetInput, SkillsetOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input SkillsetInput) (*mcp.CallToolResult, SkillsetOutput, error) {
		if input.Language == "" {
			return nil, SkillsetOutput{}, errors.New("language is required")
		}
		root, err := env.resolveRoot(input.Path)
		if err != nil {
			return nil, SkillsetOutput{}, err
		}
		composer, _, err := env.project(root)
		if err != nil {
			return nil, SkillsetOutput{}, err
		}

		var role *roles.Role
		if input.Role != "" {
			r, err := roles.Parse(input.Role)
			if err != nil {
				return nil, SkillsetOutput{}, err
			}
			role = &r
		}

		content, err := composer.Show(input.Language, role, env.scan(root))
		if err != nil {
			return nil, SkillsetOutput{}, err
		}
		return nil, SkillsetOutput{
			Language: input.Language,
			Content:  content,
			Tokens:   prompt.EstimateTokens(content),
		}, nil
	}
}

// --- generate_prompt ---

// GenerateInput is the input for the generate_prompt tool.
type GenerateInput struct {
	Path         string   `json:"path,omitempty"          jsonschema:"project directory (defaults to the server's project)"`
	Language     string   `json:"language,omitempty"      jsonschema:"language; auto-detected when empty"`
	Role         string   `json:"role,omitempty"          jsonschema:"role name (default developer)"`
	Size         string   `json:"size,omitempty"          jsonschema:"minimal, compact or full (default compact)"`
	Sections     []string `json:"sections,omitempty"      jsonschema:"explicit sections; overrides size"`
	Smart        bool     `json:"smart,omitempty"         jsonschema:"add sections based on the project scan"`
	Agent        string   `json:"agent,omitempty"         jsonschema:"wrap output for copilot, claude, cursor, codex or aider"`
	Preset       string   `json:"preset,omitempty"        jsonschema:"apply a saved or built-in preset"`
	NoGuardrails bool     `json:"no_guardrails,omitempty" jsonschema:"omit hallucination guardrails"`
	Format       string   `json:"format,omitempty"        jsonschema:"markdown or plain (default markdown)"`
}

func handleGeneratePrompt(env *Env) mcp.ToolHandlerFor[GenerateInput, compose.Result] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input GenerateInput) (*mcp.CallToolResult, compose.Result, error) {
		root, err := env.resolveRoot(input.Path)
		if err != nil {
			return nil, compose.Result{}, err
		}
		composer, cfg, err := env.project(root)
		if err != nil {
			return nil, compose.Result{}, err
		}

		opts := compose.Options{
			Role:         input.Role,
			Language:     input.Language,
			Size:         input.Size,
			Sections:     input.Sections,
			Smart:        input.Smart,
			Agent:        input.Agent,
			Format:       input.Format,
			NoGuardrails: input.NoGuardrails,
		}
		changed := flagSet(input)
		compose.ApplyDefaults(&opts, cfg.Settings(), changed)
		if input.Preset != "" {
			store, err := loadPresets(root)
			if err != nil {
				return nil, compose.Result{}, err
			}
			p, ok := store.Get(input.Preset)
			if !ok {
				return nil, compose.Result{}, &presets.NotFoundError{Name: input.Preset}
			}
			compose.ApplyPreset(&opts, p, changed)
		}

		res, err := composer.Generate(opts, env.scan(root))
		if err != nil {
			return nil, compose.Result{}, err
		}
		return nil, *res, nil
	}
}

func loadPresets(root string) (*presets.Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting home directory: %w", err)
	}
	return presets.Load(root, home)
}
