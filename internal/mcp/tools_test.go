package mcp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/debendraoli/promptctl/internal/config"
	"github.com/debendraoli/promptctl/internal/presets"
)

// --- Test helpers ---

// makeProject creates a small Go project and isolates config lookups.
func makeProject(t *testing.T, files map[string]string) *Env {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(config.EnvConfigHome, filepath.Join(home, "promptctl"))

	root := t.TempDir()
	if files == nil {
		files = map[string]string{
			"go.mod":  "module example.com/demo\n\ngo 1.25\n",
			"main.go": "package main\n\nfunc main() {}\n",
		}
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	return &Env{Root: root}
}

// --- list_catalog ---

func TestHandleListCatalog(t *testing.T) {
	env := makeProject(t, map[string]string{
		".promptctl.toml": "[prompts.elixir]\ndescription = \"Team Elixir rules\"\ncontent = \"Use pattern matching.\"\n",
	})

	_, out, err := handleListCatalog(env)(context.Background(), nil, CatalogInput{})
	if err != nil {
		t.Fatalf("handleListCatalog() error = %v", err)
	}

	var sawGo, sawElixir bool
	for _, l := range out.Languages {
		switch l.Name {
		case "go":
			sawGo = true
			if l.Source != "built-in" {
				t.Errorf("go source = %q, want built-in", l.Source)
			}
		case "elixir":
			sawElixir = true
			if l.Source != "config" || !l.Customized {
				t.Errorf("elixir = %+v, want config source and customized", l)
			}
		}
	}
	if !sawGo || !sawElixir {
		t.Errorf("languages = %+v, want go and elixir", out.Languages)
	}
	if len(out.Roles) == 0 || out.Roles[0].Name != "developer" {
		t.Errorf("roles = %+v, want developer first", out.Roles)
	}
	if len(out.Agents) != 5 {
		t.Errorf("agents = %d, want 5", len(out.Agents))
	}
	if len(out.Sections) == 0 {
		t.Error("sections should not be empty")
	}
	if len(out.Presets) != len(presets.Builtins()) {
		t.Errorf("presets = %d, want %d", len(out.Presets), len(presets.Builtins()))
	}
}

// --- scan_project ---

func TestHandleScanProject(t *testing.T) {
	env := makeProject(t, nil)

	_, out, err := handleScanProject(env)(context.Background(), nil, ScanInput{})
	if err != nil {
		t.Fatalf("handleScanProject() error = %v", err)
	}
	if out.Primary != "go" {
		t.Errorf("primary = %q, want go", out.Primary)
	}
	if len(out.ConfigFiles) == 0 || out.ConfigFiles[0] != "go.mod" {
		t.Errorf("config files = %v, want go.mod", out.ConfigFiles)
	}
	if !strings.Contains(out.Context, "go") {
		t.Errorf("context = %q", out.Context)
	}
}

func TestHandleScanProject_NotADirectory(t *testing.T) {
	env := makeProject(t, nil)

	_, _, err := handleScanProject(env)(context.Background(), nil, ScanInput{
		Path: filepath.Join(env.Root, "main.go"),
	})
	if err == nil {
		t.Fatal("expected error for a file path")
	}
}

// --- show_skillset ---

func TestHandleShowSkillset(t *testing.T) {
	env := makeProject(t, nil)

	_, out, err := handleShowSkillset(env)(context.Background(), nil, SkillsetInput{Language: "go"})
	if err != nil {
		t.Fatalf("handleShowSkillset() error = %v", err)
	}
	if !strings.HasPrefix(out.Content, "# GO Development Guidelines") {
		t.Errorf("content starts with %q", firstLine(out.Content))
	}
	if !strings.Contains(out.Content, "Hallucination Prevention") {
		t.Error("skillset should include guardrails")
	}
	if out.Tokens != len(out.Content)/4 {
		t.Errorf("tokens = %d, want %d", out.Tokens, len(out.Content)/4)
	}
}

func TestHandleShowSkillset_WithRole(t *testing.T) {
	env := makeProject(t, nil)

	_, out, err := handleShowSkillset(env)(context.Background(), nil, SkillsetInput{Language: "go", Role: "reviewer"})
	if err != nil {
		t.Fatalf("handleShowSkillset() error = %v", err)
	}
	if strings.HasPrefix(out.Content, "# GO") {
		t.Error("role prefix should come before the heading")
	}
}

func TestHandleShowSkillset_Errors(t *testing.T) {
	env := makeProject(t, nil)
	handler := handleShowSkillset(env)

	tests := []struct {
		name  string
		input SkillsetInput
		want  string
	}{
		{name: "missing language", input: SkillsetInput{}, want: "language is required"},
		{name: "unknown language", input: SkillsetInput{Language: "cobol"}, want: "unknown language: 'cobol'"},
		{name: "unknown role", input: SkillsetInput{Language: "go", Role: "wizard"}, want: "wizard"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := handler(context.Background(), nil, tt.input)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

// --- generate_prompt ---

func TestHandleGeneratePrompt_Detects(t *testing.T) {
	env := makeProject(t, nil)

	_, out, err := handleGeneratePrompt(env)(context.Background(), nil, GenerateInput{})
	if err != nil {
		t.Fatalf("handleGeneratePrompt() error = %v", err)
	}
	if out.Language != "go" {
		t.Errorf("language = %q, want go", out.Language)
	}
	if out.Role != "developer" {
		t.Errorf("role = %q, want developer", out.Role)
	}
	if !strings.Contains(out.Content, "## Project Context") {
		t.Error("content should include project context")
	}
}

func TestHandleGeneratePrompt_Agent(t *testing.T) {
	env := makeProject(t, nil)

	_, out, err := handleGeneratePrompt(env)(context.Background(), nil, GenerateInput{Agent: "claude"})
	if err != nil {
		t.Fatalf("handleGeneratePrompt() error = %v", err)
	}
	if !strings.Contains(out.Content, "<instructions>\n") {
		t.Error("claude output should be wrapped in <instructions>")
	}
	if out.Budget == 0 {
		t.Error("budget should be set for an agent")
	}
}

func TestHandleGeneratePrompt_ConfigDefaults(t *testing.T) {
	env := makeProject(t, map[string]string{
		"go.mod":          "module example.com/demo\n",
		"main.go":         "package main\n",
		".promptctl.toml": "[defaults]\nrole = \"mentor\"\nguardrails = false\n",
	})

	_, out, err := handleGeneratePrompt(env)(context.Background(), nil, GenerateInput{})
	if err != nil {
		t.Fatalf("handleGeneratePrompt() error = %v", err)
	}
	if out.Role != "mentor" {
		t.Errorf("role = %q, want mentor from config", out.Role)
	}
	if strings.Contains(out.Content, "Hallucination Prevention") {
		t.Error("guardrails disabled in config")
	}

	_, out, err = handleGeneratePrompt(env)(context.Background(), nil, GenerateInput{Role: "architect"})
	if err != nil {
		t.Fatalf("handleGeneratePrompt() error = %v", err)
	}
	if out.Role != "architect" {
		t.Errorf("role = %q, explicit input should win", out.Role)
	}
}

func TestHandleGeneratePrompt_Preset(t *testing.T) {
	env := makeProject(t, nil)
	handler := handleGeneratePrompt(env)

	_, out, err := handler(context.Background(), nil, GenerateInput{Preset: "review"})
	if err != nil {
		t.Fatalf("handleGeneratePrompt() error = %v", err)
	}
	if out.Role != "reviewer" {
		t.Errorf("role = %q, want reviewer from preset", out.Role)
	}
	if len(out.Sections) != 4 {
		t.Errorf("sections = %v, want the preset's four", out.Sections)
	}

	_, _, err = handler(context.Background(), nil, GenerateInput{Preset: "nope"})
	if !errors.Is(err, presets.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestHandleGeneratePrompt_NoLanguage(t *testing.T) {
	env := makeProject(t, map[string]string{"README": "nothing here\n"})

	_, _, err := handleGeneratePrompt(env)(context.Background(), nil, GenerateInput{})
	if err == nil || !strings.Contains(err.Error(), "no language detected") {
		t.Errorf("error = %v, want no language detected", err)
	}
}

func TestNewServer(t *testing.T) {
	if NewServer("test", &Env{Root: t.TempDir()}) == nil {
		t.Fatal("NewServer() returned nil")
	}
}

func TestFlagSet(t *testing.T) {
	changed := flagSet(GenerateInput{Role: "mentor", Smart: true})
	for flag, want := range map[string]bool{
		"role": true, "smart": true, "size": false, "no-guardrails": false,
	} {
		if got := changed(flag); got != want {
			t.Errorf("changed(%q) = %v, want %v", flag, got, want)
		}
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
