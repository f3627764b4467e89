package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	for _, env := range envBindings {
		t.Setenv(env, "")
		_ = os.Unsetenv(env)
	}
	return home
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestFind_WalksUp(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	want := writeConfig(t, root, "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	if got := Find(nested); got != want {
		t.Errorf("Find() = %q, want %q", got, want)
	}
}

func TestFind_FallsBackToHome(t *testing.T) {
	home := isolate(t)
	want := writeConfig(t, home, "")

	if got := Find(t.TempDir()); got != want {
		t.Errorf("Find() = %q, want %q", got, want)
	}
}

func TestLoad_NoFile(t *testing.T) {
	isolate(t)

	cfg, path, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != nil || path != "" {
		t.Errorf("Load() = %v, %q; want nil config", cfg, path)
	}
}

func TestLoad_Prompts(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeConfig(t, dir, `
[defaults]
role = "reviewer"
size = "full"

[prompts.Python]
description = "Python rules"
content = "Use type hints."

[prompts.go]
mode = "Append"
append = "Run make lint."
`)

	cfg, path, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if path == "" {
		t.Fatal("Load() returned empty path")
	}
	if cfg.Defaults.Role != "reviewer" || cfg.Defaults.Size != "full" {
		t.Errorf("Defaults = %+v", cfg.Defaults)
	}
	if !cfg.Defaults.Guardrails {
		t.Error("Guardrails should default to true")
	}

	langs := cfg.CustomLanguages()
	if strings.Join(langs, ",") != "go,python" {
		t.Errorf("CustomLanguages() = %v", langs)
	}

	py, ok := cfg.Prompt("PYTHON")
	if !ok {
		t.Fatal("Prompt(PYTHON) not found")
	}
	if py.Mode != ModeReplace || py.Content != "Use type hints." {
		t.Errorf("python prompt = %+v", py)
	}

	goPrompt, _ := cfg.Prompt("go")
	if goPrompt.Mode != ModeAppend {
		t.Errorf("go mode = %q, want append", goPrompt.Mode)
	}
}

func TestLoad_InvalidMode(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeConfig(t, dir, "[prompts.go]\nmode = \"sideways\"\n")

	if _, _, err := Load(dir); err == nil || !strings.Contains(err.Error(), "invalid mode") {
		t.Errorf("Load() error = %v, want invalid mode", err)
	}
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeConfig(t, dir, "[defaults]\nrole = \"mentor\"\n")
	t.Setenv("PROMPTCTL_ROLE", "security")
	t.Setenv("PROMPTCTL_SMART", "true")

	cfg, _, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Defaults.Role != "security" {
		t.Errorf("Role = %q, want security", cfg.Defaults.Role)
	}
	if !cfg.Defaults.Smart {
		t.Error("Smart should be true from env")
	}
}

func TestSettings_NilConfig(t *testing.T) {
	isolate(t)
	t.Setenv("PROMPTCTL_SIZE", "minimal")

	var cfg *Config
	got := cfg.Settings()
	if got.Role != "developer" || got.Size != "minimal" || !got.Guardrails {
		t.Errorf("Settings() = %+v", got)
	}
}

func TestApplyMerge(t *testing.T) {
	cfg := &Config{Prompts: map[string]CustomPrompt{
		"replace":      {Mode: ModeReplace, Content: "custom"},
		"prepend":      {Mode: ModePrepend, Prepend: "before", Content: "ignored"},
		"prepend-body": {Mode: ModePrepend, Content: "body"},
		"append":       {Mode: ModeAppend, Append: "after"},
		"append-body":  {Mode: ModeAppend, Content: "body"},
		"merge":        {Mode: ModeMerge, Prepend: "before", Append: "after"},
		"merge-head":   {Mode: ModeMerge, Prepend: "before"},
		"merge-none":   {Mode: ModeMerge},
	}}

	tests := []struct {
		lang string
		want string
	}{
		{"replace", "custom"},
		{"prepend", "before\n\nBUILTIN"},
		{"prepend-body", "body\n\nBUILTIN"},
		{"append", "BUILTIN\n\nafter"},
		{"append-body", "BUILTIN\n\nbody"},
		{"merge", "before\n\nBUILTIN\n\nafter"},
		{"merge-head", "before\n\nBUILTIN"},
		{"merge-none", "BUILTIN"},
		{"missing", "BUILTIN"},
	}
	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			if got := cfg.ApplyMerge(tt.lang, "BUILTIN"); got != tt.want {
				t.Errorf("ApplyMerge(%q) = %q, want %q", tt.lang, got, tt.want)
			}
		})
	}

	var nilCfg *Config
	if got := nilCfg.ApplyMerge("go", "BUILTIN"); got != "BUILTIN" {
		t.Errorf("nil ApplyMerge = %q", got)
	}
}

func TestInit(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	path, err := Init(dir, false)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if path != filepath.Join(dir, FileName) {
		t.Errorf("path = %q", path)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() on default content: %v", err)
	}
	if cfg.Defaults.Role != "developer" || len(cfg.Prompts) != 0 {
		t.Errorf("default config = %+v", cfg)
	}

	_, err = Init(dir, false)
	var exists *ExistsError
	if !errors.As(err, &exists) || !errors.Is(err, fs.ErrExist) {
		t.Errorf("second Init() error = %v, want ExistsError", err)
	}

	if _, err := Init(dir, true); err != nil {
		t.Errorf("forced Init() error = %v", err)
	}
}

func TestRender(t *testing.T) {
	cfg := &Config{
		Defaults: Defaults{Role: "developer", Size: "compact", Guardrails: true},
		Prompts:  map[string]CustomPrompt{"python": {Content: "x", Mode: ModeReplace}},
	}
	out, err := Render(cfg)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for _, want := range []string{"[defaults]", "role = 'developer'", "[prompts.python]", "mode = 'replace'"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q:\n%s", want, out)
		}
	}

	if _, err := Render(nil); err == nil {
		t.Error("Render(nil) should fail")
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": ModeReplace, "MERGE": ModeMerge, " prepend ": ModePrepend} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseMode("nope"); err == nil {
		t.Error("ParseMode(nope) should fail")
	}
}
