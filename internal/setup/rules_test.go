package setup

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRegistry(t *testing.T) {
	envs := All()
	var names []string
	for _, env := range envs {
		names = append(names, env.Name())
	}
	if strings.Join(names, ",") != "claude,cursor,copilot" {
		t.Errorf("All() order = %v", names)
	}

	env, err := Get("cursor")
	if err != nil {
		t.Fatalf("Get(cursor) error: %v", err)
	}
	if env.DisplayName() != "Cursor" {
		t.Errorf("DisplayName() = %q", env.DisplayName())
	}

	_, err = Get("codex")
	var noHooks *NoHookSupportError
	if !errors.As(err, &noHooks) {
		t.Fatalf("want NoHookSupportError, got %v", err)
	}
	if err.Error() != "agent 'codex' has no native hook support (use 'emit' instead)" {
		t.Errorf("error = %q", err.Error())
	}
}

func TestCursorInstall(t *testing.T) {
	root := t.TempDir()
	env, _ := Get("cursor")

	files, err := env.Install(root, Request{
		Languages: []string{"go", "python", "typescript"},
		Role:      "reviewer",
		Skillsets: map[string]string{"go": "# GO Development Guidelines"},
	})
	if err != nil {
		t.Fatalf("Install() error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("want go and typescript rules, got %+v", files)
	}
	if files[1].Description != "typescript skillset for .ts/.tsx files" {
		t.Errorf("description = %q", files[1].Description)
	}

	data, err := os.ReadFile(filepath.Join(root, ".cursor", "rules", "promptctl-go.mdc"))
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	for _, want := range []string{
		"---\n",
		`description: "go coding guidelines from promptctl, applied when editing .go files"`,
		`globs: "**/*.go"`,
		"alwaysApply: false",
		"<!-- Generated by promptctl init cursor --role reviewer -->",
		"<!-- Regenerate: promptctl init cursor --role reviewer --force -->",
		"# GO Development Guidelines\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("rule missing %q:\n%s", want, got)
		}
	}

	ts, err := os.ReadFile(filepath.Join(root, ".cursor", "rules", "promptctl-typescript.mdc"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(ts), MissingSkillset) {
		t.Error("missing skillset should render the placeholder")
	}
}

func TestCopilotInstall(t *testing.T) {
	root := t.TempDir()
	env, _ := Get("copilot")

	if _, err := env.Install(root, Request{
		Languages: []string{"rust"},
		Role:      "developer",
		Skillsets: map[string]string{"rust": "RUST"},
	}); err != nil {
		t.Fatalf("Install() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, ".github", "instructions", "promptctl-rust.instructions.md"))
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	if !strings.HasPrefix(got, "---\napplyTo: \"**/*.rs\"\n---\n\n") {
		t.Errorf("frontmatter = %q", got)
	}
	if !strings.Contains(got, "<!-- COPILOT INSTRUCTIONS START, rust skillset -->") {
		t.Error("missing START marker")
	}
	if !strings.HasSuffix(got, "RUST\n\n<!-- COPILOT INSTRUCTIONS END -->\n") {
		t.Errorf("tail = %q", got)
	}
}

func TestRuleInstallNoLanguages(t *testing.T) {
	for _, name := range []string{"cursor", "copilot"} {
		t.Run(name, func(t *testing.T) {
			env, _ := Get(name)
			_, err := env.Install(t.TempDir(), Request{Languages: []string{"python"}, Role: "developer"})
			if !errors.Is(err, ErrNoLanguages) {
				t.Errorf("want ErrNoLanguages, got %v", err)
			}
		})
	}
}

func TestRuleInstallExisting(t *testing.T) {
	root := t.TempDir()
	env, _ := Get("cursor")
	req := Request{Languages: []string{"go"}, Role: "developer"}

	if _, err := env.Install(root, req); err != nil {
		t.Fatal(err)
	}
	_, err := env.Install(root, req)
	var exists *ExistsError
	if !errors.As(err, &exists) {
		t.Fatalf("want ExistsError, got %v", err)
	}

	req.Force = true
	if _, err := env.Install(root, req); err != nil {
		t.Errorf("forced install error: %v", err)
	}
}

func TestRuleRemoveAndList(t *testing.T) {
	root := t.TempDir()
	env, _ := Get("copilot")

	other := filepath.Join(root, ".github", "instructions", "team.instructions.md")
	writeTestFile(t, other, "keep me")

	if _, err := env.Install(root, Request{Languages: []string{"go", "leo"}, Role: "developer"}); err != nil {
		t.Fatal(err)
	}

	listed, err := env.List(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(listed) != 2 {
		t.Errorf("List() = %v", listed)
	}

	removed, err := env.Remove(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(removed) != 2 {
		t.Errorf("Remove() = %v", removed)
	}
	if _, err := os.Stat(other); err != nil {
		t.Error("non-promptctl files must be kept")
	}
}

func TestRulePreview(t *testing.T) {
	env, _ := Get("cursor")
	paths := env.Preview("/repo", []string{"go", "python", "solidity"})
	if len(paths) != 2 {
		t.Fatalf("Preview() = %v", paths)
	}
	if filepath.Base(paths[1]) != "promptctl-solidity.mdc" {
		t.Errorf("path = %q", paths[1])
	}
}
