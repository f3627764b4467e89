package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit_Claude(t *testing.T) {
	root := setupProject(t, nil)

	stdout, _, err := runCLI(t, "init", "claude", "--role", "reviewer")
	if err != nil {
		t.Fatalf("init error = %v", err)
	}

	for _, rel := range []string{
		"CLAUDE.md",
		".claude/hooks/promptctl-session-start.sh",
		".claude/hooks/promptctl-pre-write.sh",
		".claude/settings.json",
		".promptctl.toml",
	} {
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel))); err != nil {
			t.Errorf("%s not created: %v", rel, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(root, "CLAUDE.md"))
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.Contains(content, "Detected languages: go") {
		t.Error("CLAUDE.md should list detected languages")
	}
	if strings.Contains(content, "# GO Development Guidelines") {
		t.Error("CLAUDE.md should not inline the skillset")
	}

	script, _ := os.ReadFile(filepath.Join(root, ".claude", "hooks", "promptctl-session-start.sh"))
	if !strings.Contains(string(script), "--role reviewer") {
		t.Error("session script should use the chosen role")
	}

	for _, want := range []string{"Detected: go 1.25", "Installed Claude Code hooks", "Created .promptctl.toml", "Done!"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestInit_CursorWritesRules(t *testing.T) {
	root := setupProject(t, nil)

	if _, _, err := runCLI(t, "init", "cursor"); err != nil {
		t.Fatalf("init error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, ".cursor", "rules", "promptctl-go.mdc"))
	if err != nil {
		t.Fatalf("go rule not written: %v", err)
	}
	if !strings.Contains(string(data), "# GO Development Guidelines") {
		t.Error("rule should carry the go skillset")
	}
}

func TestInit_DryRun(t *testing.T) {
	root := setupProject(t, nil)

	stdout, _, err := runCLI(t, "init", "copilot", "--dry-run")
	if err != nil {
		t.Fatalf("init --dry-run error = %v", err)
	}
	if !strings.Contains(stdout, "copilot-instructions.md") || !strings.Contains(stdout, "promptctl-go.instructions.md") {
		t.Errorf("dry run should preview files:\n%s", stdout)
	}
	entries, _ := os.ReadDir(root)
	for _, e := range entries {
		if e.Name() == ".github" || e.Name() == ".promptctl.toml" {
			t.Errorf("dry run wrote %s", e.Name())
		}
	}
}

func TestInit_KeepsExistingConfig(t *testing.T) {
	root := setupProject(t, nil)
	writeFiles(t, root, map[string]string{".promptctl.toml": "[defaults]\nrole = \"mentor\"\n"})

	if _, _, err := runCLI(t, "init", "codex"); err != nil {
		t.Fatalf("init error = %v", err)
	}
	data, _ := os.ReadFile(filepath.Join(root, ".promptctl.toml"))
	if string(data) != "[defaults]\nrole = \"mentor\"\n" {
		t.Error("existing .promptctl.toml should not be touched")
	}
}

func TestInit_RejectsRaw(t *testing.T) {
	setupProject(t, nil)

	_, stderr, err := runCLI(t, "init", "raw")
	if err == nil || !strings.Contains(stderr, "cannot init for 'raw' agent, pick a real agent") {
		t.Errorf("err = %v, stderr = %q", err, stderr)
	}
}

func TestClean_RemovesEverything(t *testing.T) {
	root := setupProject(t, nil)
	if _, _, err := runCLI(t, "init", "claude"); err != nil {
		t.Fatalf("init error = %v", err)
	}

	stdout, _, err := runCLI(t, "clean", "claude")
	if err != nil {
		t.Fatalf("clean error = %v", err)
	}
	if !strings.Contains(stdout, "Removed") {
		t.Errorf("stdout = %q", stdout)
	}
	for _, rel := range []string{"CLAUDE.md", ".claude/hooks/promptctl-session-start.sh"} {
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel))); !os.IsNotExist(err) {
			t.Errorf("%s should be removed", rel)
		}
	}

	_, stderr, err := runCLI(t, "clean", "claude")
	if err != nil {
		t.Fatalf("second clean error = %v", err)
	}
	if !strings.Contains(stderr, "No promptctl files found for Claude Code.") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestHooks_InstallListRemove(t *testing.T) {
	root := setupProject(t, nil)

	if _, _, err := runCLI(t, "hooks", "install", "copilot"); err != nil {
		t.Fatalf("hooks install error = %v", err)
	}
	rule := filepath.Join(root, ".github", "instructions", "promptctl-go.instructions.md")
	if _, err := os.Stat(rule); err != nil {
		t.Fatalf("rule not written: %v", err)
	}

	stdout, _, err := runCLI(t, "--json", "hooks", "list")
	if err != nil {
		t.Fatalf("hooks list error = %v", err)
	}
	var entries []hooksListEntry
	decodeJSON(t, stdout, &entries)
	found := false
	for _, e := range entries {
		if e.Agent == "copilot" && len(e.Files) == 1 {
			found = true
		}
	}
	if !found {
		t.Errorf("copilot hook not listed: %+v", entries)
	}

	if _, _, err := runCLI(t, "hooks", "install", "copilot"); err == nil {
		t.Error("second install without --force should fail")
	}

	if _, _, err := runCLI(t, "hooks", "remove", "copilot"); err != nil {
		t.Fatalf("hooks remove error = %v", err)
	}
	if _, err := os.Stat(rule); !os.IsNotExist(err) {
		t.Error("rule should be removed")
	}
}

func TestHooks_UnsupportedAgent(t *testing.T) {
	setupProject(t, nil)

	_, stderr, err := runCLI(t, "hooks", "install", "aider")
	if err == nil || !strings.Contains(stderr, "no native hook support") {
		t.Errorf("err = %v, stderr = %q", err, stderr)
	}
}

func TestHooks_NoLanguages(t *testing.T) {
	setupProject(t, map[string]string{"README": "x\n"})

	_, stderr, err := runCLI(t, "hooks", "install", "cursor")
	if err == nil || !strings.Contains(stderr, "no supported languages detected") {
		t.Errorf("err = %v, stderr = %q", err, stderr)
	}
}
