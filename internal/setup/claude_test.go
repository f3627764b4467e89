package setup

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSessionStartScript(t *testing.T) {
	script := SessionStartScript("reviewer", []string{"go", "rust"})

	if !strings.HasPrefix(script, "#!/bin/bash\n") {
		t.Error("script should start with a bash shebang")
	}
	if !strings.Contains(script, "for LANG in go rust; do") {
		t.Errorf("script should loop over detected languages:\n%s", script)
	}
	if !strings.Contains(script, `promptctl show "$LANG" --role reviewer`) {
		t.Error("script should pass the role to promptctl show")
	}
	if strings.Contains(script, "@") {
		t.Error("placeholders should be replaced")
	}
}

func TestPreWriteScript(t *testing.T) {
	script := PreWriteScript("security")
	if !strings.Contains(script, "--role security") {
		t.Error("role should be substituted")
	}
	if !strings.Contains(script, `ts|tsx) LANG="typescript"`) {
		t.Error("extension mapping should cover typescript")
	}
}

func TestClaudeEnvInstall(t *testing.T) {
	t.Run("writes scripts and settings", func(t *testing.T) {
		root := t.TempDir()
		env := &ClaudeEnv{}

		files, err := env.Install(root, Request{Languages: []string{"go"}, Role: "developer"})
		if err != nil {
			t.Fatalf("Install() error: %v", err)
		}
		if len(files) != 3 {
			t.Fatalf("want 3 files, got %d", len(files))
		}

		for _, name := range []string{claudeSessionScript, claudePreWriteScript} {
			info, err := os.Stat(filepath.Join(root, ".claude", "hooks", name))
			if err != nil {
				t.Fatalf("%s missing: %v", name, err)
			}
			if info.Mode().Perm()&0o100 == 0 {
				t.Errorf("%s should be executable, mode %v", name, info.Mode())
			}
		}

		settings := readJSON(t, ClaudeSettingsPath(root))
		start := getEventGroups(settings, "SessionStart")
		if len(start) != 1 || start[0].Matcher != "startup" {
			t.Fatalf("SessionStart groups = %+v", start)
		}
		if start[0].Hooks[0].StatusMessage != "Loading promptctl guidelines…" {
			t.Errorf("statusMessage = %q", start[0].Hooks[0].StatusMessage)
		}
		if !strings.HasSuffix(start[0].Hooks[0].Command, "/.claude/hooks/promptctl-session-start.sh") {
			t.Errorf("command = %q", start[0].Hooks[0].Command)
		}
		pre := getEventGroups(settings, "PreToolUse")
		if len(pre) != 1 || pre[0].Matcher != "Write|Edit" {
			t.Errorf("PreToolUse groups = %+v", pre)
		}
	})

	t.Run("preserves existing settings", func(t *testing.T) {
		root := t.TempDir()
		writeJSON(t, ClaudeSettingsPath(root), map[string]any{
			"permissions": map[string]any{"allow": []any{"Bash(ls:*)"}},
			"hooks": map[string]any{
				"SessionStart": []any{
					map[string]any{
						"matcher": "",
						"hooks":   []any{map[string]any{"type": "command", "command": "bd prime"}},
					},
				},
			},
		})

		if _, err := (&ClaudeEnv{}).Install(root, Request{Role: "developer"}); err != nil {
			t.Fatalf("Install() error: %v", err)
		}

		settings := readJSON(t, ClaudeSettingsPath(root))
		if _, ok := settings["permissions"]; !ok {
			t.Error("permissions should be preserved")
		}
		start := getEventGroups(settings, "SessionStart")
		if len(start) != 2 {
			t.Fatalf("want existing + promptctl group, got %d", len(start))
		}
		if start[0].Hooks[0].Command != "bd prime" {
			t.Error("existing hook should stay first")
		}
	})

	t.Run("does not duplicate on reinstall", func(t *testing.T) {
		root := t.TempDir()
		env := &ClaudeEnv{}
		if _, err := env.Install(root, Request{Role: "developer"}); err != nil {
			t.Fatal(err)
		}
		if _, err := env.Install(root, Request{Role: "developer", Force: true}); err != nil {
			t.Fatalf("forced reinstall error: %v", err)
		}
		settings := readJSON(t, ClaudeSettingsPath(root))
		if n := len(getEventGroups(settings, "SessionStart")); n != 1 {
			t.Errorf("SessionStart groups = %d, want 1", n)
		}
	})

	t.Run("existing script without force", func(t *testing.T) {
		root := t.TempDir()
		env := &ClaudeEnv{}
		if _, err := env.Install(root, Request{Role: "developer"}); err != nil {
			t.Fatal(err)
		}
		_, err := env.Install(root, Request{Role: "developer"})
		var exists *ExistsError
		if !errors.As(err, &exists) {
			t.Fatalf("want ExistsError, got %v", err)
		}
		if !errors.Is(err, fs.ErrExist) {
			t.Error("error should match fs.ErrExist")
		}
	})

	t.Run("unparsable settings are replaced", func(t *testing.T) {
		root := t.TempDir()
		writeTestFile(t, ClaudeSettingsPath(root), "{not json")
		if _, err := (&ClaudeEnv{}).Install(root, Request{Role: "developer"}); err != nil {
			t.Fatalf("Install() error: %v", err)
		}
		if len(getEventGroups(readJSON(t, ClaudeSettingsPath(root)), "PreToolUse")) != 1 {
			t.Error("hooks should be written")
		}
	})
}

func TestClaudeEnvRemove(t *testing.T) {
	t.Run("removes scripts and hook entries", func(t *testing.T) {
		root := t.TempDir()
		env := &ClaudeEnv{}
		writeJSON(t, ClaudeSettingsPath(root), map[string]any{
			"permissions": map[string]any{"allow": []any{}},
		})
		if _, err := env.Install(root, Request{Role: "developer"}); err != nil {
			t.Fatal(err)
		}

		removed, err := env.Remove(root)
		if err != nil {
			t.Fatalf("Remove() error: %v", err)
		}
		if len(removed) != 3 {
			t.Errorf("removed = %v, want 3 paths", removed)
		}

		settings := readJSON(t, ClaudeSettingsPath(root))
		if _, ok := settings["hooks"]; ok {
			t.Error("empty hooks section should be removed")
		}
		if _, ok := settings["permissions"]; !ok {
			t.Error("other settings should be preserved")
		}
	})

	t.Run("keeps other hooks", func(t *testing.T) {
		root := t.TempDir()
		writeJSON(t, ClaudeSettingsPath(root), map[string]any{
			"hooks": map[string]any{
				"SessionStart": []any{
					map[string]any{"matcher": "", "hooks": []any{map[string]any{"type": "command", "command": "bd prime"}}},
					map[string]any{"matcher": "startup", "hooks": []any{map[string]any{"type": "command", "command": claudeHookCommand(claudeSessionScript)}}},
				},
			},
		})

		if _, err := (&ClaudeEnv{}).Remove(root); err != nil {
			t.Fatal(err)
		}
		start := getEventGroups(readJSON(t, ClaudeSettingsPath(root)), "SessionStart")
		if len(start) != 1 || start[0].Hooks[0].Command != "bd prime" {
			t.Errorf("SessionStart = %+v", start)
		}
	})

	t.Run("nothing installed", func(t *testing.T) {
		removed, err := (&ClaudeEnv{}).Remove(t.TempDir())
		if err != nil {
			t.Fatal(err)
		}
		if len(removed) != 0 {
			t.Errorf("removed = %v", removed)
		}
	})

	t.Run("settings without promptctl untouched", func(t *testing.T) {
		root := t.TempDir()
		writeJSON(t, ClaudeSettingsPath(root), map[string]any{"model": "opus"})
		removed, err := (&ClaudeEnv{}).Remove(root)
		if err != nil {
			t.Fatal(err)
		}
		if len(removed) != 0 {
			t.Errorf("settings.json should not be reported, got %v", removed)
		}
	})
}

func TestClaudeEnvList(t *testing.T) {
	root := t.TempDir()
	env := &ClaudeEnv{}

	paths, err := env.List(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 0 {
		t.Errorf("List() before install = %v", paths)
	}

	if _, err := env.Install(root, Request{Role: "developer"}); err != nil {
		t.Fatal(err)
	}
	paths, err = env.List(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 3 {
		t.Errorf("List() = %v, want 2 scripts and settings.json", paths)
	}
}

func TestClaudeEnvPreview(t *testing.T) {
	paths := (&ClaudeEnv{}).Preview("/repo", []string{"go"})
	if len(paths) != 3 {
		t.Fatalf("Preview() = %v", paths)
	}
	if filepath.Base(paths[2]) != "settings.json" {
		t.Errorf("last preview path = %q", paths[2])
	}
}

// writeTestFile creates a file and its parent directories.
func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	// #nosec G306 -- test fixtures
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// writeJSON is a test helper that writes a map as formatted JSON.
func writeJSON(t *testing.T, path string, data map[string]any) {
	t.Helper()
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		t.Fatal(err)
	}
	writeTestFile(t, path, string(b))
}

// readJSON is a test helper that reads a JSON file into a map.
func readJSON(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	return m
}
