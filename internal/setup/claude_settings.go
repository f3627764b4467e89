package setup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

func claudeHookCommand(script string) string {
	return `"$CLAUDE_PROJECT_DIR"/.claude/hooks/` + script
}

// promptctlHookGroups are the entries merged into settings.json, per event.
func promptctlHookGroups() map[string]hookGroup {
	return map[string]hookGroup{
		"SessionStart": {
			Matcher: "startup",
			Hooks: []hookEntry{{
				Type:          "command",
				Command:       claudeHookCommand(claudeSessionScript),
				StatusMessage: "Loading promptctl guidelines…",
			}},
		},
		"PreToolUse": {
			Matcher: "Write|Edit",
			Hooks: []hookEntry{{
				Type:    "command",
				Command: claudeHookCommand(claudePreWriteScript),
			}},
		},
	}
}

// readSettings loads settings.json as a generic map. A missing, unparsable or
// non-object file yields an empty map and exists=false for the first case.
func readSettings(path string) (settings map[string]any, exists bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]any{}, false, nil
		}
		return nil, false, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &settings); err != nil || settings == nil {
		return map[string]any{}, true, nil
	}
	return settings, true, nil
}

func writeSettings(path string, settings map[string]any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(settings); err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	// #nosec G306 -- settings are not secrets
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// mergeClaudeSettings adds the promptctl hook groups to settings.json. Events
// that already carry a promptctl group are left alone. Other keys survive.
func mergeClaudeSettings(path string) error {
	settings, _, err := readSettings(path)
	if err != nil {
		return err
	}

	hooks, ok := settings["hooks"].(map[string]any)
	if !ok {
		hooks = map[string]any{}
	}
	for event, group := range promptctlHookGroups() {
		existing, _ := hooks[event].([]any)
		if hasPromptctlGroup(getEventGroups(settings, event)) {
			continue
		}
		hooks[event] = append(existing, group)
	}
	settings["hooks"] = hooks

	return writeSettings(path, settings)
}

// removeFromClaudeSettings strips promptctl groups, drops events left empty
// and drops "hooks" if nothing remains. It reports whether the file changed.
func removeFromClaudeSettings(path string) (bool, error) {
	settings, exists, err := readSettings(path)
	if err != nil || !exists {
		return false, err
	}
	hooks, ok := settings["hooks"].(map[string]any)
	if !ok {
		return false, nil
	}

	changed := false
	for event, raw := range hooks {
		groups, ok := raw.([]any)
		if !ok {
			continue
		}
		kept := make([]any, 0, len(groups))
		for _, g := range groups {
			if parsed, ok := parseHookGroup(g); ok && parsed.isPromptctl() {
				changed = true
				continue
			}
			kept = append(kept, g)
		}
		if len(kept) == 0 {
			delete(hooks, event)
			changed = true
			continue
		}
		hooks[event] = kept
	}
	if !changed {
		return false, nil
	}
	if len(hooks) == 0 {
		delete(settings, "hooks")
	}
	return true, writeSettings(path, settings)
}

func settingsMentionPromptctl(path string) bool {
	settings, exists, err := readSettings(path)
	if err != nil || !exists {
		return false
	}
	for event := range promptctlHookGroups() {
		if hasPromptctlGroup(getEventGroups(settings, event)) {
			return true
		}
	}
	return false
}
