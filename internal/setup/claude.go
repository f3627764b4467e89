package setup

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/debendraoli/promptctl/internal/fsutil"
)

const (
	claudeSessionScript  = "promptctl-session-start.sh"
	claudePreWriteScript = "promptctl-pre-write.sh"
)

const claudeSessionStartTemplate = `#!/bin/bash
# promptctl: Claude Code SessionStart hook
# Injects project-aware coding guidelines into the session context.

if ! command -v promptctl >/dev/null 2>&1; then
  exit 0
fi

GUIDELINES=""
for LANG in @LANGUAGES@; do
  OUT=$(promptctl show "$LANG" --role @ROLE@ 2>/dev/null) || continue
  GUIDELINES="${GUIDELINES}${OUT}

"
done

if [ -z "$GUIDELINES" ]; then
  GUIDELINES=$(promptctl list 2>/dev/null)
fi
if [ -z "$GUIDELINES" ]; then
  exit 0
fi

# Return guidelines as additionalContext so Claude sees them
jq -n --arg ctx "$GUIDELINES" '{
  "hookSpecificOutput": {
    "hookEventName": "SessionStart",
    "additionalContext": $ctx
  }
}'
`

const claudePreWriteTemplate = `#!/bin/bash
# promptctl: Claude Code PreToolUse hook (Write|Edit)
# Adds a reminder of the relevant language guidelines before file writes.

if ! command -v promptctl >/dev/null 2>&1; then
  exit 0
fi

# Extract the file path from the tool input on stdin
INPUT=$(cat)
FILE_PATH=$(echo "$INPUT" | jq -r '.tool_input.file_path // empty')

if [ -z "$FILE_PATH" ]; then
  exit 0
fi

EXT="${FILE_PATH##*.}"
case "$EXT" in
  rs)   LANG="rust" ;;
  go)   LANG="go" ;;
  ts|tsx) LANG="typescript" ;;
  sol)  LANG="solidity" ;;
  leo)  LANG="leo" ;;
  *)    exit 0 ;;
esac

REMINDER=$(promptctl show "$LANG" --role @ROLE@ 2>/dev/null | head -30)
if [ -z "$REMINDER" ]; then
  exit 0
fi

jq -n --arg ctx "Guidelines reminder for $LANG: follow the project coding standards." '{
  "hookSpecificOutput": {
    "hookEventName": "PreToolUse",
    "additionalContext": $ctx
  }
}'
`

// SessionStartScript renders the SessionStart hook. It shows the skillset of
// every language in languages for role.
func SessionStartScript(role string, languages []string) string {
	return strings.NewReplacer(
		"@ROLE@", role,
		"@LANGUAGES@", strings.Join(languages, " "),
	).Replace(claudeSessionStartTemplate)
}

// PreWriteScript renders the PreToolUse hook for role.
func PreWriteScript(role string) string {
	return strings.ReplaceAll(claudePreWriteTemplate, "@ROLE@", role)
}

// ClaudeEnv installs Claude Code hooks.
type ClaudeEnv struct{}

func init() {
	Register(&ClaudeEnv{})
}

// Name returns the CLI identifier.
func (c *ClaudeEnv) Name() string { return "claude" }

// DisplayName returns the human-readable name.
func (c *ClaudeEnv) DisplayName() string { return "Claude Code" }

func claudeHooksDir(root string) string {
	return filepath.Join(root, ".claude", "hooks")
}

// ClaudeSettingsPath is the project settings file hooks are merged into.
func ClaudeSettingsPath(root string) string {
	return filepath.Join(root, ".claude", "settings.json")
}

// Install writes both scripts with the execute bit and merges the hook
// entries into settings.json.
func (c *ClaudeEnv) Install(root string, req Request) ([]HookFile, error) {
	log := req.logger()
	dir := claudeHooksDir(root)

	scripts := []struct {
		name, content, description string
	}{
		{claudeSessionScript, SessionStartScript(req.Role, req.Languages), "Injects promptctl guidelines on session start"},
		{claudePreWriteScript, PreWriteScript(req.Role), "Validates language guidelines before file writes"},
	}

	var written []HookFile
	for _, s := range scripts {
		path := filepath.Join(dir, s.name)
		if err := fsutil.WriteFile(path, s.content, 0o755, req.Force); err != nil {
			return written, err
		}
		log.Debug("wrote hook script", zap.String("path", path))
		written = append(written, HookFile{Path: path, Description: s.description})
	}

	settingsPath := ClaudeSettingsPath(root)
	if err := mergeClaudeSettings(settingsPath); err != nil {
		return written, err
	}
	log.Debug("merged claude settings", zap.String("path", settingsPath))
	written = append(written, HookFile{Path: settingsPath, Description: "Claude Code hook configuration"})
	return written, nil
}

// Remove deletes both scripts and strips promptctl entries from settings.json.
func (c *ClaudeEnv) Remove(root string) ([]string, error) {
	var removed []string
	for _, name := range []string{claudeSessionScript, claudePreWriteScript} {
		path := filepath.Join(claudeHooksDir(root), name)
		ok, err := fsutil.RemoveIfExists(path)
		if err != nil {
			return removed, err
		}
		if ok {
			removed = append(removed, path)
		}
	}

	settingsPath := ClaudeSettingsPath(root)
	changed, err := removeFromClaudeSettings(settingsPath)
	if err != nil {
		return removed, fmt.Errorf("cleaning %s: %w", settingsPath, err)
	}
	if changed {
		removed = append(removed, settingsPath)
	}
	return removed, nil
}

// List returns the promptctl scripts plus settings.json when it references
// promptctl.
func (c *ClaudeEnv) List(root string) ([]string, error) {
	paths, err := listPrefixed(claudeHooksDir(root))
	if err != nil {
		return nil, err
	}
	settingsPath := ClaudeSettingsPath(root)
	if settingsMentionPromptctl(settingsPath) {
		paths = append(paths, settingsPath)
	}
	return paths, nil
}

// Preview returns the two scripts and settings.json.
func (c *ClaudeEnv) Preview(root string, _ []string) []string {
	dir := claudeHooksDir(root)
	return []string{
		filepath.Join(dir, claudeSessionScript),
		filepath.Join(dir, claudePreWriteScript),
		ClaudeSettingsPath(root),
	}
}
