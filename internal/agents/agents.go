// Package agents knows the instruction-file conventions of each supported AI
// coding agent: where the file lives, how it is wrapped and how large it
// should be.
package agents

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/debendraoli/promptctl/internal/fsutil"
)

// Agent names a supported coding agent.
type Agent string

// Agents.
const (
	Copilot Agent = "copilot"
	Claude  Agent = "claude"
	Cursor  Agent = "cursor"
	Codex   Agent = "codex"
	Aider   Agent = "aider"
	Raw     Agent = "raw"
)

type agentInfo struct {
	display     string
	file        string
	globalFile  string
	budget      int
	aliases     []string
	description string
}

var registry = map[Agent]agentInfo{
	Copilot: {
		display:     "GitHub Copilot",
		file:        ".github/copilot-instructions.md",
		globalFile:  ".github/copilot-instructions.md",
		budget:      4000,
		aliases:     []string{"github-copilot", "gh-copilot"},
		description: "GitHub Copilot — .github/copilot-instructions.md",
	},
	Claude: {
		display:     "Claude Code",
		file:        "CLAUDE.md",
		globalFile:  ".claude/CLAUDE.md",
		budget:      8000,
		aliases:     []string{"claude-code", "anthropic"},
		description: "Claude Code — CLAUDE.md at project root",
	},
	Cursor: {
		display:     "Cursor",
		file:        ".cursor/rules/promptctl.mdc",
		globalFile:  ".cursor/rules/promptctl.mdc",
		budget:      4000,
		description: "Cursor IDE — .cursor/rules/promptctl.mdc",
	},
	Codex: {
		display:     "OpenAI Codex",
		file:        "AGENTS.md",
		budget:      6000,
		aliases:     []string{"openai-codex", "openai"},
		description: "OpenAI Codex — AGENTS.md at project root",
	},
	Aider: {
		display:     "Aider",
		file:        "CONVENTIONS.md",
		budget:      4000,
		description: "Aider — CONVENTIONS.md at project root",
	},
	Raw: {
		display:     "Raw",
		budget:      8000,
		aliases:     []string{"none", "generic"},
		description: "Raw output — no agent wrapper",
	},
}

var order = []Agent{Copilot, Claude, Cursor, Codex, Aider}

// ErrNoFilePath is returned when an agent has no instruction file for the
// requested mode.
var ErrNoFilePath = errors.New("agent has no instruction file path")

// ExistsError reports an instruction file that is already present.
type ExistsError = fsutil.ExistsError

// UnknownError reports an unrecognized agent name.
type UnknownError struct {
	Name string
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("unknown agent: '%s'. Supported: %s", e.Name, strings.Join(Names(), ", "))
}

// All returns every agent that writes a file, in display order. Raw is
// excluded.
func All() []Agent {
	out := make([]Agent, len(order))
	copy(out, order)
	return out
}

// Names returns the names of All.
func Names() []string {
	names := make([]string, 0, len(order))
	for _, a := range order {
		names = append(names, string(a))
	}
	return names
}

// Parse resolves an agent name or alias, ignoring case.
func Parse(name string) (Agent, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for a, s := range registry {
		if string(a) == key {
			return a, nil
		}
		for _, alias := range s.aliases {
			if alias == key {
				return a, nil
			}
		}
	}
	return "", &UnknownError{Name: name}
}

// Name returns the canonical name.
func (a Agent) Name() string { return string(a) }

func (a Agent) String() string { return string(a) }

// DisplayName is the human-facing product name.
func (a Agent) DisplayName() string { return registry[a].display }

// Description pairs the display name with where the file goes.
func (a Agent) Description() string { return registry[a].description }

// InstructionFile is the project-relative file path, empty for raw.
func (a Agent) InstructionFile() string { return registry[a].file }

// GlobalInstructionFile is the home-relative file path, empty when the agent
// has no global file.
func (a Agent) GlobalInstructionFile() string { return registry[a].globalFile }

// TokenBudget is the recommended maximum prompt size.
func (a Agent) TokenBudget() int { return registry[a].budget }

// Aliases returns the alternative names Parse accepts.
func (a Agent) Aliases() []string { return registry[a].aliases }

// ResolvePath returns where the instruction file goes. Raw has no path and
// global mode needs a global file.
func (a Agent) ResolvePath(root string, global bool, home string) (string, bool) {
	if a == Raw {
		return "", false
	}
	if global {
		rel := a.GlobalInstructionFile()
		if rel == "" || home == "" {
			return "", false
		}
		return filepath.Join(home, filepath.FromSlash(rel)), true
	}
	return filepath.Join(root, filepath.FromSlash(a.InstructionFile())), true
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

// Path resolves the instruction file against the user's home directory.
func (a Agent) Path(root string, global bool) (string, error) {
	path, ok := a.ResolvePath(root, global, homeDir())
	if !ok {
		return "", ErrNoFilePath
	}
	return path, nil
}

// Emit writes content to the agent's instruction file and returns the path.
// An existing file is only replaced when force is set.
func (a Agent) Emit(content, root string, global, force bool) (string, error) {
	path, err := a.Path(root, global)
	if err != nil {
		return "", err
	}
	if err := fsutil.WriteFile(path, content, 0o644, force); err != nil {
		return "", err
	}
	return path, nil
}

// Remove deletes the instruction file if it exists and reports its path.
func (a Agent) Remove(root string, global bool) (string, bool, error) {
	path, err := a.Path(root, global)
	if err != nil {
		return "", false, err
	}
	removed, err := fsutil.RemoveIfExists(path)
	return path, removed, err
}

// SupportsHooks reports whether the agent has native per-language hooks.
func SupportsHooks(a Agent) bool {
	switch a {
	case Claude, Cursor, Copilot:
		return true
	default:
		return false
	}
}
