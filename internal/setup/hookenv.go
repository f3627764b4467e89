package setup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/debendraoli/promptctl/internal/fsutil"
	"github.com/debendraoli/promptctl/internal/logging"
)

// FilePrefix starts the name of every hook file promptctl owns.
const FilePrefix = "promptctl-"

// MissingSkillset stands in for a language whose skillset could not be built.
const MissingSkillset = "<!-- No skillset available. Run 'promptctl show' to check -->"

// ErrNoLanguages is returned when no detected language has hook support.
var ErrNoLanguages = errors.New("no supported languages detected, run from a project directory")

// ExistsError reports a hook file that is already present.
type ExistsError = fsutil.ExistsError

// NoHookSupportError reports an agent without native hooks.
type NoHookSupportError struct {
	Agent string
}

func (e *NoHookSupportError) Error() string {
	return fmt.Sprintf("agent '%s' has no native hook support (use 'emit' instead)", e.Agent)
}

// Request carries everything an install needs.
type Request struct {
	// Languages are the detected project languages, lowercased.
	Languages []string
	Role      string
	// Skillsets maps a language to its pre-built skillset.
	Skillsets map[string]string
	Force     bool
	Logger    *zap.Logger
}

func (r Request) logger() *zap.Logger {
	return logging.OrNop(r.Logger)
}

func (r Request) skillset(lang string) string {
	if s, ok := r.Skillsets[lang]; ok && s != "" {
		return s
	}
	return MissingSkillset
}

// HookFile is one file written by an install.
type HookFile struct {
	Path        string `json:"path"`
	Description string `json:"description"`
}

// HookEnv is an agent that loads hook files natively.
type HookEnv interface {
	// Name is the agent identifier used on the command line.
	Name() string

	// DisplayName is the human-readable product name.
	DisplayName() string

	// Install writes the hook files under root.
	Install(root string, req Request) ([]HookFile, error)

	// Remove deletes promptctl hook files under root and returns their paths.
	Remove(root string) ([]string, error)

	// List returns the promptctl hook files currently under root.
	List(root string) ([]string, error)

	// Preview returns the paths Install would write for languages.
	Preview(root string, languages []string) []string
}

var registry = map[string]HookEnv{}

// Register adds env to the registry.
func Register(env HookEnv) {
	registry[env.Name()] = env
}

// Get returns the registered environment for an agent name.
func Get(name string) (HookEnv, error) {
	if env, ok := registry[name]; ok {
		return env, nil
	}
	return nil, &NoHookSupportError{Agent: name}
}

// All returns every registered environment in a stable order.
func All() []HookEnv {
	order := []string{"claude", "cursor", "copilot"}
	var result []HookEnv
	for _, name := range order {
		if env, ok := registry[name]; ok {
			result = append(result, env)
		}
	}
	var rest []string
	for name := range registry {
		if !slices.Contains(order, name) {
			rest = append(rest, name)
		}
	}
	slices.Sort(rest)
	for _, name := range rest {
		result = append(result, registry[name])
	}
	return result
}

// listPrefixed returns the promptctl-owned files directly inside dir.
func listPrefixed(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), FilePrefix) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}

func removePrefixed(dir string) ([]string, error) {
	paths, err := listPrefixed(dir)
	if err != nil {
		return nil, err
	}
	var removed []string
	for _, p := range paths {
		ok, err := fsutil.RemoveIfExists(p)
		if err != nil {
			return removed, err
		}
		if ok {
			removed = append(removed, p)
		}
	}
	return removed, nil
}
