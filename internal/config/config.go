package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/debendraoli/promptctl/internal/fsutil"
)

// FileName is the project-level config file.
const FileName = ".promptctl.toml"

// EnvPrefix is the prefix for environment overrides of [defaults].
const EnvPrefix = "PROMPTCTL"

// Mode controls how a custom prompt combines with a built-in template.
type Mode string

// Merge modes.
const (
	ModeReplace Mode = "replace"
	ModePrepend Mode = "prepend"
	ModeAppend  Mode = "append"
	ModeMerge   Mode = "merge"
)

// ParseMode accepts the mode names case-insensitively. Empty means replace.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeReplace, nil
	case ModeReplace, ModePrepend, ModeAppend, ModeMerge:
		return m, nil
	default:
		return "", fmt.Errorf("invalid mode %q: want replace, prepend, append or merge", s)
	}
}

// Defaults are the values commands fall back to when a flag is not given.
type Defaults struct {
	Role       string `mapstructure:"role" toml:"role" json:"role"`
	Size       string `mapstructure:"size" toml:"size" json:"size"`
	Agent      string `mapstructure:"agent" toml:"agent,omitempty" json:"agent,omitempty"`
	Smart      bool   `mapstructure:"smart" toml:"smart" json:"smart"`
	Guardrails bool   `mapstructure:"guardrails" toml:"guardrails" json:"guardrails"`
}

// CustomPrompt is a user-defined prompt for one language.
type CustomPrompt struct {
	Name        string `mapstructure:"name" toml:"name,omitempty" json:"name,omitempty"`
	Description string `mapstructure:"description" toml:"description,omitempty" json:"description,omitempty"`
	Content     string `mapstructure:"content" toml:"content,omitempty" json:"content,omitempty"`
	Mode        Mode   `mapstructure:"mode" toml:"mode,omitempty" json:"mode,omitempty"`
	Prepend     string `mapstructure:"prepend" toml:"prepend,omitempty" json:"prepend,omitempty"`
	Append      string `mapstructure:"append" toml:"append,omitempty" json:"append,omitempty"`
}

// Config is the decoded .promptctl.toml.
type Config struct {
	Defaults Defaults                `mapstructure:"defaults" toml:"defaults" json:"defaults"`
	Prompts  map[string]CustomPrompt `mapstructure:"prompts" toml:"prompts,omitempty" json:"prompts,omitempty"`
}

// envBindings maps [defaults] keys to their environment variables.
var envBindings = map[string]string{
	"defaults.role":       EnvPrefix + "_ROLE",
	"defaults.size":       EnvPrefix + "_SIZE",
	"defaults.agent":      EnvPrefix + "_AGENT",
	"defaults.smart":      EnvPrefix + "_SMART",
	"defaults.guardrails": EnvPrefix + "_GUARDRAILS",
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetDefault("defaults.role", "developer")
	v.SetDefault("defaults.size", "compact")
	v.SetDefault("defaults.agent", "")
	v.SetDefault("defaults.smart", false)
	v.SetDefault("defaults.guardrails", true)
	for key, env := range envBindings {
		// BindEnv only fails when called without a key.
		_ = v.BindEnv(key, env)
	}
	return v
}

// Find walks up from start looking for .promptctl.toml, then tries the home
// directory. It returns "" when no file exists.
func Find(start string) string {
	dir, err := filepath.Abs(start)
	if err != nil {
		dir = start
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if fsutil.Exists(candidate) {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, FileName)
		if fsutil.Exists(candidate) {
			return candidate
		}
	}
	return ""
}

// Load finds and decodes the config file starting at start.
// The returned config is nil when no file exists.
func Load(start string) (*Config, string, error) {
	path := Find(start)
	if path == "" {
		return nil, "", nil
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// LoadFile decodes a specific config file.
func LoadFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	prompts := make(map[string]CustomPrompt, len(c.Prompts))
	for lang, p := range c.Prompts {
		mode, err := ParseMode(string(p.Mode))
		if err != nil {
			return fmt.Errorf("prompts.%s: %w", lang, err)
		}
		p.Mode = mode
		prompts[strings.ToLower(lang)] = p
	}
	c.Prompts = prompts
	return nil
}

// EnvDefaults returns the built-in defaults with environment overrides applied.
func EnvDefaults() Defaults {
	var cfg Config
	// Defaults and env values always decode.
	_ = newViper().Unmarshal(&cfg)
	return cfg.Defaults
}

// Settings returns the effective defaults. A nil config still honors the
// environment.
func (c *Config) Settings() Defaults {
	if c == nil {
		return EnvDefaults()
	}
	return c.Defaults
}

// CustomLanguages returns the languages with a custom prompt, sorted.
func (c *Config) CustomLanguages() []string {
	if c == nil {
		return nil
	}
	langs := make([]string, 0, len(c.Prompts))
	for lang := range c.Prompts {
		langs = append(langs, lang)
	}
	slices.Sort(langs)
	return langs
}

// Prompt looks up a custom prompt case-insensitively.
func (c *Config) Prompt(lang string) (CustomPrompt, bool) {
	if c == nil {
		return CustomPrompt{}, false
	}
	p, ok := c.Prompts[strings.ToLower(lang)]
	return p, ok
}

// ApplyMerge combines the custom prompt for lang with builtin according to its
// mode. Without a custom prompt builtin is returned unchanged.
func (c *Config) ApplyMerge(lang, builtin string) string {
	p, ok := c.Prompt(lang)
	if !ok {
		return builtin
	}

	switch p.Mode {
	case ModePrepend:
		return firstNonEmpty(p.Prepend, p.Content) + "\n\n" + builtin
	case ModeAppend:
		return builtin + "\n\n" + firstNonEmpty(p.Append, p.Content)
	case ModeMerge:
		var b strings.Builder
		if p.Prepend != "" {
			b.WriteString(p.Prepend)
			b.WriteString("\n\n")
		}
		b.WriteString(builtin)
		if p.Append != "" {
			b.WriteString("\n\n")
			b.WriteString(p.Append)
		}
		return b.String()
	default:
		return p.Content
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// ExistsError is returned by Init when the file is already present.
type ExistsError = fsutil.ExistsError

// Init writes a commented starter config into dir and returns its path.
func Init(dir string, force bool) (string, error) {
	path := filepath.Join(dir, FileName)
	if err := fsutil.WriteFile(path, DefaultContent, 0o644, force); err != nil {
		return "", err
	}
	return path, nil
}

// Render encodes cfg as TOML.
func Render(cfg *Config) (string, error) {
	if cfg == nil {
		return "", errors.New("no config loaded")
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}
	return string(data), nil
}

// DefaultContent is what Init writes.
const DefaultContent = `# promptctl configuration
#
# Values here are used when a flag is not given. Environment variables
# PROMPTCTL_ROLE, PROMPTCTL_SIZE, PROMPTCTL_AGENT, PROMPTCTL_SMART and
# PROMPTCTL_GUARDRAILS override them.

[defaults]
role = "developer"
size = "compact"
smart = false
guardrails = true

# Custom prompts are keyed by language. A custom prompt for a language
# without a built-in template becomes that language's skillset.
#
# mode decides how it combines with a built-in template:
#   replace  use content instead of the built-in (default)
#   prepend  put prepend (or content) before the built-in
#   append   put append (or content) after the built-in
#   merge    wrap the built-in with prepend and append
#
# [prompts.python]
# name = "Python"
# description = "Python development guidelines"
# content = """
# # Python Development Guidelines
#
# - Target Python 3.12+
# - Use type hints everywhere; run mypy --strict
# - Prefer dataclasses or pydantic models over dicts
# - Use pytest with fixtures
# """
#
# [prompts.typescript]
# mode = "append"
# append = """
# ## Team Conventions
#
# - Use pnpm, never npm or yarn
# - Barrel files are not allowed
# """
#
# [prompts.go]
# mode = "merge"
# prepend = "Our services run on Go 1.25 with the standard library router."
# append = "Always run make lint before committing."
`
