// Package config locates and loads promptctl configuration: the user config
// directory and the project-level .promptctl.toml.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// EnvConfigHome overrides the config directory.
const EnvConfigHome = "PROMPTCTL_CONFIG_HOME"

// Dir returns the promptctl configuration directory.
//
// Resolution:
//   - $PROMPTCTL_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/promptctl if set (respects XDG on any platform)
//   - %AppData%/promptctl on Windows
//   - ~/.config/promptctl on macOS and Linux
func Dir() string {
	if dir := os.Getenv(EnvConfigHome); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "promptctl")
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "promptctl")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "promptctl")
}

// TemplatesDir is where user-wide template overrides live.
func TemplatesDir() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "templates")
}
