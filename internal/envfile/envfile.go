// Package envfile loads environment variables from dotenv files before the
// configuration is read. Variables already set in the environment take
// precedence.
package envfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/subosito/gotenv"
)

// LocalFile is the per-project dotenv file.
const LocalFile = ".env.local"

// Paths returns the dotenv files promptctl reads, lowest precedence last:
// the project's .env.local, then <configDir>/env.
func Paths(configDir, projectDir string) []string {
	var paths []string
	if projectDir != "" {
		paths = append(paths, filepath.Join(projectDir, LocalFile))
	}
	if configDir != "" {
		paths = append(paths, filepath.Join(configDir, "env"))
	}
	return paths
}

// Load reads each file in order and sets variables that are still unset.
// Missing files are skipped. Earlier files win over later ones.
func Load(paths ...string) error {
	for _, path := range paths {
		if err := loadFile(path); err != nil {
			return err
		}
	}
	return nil
}

func loadFile(path string) error {
	file, err := os.Open(path) // #nosec G304 -- paths come from Paths
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("opening env file %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck // best-effort close on read-only file

	env, err := gotenv.StrictParse(file)
	if err != nil {
		return fmt.Errorf("parsing env file %s: %w", path, err)
	}

	for key, value := range env {
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
	return nil
}
