// Package fsutil holds the small file-writing helpers shared by the emitters.
package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ExistsError reports a target that already exists when overwriting was not
// requested. It matches fs.ErrExist.
type ExistsError struct {
	Path string
}

func (e *ExistsError) Error() string {
	return fmt.Sprintf("file already exists: %s (use --force to overwrite)", e.Path)
}

// Is lets errors.Is(err, fs.ErrExist) match.
func (e *ExistsError) Is(target error) bool {
	return target == fs.ErrExist
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// WriteFile writes content to path, creating parent directories.
// Without force an existing file yields *ExistsError.
func WriteFile(path, content string, perm fs.FileMode, force bool) error {
	if !force && Exists(path) {
		return &ExistsError{Path: path}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	// #nosec G306 -- hook scripts need the execute bit
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(path, perm); err != nil {
		return fmt.Errorf("setting mode on %s: %w", path, err)
	}
	return nil
}

// RemoveIfExists deletes path and reports whether anything was removed.
func RemoveIfExists(path string) (bool, error) {
	err := os.Remove(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("removing %s: %w", path, err)
	}
}
