package fsutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".github", "instructions", "promptctl-go.instructions.md")

	require.NoError(t, WriteFile(path, "first", 0o644, false))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))

	err = WriteFile(path, "second", 0o644, false)
	var exists *ExistsError
	require.ErrorAs(t, err, &exists)
	assert.Equal(t, path, exists.Path)
	assert.True(t, errors.Is(err, fs.ErrExist))
	assert.Contains(t, err.Error(), "use --force to overwrite")

	require.NoError(t, WriteFile(path, "second", 0o755, true))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o755), info.Mode().Perm())
}

func TestRemoveIfExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "AGENTS.md")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	removed, err := RemoveIfExists(path)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = RemoveIfExists(path)
	require.NoError(t, err)
	assert.False(t, removed)
}
