package presets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debendraoli/promptctl/internal/prompt"
)

func TestLoadMissing(t *testing.T) {
	s, err := Load(t.TempDir(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, s.Presets)
	assert.Empty(t, s.Path())
}

func TestLoadPrefersWorkingDir(t *testing.T) {
	dir, home := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), "[presets.local]\nrole = \"senior\"\nsize = \"full\"\n")
	writeFile(t, filepath.Join(home, FileName), "[presets.global]\nrole = \"mentor\"\n")

	s, err := Load(dir, home)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName), s.Path())
	assert.Contains(t, s.Presets, "local")
	assert.NotContains(t, s.Presets, "global")
	assert.Equal(t, prompt.SizeFull, s.Presets["local"].Size)
}

func TestLoadFallsBackToHome(t *testing.T) {
	home := t.TempDir()
	writeFile(t, filepath.Join(home, FileName), "[presets.global]\nrole = \"mentor\"\nsmart = true\n")

	s, err := Load(t.TempDir(), home)
	require.NoError(t, err)
	p, ok := s.Get("global")
	require.True(t, ok)
	assert.Equal(t, "mentor", p.Role)
	assert.True(t, p.Smart)
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, FileName), "[presets\n")

	_, err := Load(dir, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse presets file")
}

func TestSaveRoundTrip(t *testing.T) {
	home := t.TempDir()
	s, err := Load(t.TempDir(), home)
	require.NoError(t, err)

	want := Preset{
		Description: "Rust review",
		Role:        "reviewer",
		Size:        prompt.SizeCompact,
		Sections:    []string{"memory", "types"},
		Smart:       true,
	}
	require.NoError(t, s.Set("rust-review", want, false))

	path, err := s.Save()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, FileName), path)

	reloaded, err := Load(t.TempDir(), home)
	require.NoError(t, err)
	got, ok := reloaded.Get("rust-review")
	require.True(t, ok)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("preset mismatch (-want +got):\n%s", diff)
	}
}

func TestSetExisting(t *testing.T) {
	s, err := Load(t.TempDir(), t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Set("mine", Preset{Role: "senior"}, false))
	assert.Equal(t, prompt.DefaultSize, s.Presets["mine"].Size)

	err = s.Set("mine", Preset{Role: "mentor"}, false)
	require.ErrorIs(t, err, ErrExists)
	assert.Equal(t, "preset 'mine' already exists (use --force to overwrite)", err.Error())

	require.NoError(t, s.Set("mine", Preset{Role: "mentor"}, true))
	assert.Equal(t, "mentor", s.Presets["mine"].Role)
}

func TestRemove(t *testing.T) {
	s, err := Load(t.TempDir(), t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Set("mine", Preset{}, false))

	_, err = s.Remove("mine")
	require.NoError(t, err)

	_, err = s.Remove("mine")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "preset 'mine' not found", err.Error())

	_, err = s.Remove("quick")
	assert.ErrorIs(t, err, ErrNotFound, "built-ins cannot be removed")
}

func TestGetUserShadowsBuiltin(t *testing.T) {
	s, err := Load(t.TempDir(), t.TempDir())
	require.NoError(t, err)

	p, ok := s.Get("review")
	require.True(t, ok)
	assert.Equal(t, "reviewer", p.Role)

	require.NoError(t, s.Set("review", Preset{Role: "senior"}, false))
	p, _ = s.Get("REVIEW")
	assert.Equal(t, "senior", p.Role)

	_, ok = s.Get("nope")
	assert.False(t, ok)
}

func TestList(t *testing.T) {
	s, err := Load(t.TempDir(), t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Set("daily", Preset{Size: prompt.SizeFull}, false))
	require.NoError(t, s.Set("aaa", Preset{}, false))

	var names []string
	for _, e := range s.List() {
		names = append(names, e.Name)
		switch e.Name {
		case "daily":
			assert.True(t, e.Overrides)
			assert.False(t, e.Builtin)
		case "aaa":
			assert.False(t, e.Overrides)
		default:
			assert.True(t, e.Builtin, e.Name)
		}
	}
	assert.Equal(t, []string{"aaa", "daily", "learn", "perf", "quick", "review", "security"}, names)
}

func TestBuiltins(t *testing.T) {
	b := Builtins()
	assert.Len(t, b, 6)
	assert.Equal(t, prompt.SizeMinimal, b["quick"].Size)
	assert.True(t, b["daily"].Smart)
	assert.Equal(t, "mentor", b["learn"].Role)
	assert.Equal(t, []prompt.Section{prompt.SectionMemory, prompt.SectionConcurrency, prompt.SectionAsync}, b["perf"].ParsedSections())
}

func TestParsedHelpers(t *testing.T) {
	p := Preset{Size: "tiny", Sections: []string{"errors", "bogus", "error-handling"}}
	assert.Equal(t, prompt.SizeMinimal, p.ParsedSize())
	assert.Equal(t, []prompt.Section{prompt.SectionErrorHandling}, p.ParsedSections())

	assert.Equal(t, prompt.DefaultSize, Preset{}.ParsedSize())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
