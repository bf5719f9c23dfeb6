package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadFromString(t *testing.T) {
	cfg, err := LoadFromString(`
name = "Advanced Banana Environment"
prefix = "abe"
mainprefix = "x"

[version]
path = "addons/main/script_version.hpp"
git = true

[build]
optimize = true
exclude = ["*.psd"]
`)
	require.NoError(t, err)
	require.Equal(t, "Advanced Banana Environment", cfg.Name)
	require.Equal(t, "abe", cfg.Prefix)
	require.Equal(t, "x", cfg.MainPrefix)
	require.Equal(t, "addons/main/script_version.hpp", cfg.Version.Path)
	require.True(t, cfg.Version.Git)
	require.True(t, cfg.Build.Optimize)
	require.Equal(t, []string{"*.psd"}, cfg.Build.Exclude)
}

func TestLoadFromStringDefaults(t *testing.T) {
	cfg, err := LoadFromString(`prefix = "abe"`)
	require.NoError(t, err)
	require.Equal(t, "z", cfg.MainPrefix)
	require.False(t, cfg.Build.Optimize)
}

func TestLoadFromStringMissingPrefix(t *testing.T) {
	_, err := LoadFromString(`name = "nameless"`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing a prefix")
}

func TestLoadFromStringInvalidTOML(t *testing.T) {
	_, err := LoadFromString(`prefix = `)
	require.Error(t, err)
	require.Contains(t, err.Error(), "parse project file")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(`prefix = "abe"`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "abe", cfg.Prefix)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	require.Error(t, err)
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "addons", "main")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	want := filepath.Join(root, DefaultFileName)
	require.NoError(t, os.WriteFile(want, []byte(`prefix = "abe"`), 0o644))

	got, err := Find(nested)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestFindMissing(t *testing.T) {
	_, err := Find(t.TempDir())
	require.Error(t, err)
	require.Contains(t, err.Error(), DefaultFileName)
}
