package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileIsEmpty(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Startup)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "config.toml")

	cfg := &Config{Startup: []string{
		"alias l [x] { ls $x }",
		"alias up [] { str-upcase }",
	}}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Startup, loaded.Startup)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("startup = {{"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestUpsertStartupAppends(t *testing.T) {
	cfg := &Config{}
	cfg.UpsertStartup("alias l [x] { ls $x }")
	cfg.UpsertStartup("alias up [] { str-upcase }")

	assert.Equal(t, []string{
		"alias l [x] { ls $x }",
		"alias up [] { str-upcase }",
	}, cfg.Startup)
}

func TestUpsertStartupReplacesMatchingPrefix(t *testing.T) {
	cfg := &Config{Startup: []string{
		"alias l [x] { ls $x }",
		"alias up [] { str-upcase }",
	}}

	cfg.UpsertStartup("alias l [x, n] { ls $x | first $n }")

	require.Len(t, cfg.Startup, 2)
	assert.Equal(t, "alias l [x, n] { ls $x | first $n }", cfg.Startup[0])
	assert.Equal(t, "alias up [] { str-upcase }", cfg.Startup[1])
}
