// Package config reads and writes the user configuration file: a TOML
// document whose startup table holds lines replayed when a session begins,
// which is where saved aliases live.
package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Startup []string `toml:"startup"`
}

// DefaultPath locates the config file under the user config directory.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "tide", "config.toml"), nil
}

// Load reads the config file; a missing file is an empty configuration, not
// an error.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}
	return &cfg, nil
}

// Save writes the config, creating parent directories as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(c)
}

// UpsertStartup adds an entry to the startup table, replacing an existing
// entry whose un-bracketed prefix matches. Two saves of `alias l [...] {...}`
// therefore keep a single startup line for `l`.
func (c *Config) UpsertStartup(entry string) {
	prefix := entry
	if bracket := strings.Index(entry, "["); bracket >= 0 {
		prefix = entry[:bracket]
	}
	for idx, existing := range c.Startup {
		if strings.HasPrefix(existing, prefix) {
			slog.Debug("replacing startup entry", slog.String("prefix", prefix))
			c.Startup[idx] = entry
			return
		}
	}
	c.Startup = append(c.Startup, entry)
}
