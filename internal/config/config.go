// Package config loads the optional YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds user preferences. Nothing here is session data.
type Config struct {
	// ExportDir is where saved sessions and CSV exports are written.
	// Defaults to the home directory.
	ExportDir string `yaml:"export_dir"`

	// LogFile receives the debug log. Empty disables logging.
	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	// Initial list orders for a new session.
	RowSort  string `yaml:"row_sort"`  // newest, oldest, name
	YarnSort string `yaml:"yarn_sort"` // newest, oldest, brand, color
}

func Default() Config {
	return Config{
		LogLevel: "info",
		RowSort:  "newest",
		YarnSort: "newest",
	}
}

// DefaultPath returns ~/.config/stitchr/config.yaml
func DefaultPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "stitchr", "config.yaml"), nil
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parse config %s: %w", path, err)
	}
	c.ExportDir = ExpandHome(c.ExportDir)
	c.LogFile = ExpandHome(c.LogFile)
	return c, nil
}

// ExpandHome replaces a leading ~/ with the home directory.
func ExpandHome(p string) string {
	if len(p) < 2 || p[:2] != "~/" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}
