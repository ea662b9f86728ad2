// Package config loads bwenv's YAML configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Defaults applied when the config file or individual keys are absent.
const (
	DefaultFolder     = "bwenv"
	DefaultRBW        = "rbw"
	DefaultRunTimeout = 5 * time.Minute
)

// Config holds the user-facing settings. All keys are optional.
type Config struct {
	// Folder is the Bitwarden folder namespaces are filed under.
	Folder string `yaml:"folder"`
	// RBW is the rbw binary name or path.
	RBW string `yaml:"rbw"`
	// RunTimeout is the default command timeout for `bwenv run`,
	// in time.ParseDuration syntax (e.g. "5m", "90s").
	RunTimeout string `yaml:"run_timeout"`
}

// DefaultPath returns the config file location under the XDG config
// directory, e.g. ~/.config/bwenv/config.yaml.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "bwenv", "config.yaml")
}

// Load reads the config file at path ("" means DefaultPath), applies
// defaults for missing keys, and then the BWENV_FOLDER and BWENV_RBW
// environment overrides. A missing file yields the defaults; a
// malformed file is an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := &Config{
		Folder: DefaultFolder,
		RBW:    DefaultRBW,
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		if cfg.Folder == "" {
			cfg.Folder = DefaultFolder
		}
		if cfg.RBW == "" {
			cfg.RBW = DefaultRBW
		}
	}

	if folder := os.Getenv("BWENV_FOLDER"); folder != "" {
		cfg.Folder = folder
	}
	if rbw := os.Getenv("BWENV_RBW"); rbw != "" {
		cfg.RBW = rbw
	}

	if cfg.RunTimeout != "" {
		if _, err := time.ParseDuration(cfg.RunTimeout); err != nil {
			return nil, fmt.Errorf("invalid run_timeout %q: %w", cfg.RunTimeout, err)
		}
	}
	return cfg, nil
}

// Timeout returns the configured run timeout, or the default.
func (c *Config) Timeout() time.Duration {
	if c.RunTimeout == "" {
		return DefaultRunTimeout
	}
	d, err := time.ParseDuration(c.RunTimeout)
	if err != nil {
		return DefaultRunTimeout
	}
	return d
}
