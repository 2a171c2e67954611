// Package config loads runtime configuration for swayrestore.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds the two inputs the tool needs: where the compositor
// listens and where saved layouts live. Core packages receive this
// struct explicitly and never read the environment themselves.
type Config struct {
	Socket   string `env:"SWAYSOCK" yaml:"socket"`
	StateDir string `env:"SWAYRESTORE_DIR" yaml:"state_dir"`
}

// Load assembles configuration in precedence order: overrides (from
// CLI flags), then environment variables, then an optional YAML file,
// then XDG defaults. An empty configPath means the default location
// under the user config dir; a missing file is not an error. The
// compositor socket is required.
func Load(configPath string, overrides Config) (Config, error) {
	var cfg Config

	path, explicit := configPath, configPath != ""
	if !explicit {
		path = defaultConfigPath()
	}
	if err := loadFile(path, explicit, &cfg); err != nil {
		return Config{}, err
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if overrides.Socket != "" {
		cfg.Socket = overrides.Socket
	}
	if overrides.StateDir != "" {
		cfg.StateDir = overrides.StateDir
	}

	if cfg.StateDir == "" {
		cfg.StateDir = defaultStateDir()
	}
	if cfg.Socket == "" {
		return Config{}, errors.New("compositor socket is required (set SWAYSOCK)")
	}
	return cfg, nil
}

// loadFile reads YAML configuration into cfg. Only an explicitly
// requested file must exist.
func loadFile(path string, explicit bool, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// defaultConfigPath returns the XDG location of the config file.
func defaultConfigPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "swayrestore", "config.yaml")
}

// defaultStateDir returns the XDG location for saved layouts.
func defaultStateDir() string {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return os.TempDir()
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "swayrestore")
}
