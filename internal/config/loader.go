package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// For mocking in tests
var osUserConfigDir = os.UserConfigDir

const (
	configDirName  = "pfm"
	configFileName = "config.json"
)

// Load reads the registry from the per-user config file. A missing
// file yields an empty registry; an existing file that cannot be read
// or parsed is an error, so a broken registry is never silently
// replaced on the next save.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, fmt.Errorf("could not determine config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	for id, f := range cfg.Forwards {
		if err := f.validate(); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: forward %q: %w", path, id, err)
		}
	}
	if cfg.Forwards == nil {
		cfg.Forwards = make(map[string]PortForward)
	}
	return &cfg, nil
}

// Save writes the registry back as pretty-printed JSON, creating the
// parent directory on demand.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return fmt.Errorf("could not determine config path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

var configPath = func() (string, error) {
	dir, err := osUserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configDirName, configFileName), nil
}
