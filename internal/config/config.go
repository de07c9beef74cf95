// Package config handles mcp-credhook's own settings file.
//
// The settings file is optional; it exists so users can point the tool at
// non-default credential and target config locations without passing flags
// from their hook configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the tool settings.
type Config struct {
	// Credentials overrides the credential mapping file location.
	Credentials string `yaml:"credentials,omitempty"`

	// Targets overrides the target configuration file location.
	Targets string `yaml:"targets,omitempty"`

	// Color mode for interactive commands (auto, always, never).
	Color string `yaml:"color,omitempty"`
}

// configPathFunc is the function used to get the default config path.
// It can be overridden for testing.
var configPathFunc = defaultConfigPath

// SetConfigPathFunc sets the config path function for testing.
// Returns the original function so it can be restored.
func SetConfigPathFunc(fn func() (string, error)) func() (string, error) {
	orig := configPathFunc
	configPathFunc = fn
	return orig
}

// defaultConfigPath returns ~/.config/mcp-credhook/config.yaml
func defaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mcp-credhook", "config.yaml"), nil
}

// DefaultConfigPath returns ~/.config/mcp-credhook/config.yaml
func DefaultConfigPath() (string, error) {
	return configPathFunc()
}

// DefaultCredentialsPath returns ~/.config/mcp-credhook/credentials.json
func DefaultCredentialsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mcp-credhook", "credentials.json"), nil
}

// DefaultTargetsPath returns ~/.mcp.json, the host-owned target config.
func DefaultTargetsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".mcp.json"), nil
}

// Load loads settings from the default path, returns empty settings if the
// file is not found.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return &Config{}, nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads settings from a specific path.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}
	return &cfg, nil
}

// SaveToPath saves settings to a specific path.
func (c *Config) SaveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// ResolvePaths returns the effective credential and target paths.
// Precedence: explicit value (flag) > settings file > built-in default.
func (c *Config) ResolvePaths(credentials, targets string) (string, string, error) {
	if credentials == "" {
		credentials = c.Credentials
	}
	if credentials == "" {
		p, err := DefaultCredentialsPath()
		if err != nil {
			return "", "", fmt.Errorf("cannot determine credentials path: %w", err)
		}
		credentials = p
	}

	if targets == "" {
		targets = c.Targets
	}
	if targets == "" {
		p, err := DefaultTargetsPath()
		if err != nil {
			return "", "", fmt.Errorf("cannot determine targets path: %w", err)
		}
		targets = p
	}

	return credentials, targets, nil
}
