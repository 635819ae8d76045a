package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".cargosweep"

// File is the on-disk YAML configuration. Every field is optional;
// unset fields keep their defaults.
type File struct {
	// Depth is the traversal depth limit.
	Depth int `yaml:"depth"`

	// Skips replaces the default skip list when non-empty.
	Skips []string `yaml:"skips"`

	// Cargo is the cargo executable to invoke.
	Cargo string `yaml:"cargo"`
}

// LoadConfigFile loads settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers
// decide whether that is fatal based on whether the path was explicitly
// specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .cargosweep in the current directory
// 3. Look for .cargosweep in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if
// not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}

// ApplyFile overlays file settings onto the config. Only set fields
// override; flags applied afterwards win over both.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	if f.Depth > 0 {
		c.MaxDepth = f.Depth
	}
	if len(f.Skips) > 0 {
		c.SkipNames = f.Skips
	}
	if f.Cargo != "" {
		c.CargoBin = f.Cargo
	}
}
