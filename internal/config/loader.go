package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Loader defines the interface for loading configuration files.
type Loader interface {
	// Load loads configuration from the specified file path.
	Load(path string) (*Config, error)
	// LoadOrDefault loads configuration or returns defaults if file doesn't exist.
	LoadOrDefault(path string) (*Config, error)
	// Validate validates the configuration.
	Validate(config *Config) error
}

// FileLoader implements the Loader interface for file-based configuration loading.
type FileLoader struct{}

// NewLoader creates a new FileLoader instance.
func NewLoader() Loader {
	return &FileLoader{}
}

// Load loads configuration from the specified file path. Fields missing
// from the file keep their default values.
func (l *FileLoader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewConfigError(ConfigNotFound, path, "configuration file not found", err)
		}
		return nil, NewConfigError(ConfigInvalid, path, "failed to read configuration file", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, NewConfigError(ConfigInvalid, path, "invalid JSON syntax", err)
	}

	mergeConfig(cfg, DefaultConfig())

	return cfg, nil
}

// LoadOrDefault loads configuration or returns defaults if file doesn't exist.
func (l *FileLoader) LoadOrDefault(path string) (*Config, error) {
	cfg, err := l.Load(path)
	if err != nil {
		// If file not found, return defaults
		var cfgErr *ConfigError
		if errors.As(err, &cfgErr) && cfgErr.Type == ConfigNotFound {
			return DefaultConfig(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// Validate validates the configuration.
func (l *FileLoader) Validate(config *Config) error {
	return validateStruct(config)
}

// Save writes cfg as indented JSON, creating the parent directory.
func Save(path string, cfg *Config) error {
	cleanPath := filepath.Clean(path)

	dir := filepath.Dir(cleanPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return NewConfigError(ConfigWriteFailed, cleanPath,
			fmt.Sprintf("failed to create directory %s", dir), err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return NewConfigError(ConfigWriteFailed, cleanPath, "failed to marshal configuration", err)
	}

	if err := os.WriteFile(cleanPath, append(data, '\n'), 0644); err != nil {
		return NewConfigError(ConfigWriteFailed, cleanPath, "failed to write configuration", err)
	}

	return nil
}

// mergeConfig fills fields that the file explicitly emptied.
func mergeConfig(cfg, defaults *Config) {
	// Ignore
	if cfg.Ignore.File == "" {
		cfg.Ignore.File = defaults.Ignore.File
	}

	// Generate
	if cfg.Generate.OnConflict == "" {
		cfg.Generate.OnConflict = defaults.Generate.OnConflict
	}
	if len(cfg.Generate.ComponentExtensions) == 0 {
		cfg.Generate.ComponentExtensions = defaults.Generate.ComponentExtensions
	}

	// DSL
	if cfg.DSL.Extension == "" {
		cfg.DSL.Extension = defaults.DSL.Extension
	}
	if cfg.DSL.TemplatesDir == "" {
		cfg.DSL.TemplatesDir = defaults.DSL.TemplatesDir
	}

	// Reflect
	if cfg.Reflect.Format == "" {
		cfg.Reflect.Format = defaults.Reflect.Format
	}
}

// ExpandPath expands ~ to home directory and evaluates relative paths.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	// Expand ~ to home directory
	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		if path[1] == filepath.Separator || path[1] == '/' {
			return filepath.Join(homeDir, path[2:]), nil
		}
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	return absPath, nil
}
