package config

import (
	"os"
	"path/filepath"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Ignore: IgnoreConfig{
			File:            ".sgmtrignore",
			CaseInsensitive: false,
			DefaultPatterns: DefaultIgnorePatterns(),
		},
		Generate: GenerateConfig{
			OnConflict:          "ask",
			ComponentExtensions: DefaultComponentExtensions(),
		},
		DSL: DSLConfig{
			Extension:    ".sgmtr",
			Lenient:      true,
			TemplatesDir: ".sgmtr/templates",
		},
		Reflect: ReflectConfig{
			Format: "json",
		},
		Output: OutputConfig{
			Color: true,
			Quiet: false,
		},
	}
}

// DefaultIgnorePatterns returns the default ignore patterns.
func DefaultIgnorePatterns() []string {
	return []string{
		".git",
		".DS_Store",
		"Thumbs.db",
	}
}

// DefaultComponentExtensions returns the default component file extensions.
func DefaultComponentExtensions() []string {
	return []string{".jsx", ".tsx"}
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "sgmtr", "config.json")
}
