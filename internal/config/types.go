package config

// Config represents the global sgmtr configuration.
type Config struct {
	// Ignore configuration for ignore-pattern handling.
	Ignore IgnoreConfig `json:"ignore"`
	// Generate configuration for materialization.
	Generate GenerateConfig `json:"generate"`
	// DSL configuration for reading DSL files.
	DSL DSLConfig `json:"dsl"`
	// Reflect configuration for reflection output.
	Reflect ReflectConfig `json:"reflect"`
	// Output configuration for display.
	Output OutputConfig `json:"output"`
}

// IgnoreConfig represents ignore settings.
type IgnoreConfig struct {
	// File is the ignore file name at the workspace root.
	File string `json:"file" validate:"required,excludes=/"`
	// CaseInsensitive makes pattern matching ignore letter case.
	CaseInsensitive bool `json:"case_insensitive"`
	// DefaultPatterns are applied in addition to the ignore file.
	DefaultPatterns []string `json:"default_patterns" validate:"dive,required"`
}

// GenerateConfig represents materialization settings.
type GenerateConfig struct {
	// OnConflict is the policy for existing files: ask, overwrite or skip.
	OnConflict string `json:"on_conflict" validate:"oneof=ask overwrite skip"`
	// ComponentExtensions are extensions that receive snippet expansion.
	ComponentExtensions []string `json:"component_extensions" validate:"min=1,dive,startswith=."`
}

// DSLConfig represents DSL file settings.
type DSLConfig struct {
	// Extension is the file extension of DSL templates.
	Extension string `json:"extension" validate:"required,startswith=."`
	// Lenient strips comments before parsing.
	Lenient bool `json:"lenient"`
	// TemplatesDir is the workspace-relative directory holding templates.
	TemplatesDir string `json:"templates_dir" validate:"required"`
}

// ReflectConfig represents reflection settings.
type ReflectConfig struct {
	// Format is the output format: json or yaml.
	Format string `json:"format" validate:"oneof=json yaml"`
}

// OutputConfig represents output and display settings.
type OutputConfig struct {
	// Color enables colored terminal output.
	Color bool `json:"color"`
	// Quiet suppresses non-error output.
	Quiet bool `json:"quiet"`
}
