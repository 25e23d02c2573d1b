package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tacogips/sgmtr/internal/app"
	"github.com/tacogips/sgmtr/internal/template/dsl"
	"github.com/tacogips/sgmtr/internal/template/generator"
	"github.com/tacogips/sgmtr/internal/template/variables"
)

// Common flag names and descriptions
const (
	// Flag names
	FlagWorkspace  = "workspace"
	FlagConfig     = "config"
	FlagTarget     = "target"
	FlagVars       = "vars"
	FlagAnswer     = "answer"
	FlagOnConflict = "on-conflict"
	FlagForce      = "force"
	FlagDryRun     = "dry-run"
	FlagDetail     = "detail"
	FlagWatch      = "watch"
	FlagFormat     = "format"
	FlagPrint      = "print"
	FlagType       = "type"
	FlagNoColor    = "no-color"
	FlagQuiet      = "quiet"
	FlagDebug      = "debug"

	// Flag descriptions
	DescWorkspace  = "Workspace root directory (default: current directory)"
	DescConfig     = "Path to config file"
	DescTarget     = "Output directory inside the workspace"
	DescVars       = "Dotenv file with preset variable values (repeatable)"
	DescAnswer     = "Answer for an ${ask:Question} prompt as Question=Value (repeatable)"
	DescOnConflict = "Policy for existing files: ask, overwrite or skip"
	DescForce      = "Force overwrite"
	DescDryRun     = "Show actions without execution"
	DescDetail     = "Show import and export lines of component files"
	DescWatch      = "Re-render when the DSL or ignore file changes"
	DescFormat     = "Output format: json or yaml"
	DescPrint      = "Print the reflected tree"
	DescType       = "Scaffold type to start from"
	DescNoColor    = "Disable colored output"
	DescQuiet      = "Suppress output"
	DescDebug      = "Enable debug logging"
)

// absFromCwd makes a command-line path absolute against the current
// directory. The app layer resolves relative paths against the workspace.
func absFromCwd(p string) (string, error) {
	if p == "" || filepath.IsAbs(p) {
		return p, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return filepath.Join(cwd, p), nil
}

// parseConflictFlag returns nil when the flag is unset so the configured
// policy applies.
func parseConflictFlag(value string) (*generator.ConflictPolicy, error) {
	if value == "" {
		return nil, nil
	}
	policy, err := generator.ParseConflictPolicy(value)
	if err != nil {
		return nil, app.NewValidationError(fmt.Sprintf("invalid --%s value", FlagOnConflict), err)
	}
	return &policy, nil
}

// parseFormatFlag falls back to the configured format when value is empty.
func parseFormatFlag(value, configured string) (dsl.Format, error) {
	if value == "" {
		value = configured
	}
	switch value {
	case "json", "":
		return dsl.FormatJSON, nil
	case "yaml", "yml":
		return dsl.FormatYAML, nil
	default:
		return dsl.FormatJSON, app.NewValidationError(fmt.Sprintf("invalid --%s value: %s (use json or yaml)", FlagFormat, value), nil)
	}
}

// loadVars reads --vars files resolved against the current directory and
// adds --answer values on top.
func loadVars(paths, answers []string) (variables.Values, error) {
	resolved := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := absFromCwd(p)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, abs)
	}
	preset, err := app.LoadPresetVariables(resolved...)
	if err != nil {
		return nil, err
	}

	asked, err := app.ParseAnswers(answers)
	if err != nil {
		return nil, err
	}
	for k, v := range asked {
		preset[k] = v
	}
	return preset, nil
}
