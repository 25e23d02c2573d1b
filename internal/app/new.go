package app

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/tacogips/sgmtr/internal/debug"
	"github.com/tacogips/sgmtr/internal/template/dsl"
)

//go:embed scaffolds/*.sgmtr
var scaffoldsFS embed.FS

const scaffoldExt = ".sgmtr"

// NewTemplateOptions holds options for creating a new workspace template.
type NewTemplateOptions struct {
	// Name is the template name, without extension.
	Name string
	// Type is the scaffold type to start from (e.g., "basic", "component").
	Type string
	// Force overwrites an existing template if true.
	Force bool
}

// NewTemplateResult holds the result of template creation.
type NewTemplateResult struct {
	// Path is the workspace-relative path of the created template.
	Path string
	// Overwritten is true when an existing template was replaced.
	Overwritten bool
}

// AvailableScaffoldTypes returns the list of available scaffold types.
func AvailableScaffoldTypes() ([]string, error) {
	entries, err := scaffoldsFS.ReadDir("scaffolds")
	if err != nil {
		return nil, fmt.Errorf("failed to read scaffolds directory: %w", err)
	}

	var types []string
	for _, entry := range entries {
		if name, ok := strings.CutSuffix(entry.Name(), scaffoldExt); ok && !entry.IsDir() {
			types = append(types, name)
		}
	}
	sort.Strings(types)
	return types, nil
}

// NewTemplate writes a starter template into the workspace templates directory.
func NewTemplate(ws *Workspace, opts NewTemplateOptions) (*NewTemplateResult, error) {
	debug.DebugSection("[app] NewTemplate workflow start")
	debug.DebugValue("[app] Template name", opts.Name)
	debug.DebugValue("[app] Scaffold type", opts.Type)
	debug.DebugValue("[app] Force overwrite", opts.Force)

	if err := validateTemplateName(opts.Name); err != nil {
		return nil, err
	}

	// Validate scaffold type
	content, err := scaffoldsFS.ReadFile(path.Join("scaffolds", opts.Type+scaffoldExt))
	if err != nil {
		availableTypes, _ := AvailableScaffoldTypes()
		return nil, NewValidationError(
			fmt.Sprintf("unknown scaffold type: %s (available: %v)", opts.Type, availableTypes),
			err,
		)
	}

	// Scaffolds must stay valid DSL
	if _, err := dsl.Parse(content, dsl.ParseOptions{Lenient: true, File: opts.Type + scaffoldExt}); err != nil {
		return nil, NewParseError("scaffold is not valid DSL", err)
	}

	target := path.Join(ws.Config.DSL.TemplatesDir, opts.Name+ws.Config.DSL.Extension)
	exists, err := ws.Storage.Stat(target)
	if err != nil {
		return nil, NewStorageError("failed to check template path", err)
	}
	if exists && !opts.Force {
		return nil, NewValidationError(
			fmt.Sprintf("template already exists: %s (use --force to overwrite)", target),
			nil,
		)
	}

	if err := ws.Storage.WriteFile(target, content); err != nil {
		return nil, NewStorageError("failed to write template", err)
	}

	debug.Debug("[app] NewTemplate workflow completed")
	debug.DebugValue("[app] Created file", target)

	return &NewTemplateResult{Path: target, Overwritten: exists}, nil
}

func validateTemplateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return NewValidationError("template name cannot be empty", nil)
	case strings.ContainsAny(name, `/\`) || name == "." || name == "..":
		return NewValidationError(fmt.Sprintf("invalid template name: %q", name), nil)
	}
	return nil
}
