package app

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/tacogips/sgmtr/internal/debug"
	"github.com/tacogips/sgmtr/internal/storage"
)

// TemplateInfo describes one workspace template.
type TemplateInfo struct {
	// Name is the file name without the DSL extension.
	Name string
	// Path is the workspace-relative file path.
	Path string
}

// ListTemplates returns the templates in the workspace templates directory,
// sorted by name. A missing directory yields no templates.
func ListTemplates(ws *Workspace) ([]TemplateInfo, error) {
	dir := ws.Config.DSL.TemplatesDir
	exists, err := ws.Storage.Stat(dir)
	if err != nil {
		return nil, NewStorageError("failed to check templates directory", err)
	}
	if !exists {
		debug.Debug("[app] No templates directory at %s", dir)
		return nil, nil
	}

	entries, err := ws.Storage.ReadDirectory(dir)
	if err != nil {
		return nil, NewStorageError("failed to list templates", err)
	}

	var templates []TemplateInfo
	for _, e := range entries {
		if e.Kind != storage.KindFile {
			continue
		}
		name, ok := strings.CutSuffix(e.Name, ws.Config.DSL.Extension)
		if !ok || name == "" {
			continue
		}
		templates = append(templates, TemplateInfo{Name: name, Path: path.Join(dir, e.Name)})
	}
	debug.DebugValue("[app] Templates found", len(templates))
	return templates, nil
}

// GenerateFromTemplateOptions holds options for generating from a workspace template.
type GenerateFromTemplateOptions struct {
	GenerateOptions
	// Name selects the template. Empty asks the host to choose.
	Name string
}

// GenerateFromTemplate materializes a workspace template. It returns nil
// and no error when the template prompt is dismissed.
func GenerateFromTemplate(ctx context.Context, ws *Workspace, opts GenerateFromTemplateOptions) (*GenerateResult, error) {
	debug.DebugSection("[app] GenerateFromTemplate workflow start")

	templates, err := ListTemplates(ws)
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, NewEmptyResultError(fmt.Sprintf("no templates found in %s/", ws.Config.DSL.TemplatesDir))
	}

	name := opts.Name
	if name == "" {
		if opts.Host == nil {
			return nil, NewValidationError("template name required when prompts are disabled", nil)
		}
		names := make([]string, len(templates))
		for i, t := range templates {
			names[i] = t.Name
		}
		picked, ok, err := opts.Host.Choose(ctx, "Select a workspace template", names)
		if err != nil {
			return nil, err
		}
		if !ok {
			debug.Debug("[app] Template selection dismissed")
			return nil, nil
		}
		name = picked
	}

	var selected *TemplateInfo
	for i := range templates {
		if templates[i].Name == name {
			selected = &templates[i]
			break
		}
	}
	if selected == nil {
		return nil, NewNotFoundError(fmt.Sprintf("template not found: %s", name), nil)
	}
	debug.DebugValue("[app] Selected template", selected.Path)

	tree, err := ws.ReadTree(selected.Path)
	if err != nil {
		return nil, err
	}
	return generateTree(ctx, ws, tree, opts.GenerateOptions)
}
