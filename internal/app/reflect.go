package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tacogips/sgmtr/internal/debug"
	"github.com/tacogips/sgmtr/internal/storage"
	"github.com/tacogips/sgmtr/internal/template/dsl"
	"github.com/tacogips/sgmtr/internal/template/reflector"
)

// ReflectOptions holds options for the reflect workflow.
type ReflectOptions struct {
	// Folder is the directory to reflect, absolute or relative to the
	// workspace root.
	Folder string
	// Format selects the output encoding.
	Format dsl.Format
	// DryRun builds the tree without writing the output file.
	DryRun bool
}

// ReflectResult holds the result of a reflect workflow.
type ReflectResult struct {
	// Tree is the reflected DSL tree.
	Tree *dsl.Directory
	// OutputPath is the absolute path of the output file. It is set even
	// when DryRun is true.
	OutputPath string
	// Stats counts what the walk saw.
	Stats *reflector.Stats
}

// Reflect converts Folder into a DSL tree and writes it next to Folder.
// Ignore rules come from the workspace; patterns match paths relative to
// Folder.
func Reflect(ctx context.Context, ws *Workspace, opts ReflectOptions) (*ReflectResult, error) {
	debug.DebugSection("[app] Reflect workflow start")
	debug.DebugValue("[app] Folder", opts.Folder)
	debug.DebugValue("[app] Format", opts.Format)

	if opts.Folder == "" {
		return nil, NewValidationError("folder to reflect is required", nil)
	}
	abs := ws.Abs(opts.Folder)

	info, err := os.Stat(abs)
	if err != nil {
		return nil, NewNotFoundError(fmt.Sprintf("folder not found: %s", abs), err)
	}
	if !info.IsDir() {
		return nil, NewValidationError(fmt.Sprintf("not a directory: %s", abs), nil)
	}

	rules, err := ws.IgnoreRules()
	if err != nil {
		return nil, err
	}

	// Root the backend at the parent so the sibling output file is reachable.
	parent, name := filepath.Dir(abs), filepath.Base(abs)
	backend := storage.NewOSBackend(parent)

	tree, stats, err := reflector.New(backend, nil).Reflect(ctx, reflector.Options{Folder: name, Rules: rules})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, NewStorageError(fmt.Sprintf("failed to read %s", abs), err)
	}

	out, err := reflector.OutputPath(name, opts.Format)
	if err != nil {
		return nil, NewValidationError("cannot name the output file", err)
	}
	if !opts.DryRun {
		if _, err := reflector.Write(backend, name, tree, opts.Format); err != nil {
			return nil, NewStorageError("failed to write reflected tree", err)
		}
	}

	result := &ReflectResult{
		Tree:       tree,
		OutputPath: filepath.Join(parent, filepath.FromSlash(out)),
		Stats:      stats,
	}
	debug.DebugValue("[app] Reflect output", result.OutputPath)
	return result, nil
}
