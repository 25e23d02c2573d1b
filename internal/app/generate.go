package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tacogips/sgmtr/internal/debug"
	"github.com/tacogips/sgmtr/internal/prompt"
	"github.com/tacogips/sgmtr/internal/template/dsl"
	"github.com/tacogips/sgmtr/internal/template/generator"
	"github.com/tacogips/sgmtr/internal/template/variables"
)

// GenerateOptions holds options for the generate workflow.
type GenerateOptions struct {
	// File is the DSL file, absolute or relative to the workspace root.
	File string
	// Target is the output directory, absolute or relative to the workspace
	// root. Empty means the workspace root.
	Target string
	// Preset holds variable values supplied up front.
	Preset variables.Values
	// OnConflict overrides the configured conflict policy when set.
	OnConflict *generator.ConflictPolicy
	// DryRun reports what would be written without writing.
	DryRun bool
	// Host answers variable and conflict prompts. Nil declines every prompt.
	Host prompt.Host
	// Now overrides the clock for ${date} and ${time}.
	Now func() time.Time
}

// GenerateResult holds the result of a generate workflow.
type GenerateResult struct {
	*generator.Result
	// Target is the workspace-relative output directory.
	Target string
	// Values are the resolved variable values.
	Values variables.Values
}

// Generate parses a DSL file and materializes it into the workspace.
// Parse errors are reported before anything is written.
func Generate(ctx context.Context, ws *Workspace, opts GenerateOptions) (*GenerateResult, error) {
	debug.DebugSection("[app] Generate workflow start")
	debug.DebugValue("[app] DSL file", opts.File)
	debug.DebugValue("[app] Target", opts.Target)
	debug.DebugValue("[app] DryRun", opts.DryRun)

	tree, err := ws.ReadTree(opts.File)
	if err != nil {
		return nil, err
	}
	return generateTree(ctx, ws, tree, opts)
}

func generateTree(ctx context.Context, ws *Workspace, tree *dsl.Directory, opts GenerateOptions) (*GenerateResult, error) {
	target, err := ws.target(opts.Target)
	if err != nil {
		return nil, err
	}

	policy, err := conflictPolicy(ws, opts.OnConflict)
	if err != nil {
		return nil, err
	}

	values, err := ws.resolveValues(ctx, tree, resolveOptions{
		Preset: opts.Preset,
		Host:   opts.Host,
		Now:    opts.Now,
	})
	if err != nil {
		return nil, err
	}

	m := generator.New(ws.Storage, opts.Host, nil)
	result, err := m.Materialize(ctx, generator.Options{
		Root:                target,
		Tree:                tree,
		Values:              values,
		OnConflict:          policy,
		ComponentExtensions: ws.Config.Generate.ComponentExtensions,
		DryRun:              opts.DryRun,
	})
	if err != nil {
		return nil, materializeError(err)
	}

	debug.Debug("[app] Generate workflow completed: created=%d, overwritten=%d, skipped=%d",
		result.FilesCreated, result.FilesOverwritten, result.FilesSkipped)
	return &GenerateResult{Result: result, Target: target, Values: values}, nil
}

func conflictPolicy(ws *Workspace, override *generator.ConflictPolicy) (generator.ConflictPolicy, error) {
	if override != nil {
		return *override, nil
	}
	policy, err := generator.ParseConflictPolicy(ws.Config.Generate.OnConflict)
	if err != nil {
		return generator.ConflictSkip, NewValidationError("invalid conflict policy", err)
	}
	return policy, nil
}

func materializeError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var ge *generator.GeneratorError
	if errors.As(err, &ge) {
		switch ge.Type {
		case generator.GeneratorPathError:
			return NewValidationError("invalid path in DSL", err)
		case generator.GeneratorWriteFailed:
			return NewStorageError("failed to write to workspace", err)
		}
	}
	return fmt.Errorf("generation aborted: %w", err)
}
