package app

import (
	"context"

	"github.com/tacogips/sgmtr/internal/debug"
	"github.com/tacogips/sgmtr/internal/template/dsl"
	"github.com/tacogips/sgmtr/internal/template/preview"
	"github.com/tacogips/sgmtr/internal/template/variables"
)

// PreviewOptions holds options for the preview workflow.
type PreviewOptions struct {
	// File is the DSL file, absolute or relative to the workspace root.
	File string
	// Target is the directory the tree would be generated into.
	Target string
	// Detail shows import and export lines for component files.
	Detail bool
	// Preset holds variable values supplied up front.
	Preset variables.Values
}

// PreviewResult holds the composed preview.
type PreviewResult struct {
	// Nodes are the annotated top-level nodes.
	Nodes []preview.Node
	// Text is the rendered tree.
	Text string
}

// Preview renders what generating File into Target would produce. Nothing
// is written and no prompts are shown; ask variables render as <Question>.
func Preview(ctx context.Context, ws *Workspace, opts PreviewOptions) (*PreviewResult, error) {
	debug.DebugSection("[app] Preview workflow start")
	debug.DebugValue("[app] DSL file", opts.File)
	debug.DebugValue("[app] Detail", opts.Detail)

	tree, err := ws.ReadTree(opts.File)
	if err != nil {
		return nil, err
	}
	return previewTree(ctx, ws, tree, opts)
}

func previewTree(ctx context.Context, ws *Workspace, tree *dsl.Directory, opts PreviewOptions) (*PreviewResult, error) {
	target, err := ws.target(opts.Target)
	if err != nil {
		return nil, err
	}

	rules, err := ws.IgnoreRules()
	if err != nil {
		return nil, err
	}

	values, err := ws.resolveValues(ctx, tree, resolveOptions{Preset: opts.Preset, Display: true})
	if err != nil {
		return nil, err
	}

	nodes, err := preview.NewComposer(ws.Storage, nil).Compose(ctx, preview.Options{
		Root:                target,
		Tree:                tree,
		Values:              values,
		Rules:               rules,
		Detail:              opts.Detail,
		ComponentExtensions: ws.Config.Generate.ComponentExtensions,
	})
	if err != nil {
		return nil, err
	}

	debug.DebugValue("[app] Preview top-level nodes", len(nodes))
	return &PreviewResult{Nodes: nodes, Text: preview.Render(nodes, "")}, nil
}
