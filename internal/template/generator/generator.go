// Package generator materializes DSL trees onto a storage backend.
package generator

import (
	"context"
	"fmt"
	"path"
	"slices"

	"github.com/tacogips/sgmtr/internal/debug"
	"github.com/tacogips/sgmtr/internal/prompt"
	"github.com/tacogips/sgmtr/internal/storage"
	"github.com/tacogips/sgmtr/internal/template/dsl"
	"github.com/tacogips/sgmtr/internal/template/snippet"
	"github.com/tacogips/sgmtr/internal/template/variables"
)

// ConflictPolicy decides what happens when a target file already exists.
type ConflictPolicy int

const (
	// ConflictSkip leaves existing files untouched.
	ConflictSkip ConflictPolicy = iota
	// ConflictOverwrite replaces existing files.
	ConflictOverwrite
	// ConflictAsk asks the host for every existing file.
	ConflictAsk
)

// Choices offered by the conflict prompt.
const (
	ChoiceOverwrite = "Overwrite"
	ChoiceSkip      = "Skip"
)

// String returns the policy name used in configuration.
func (p ConflictPolicy) String() string {
	switch p {
	case ConflictOverwrite:
		return "overwrite"
	case ConflictAsk:
		return "ask"
	default:
		return "skip"
	}
}

// ParseConflictPolicy parses "ask", "overwrite" or "skip".
func ParseConflictPolicy(s string) (ConflictPolicy, error) {
	switch s {
	case "ask":
		return ConflictAsk, nil
	case "overwrite":
		return ConflictOverwrite, nil
	case "skip", "":
		return ConflictSkip, nil
	}
	return ConflictSkip, fmt.Errorf("unknown conflict policy %q (want ask, overwrite or skip)", s)
}

// Options configures a materialization.
type Options struct {
	// Root is the backend path the tree is written under.
	Root string

	// Tree is the parsed DSL tree.
	Tree *dsl.Directory

	// Values holds resolved variable values.
	Values variables.Values

	// OnConflict decides what to do with existing files.
	OnConflict ConflictPolicy

	// ComponentExtensions lists extensions that receive snippet expansion.
	// Defaults to snippet.DefaultComponentExtensions.
	ComponentExtensions []string

	// DryRun computes the result without writing or prompting.
	DryRun bool
}

// Result contains materialization statistics.
type Result struct {
	// FilesCreated is the number of new files written.
	FilesCreated int

	// FilesSkipped is the number of existing files left untouched.
	FilesSkipped int

	// FilesOverwritten is the number of existing files replaced.
	FilesOverwritten int

	// Snippets is the number of files whose value was expanded from a keyword.
	Snippets int

	// Directories lists directories that did not exist before, in creation order.
	Directories []string

	// Files lists every file path visited, in traversal order.
	Files []string
}

// Materializer writes DSL trees to storage.
type Materializer struct {
	storage    storage.Backend
	host       prompt.Host
	classifier snippet.Classifier
}

// New creates a Materializer. A nil host declines every prompt and a nil
// classifier uses the default heuristics.
func New(backend storage.Backend, host prompt.Host, classifier snippet.Classifier) *Materializer {
	if host == nil {
		host = prompt.Declining{}
	}
	if classifier == nil {
		classifier = snippet.NewHeuristic()
	}
	return &Materializer{storage: backend, host: host, classifier: classifier}
}

// Materialize walks the tree in declared order and writes it under
// opts.Root. A failure aborts the remaining traversal; earlier writes stay.
func (m *Materializer) Materialize(ctx context.Context, opts Options) (*Result, error) {
	if opts.Tree == nil {
		return nil, fmt.Errorf("tree cannot be nil")
	}
	if opts.Root == "" {
		opts.Root = "."
	}
	if opts.ComponentExtensions == nil {
		opts.ComponentExtensions = snippet.DefaultComponentExtensions
	}

	debug.Debug("[generator] Starting materialization: root=%s, onConflict=%s, dryRun=%v",
		opts.Root, opts.OnConflict, opts.DryRun)

	result := &Result{Directories: []string{}, Files: []string{}}

	if err := m.ensureDirectory(opts.Root, opts, result); err != nil {
		return result, err
	}
	if err := m.walk(ctx, opts.Root, opts.Tree, opts, result); err != nil {
		return result, err
	}

	debug.Debug("[generator] Materialization complete: created=%d, overwritten=%d, skipped=%d, snippets=%d, dirs=%d",
		result.FilesCreated, result.FilesOverwritten, result.FilesSkipped, result.Snippets, len(result.Directories))
	return result, nil
}

func (m *Materializer) walk(ctx context.Context, base string, dir *dsl.Directory, opts Options, result *Result) error {
	for _, entry := range dir.Entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		name, err := ProcessName(entry.Name, opts.Values)
		if err != nil {
			return newGeneratorError(GeneratorPathError, "invalid entry name", path.Join(base, entry.Name), err)
		}
		target := path.Join(base, name)

		switch node := entry.Node.(type) {
		case *dsl.Directory:
			if err := m.ensureDirectory(target, opts, result); err != nil {
				return err
			}
			if err := m.walk(ctx, target, node, opts, result); err != nil {
				return err
			}
		case dsl.File:
			if err := m.writeFile(ctx, target, node, opts, result); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unexpected node type %T at %s", node, target)
		}
	}
	return nil
}

func (m *Materializer) writeFile(ctx context.Context, target string, file dsl.File, opts Options, result *Result) error {
	result.Files = append(result.Files, target)

	content, expanded, err := m.content(target, file, opts)
	if err != nil {
		return err
	}

	exists, err := m.storage.Stat(target)
	if err != nil {
		return newGeneratorError(GeneratorWriteFailed, "failed to check file", target, err)
	}

	if exists {
		overwrite, err := m.resolveConflict(ctx, target, opts)
		if err != nil {
			return err
		}
		if !overwrite {
			debug.Debug("[generator] Skipping existing file: %s", target)
			result.FilesSkipped++
			return nil
		}
	}

	if parent := path.Dir(target); parent != "." {
		if err := m.ensureDirectory(parent, opts, result); err != nil {
			return err
		}
	}

	if !opts.DryRun {
		if err := m.storage.WriteFile(target, []byte(content)); err != nil {
			return newGeneratorError(GeneratorWriteFailed, "failed to write file", target, err)
		}
	}

	if expanded {
		result.Snippets++
	}
	if exists {
		debug.Debug("[generator] Overwrote file: %s (size: %d bytes)", target, len(content))
		result.FilesOverwritten++
	} else {
		debug.Debug("[generator] Created file: %s (size: %d bytes)", target, len(content))
		result.FilesCreated++
	}
	return nil
}

// content returns the injected value, expanded when it is a keyword in a
// component file.
func (m *Materializer) content(target string, file dsl.File, opts Options) (string, bool, error) {
	value := variables.Inject(file.Content, opts.Values)
	if !snippet.IsComponentFile(target, opts.ComponentExtensions) {
		return value, false, nil
	}

	code, ok := m.classifier.ClassifyKeyword(value)
	if !ok {
		return value, false, nil
	}

	expanded, err := m.classifier.Expand(code, path.Base(target))
	if err != nil {
		return "", false, newGeneratorError(GeneratorExpandFailed, "failed to expand snippet", target, err)
	}
	debug.Debug("[generator] Expanded snippet %s for %s", code, target)
	return expanded, true, nil
}

func (m *Materializer) resolveConflict(ctx context.Context, target string, opts Options) (bool, error) {
	switch opts.OnConflict {
	case ConflictOverwrite:
		return true, nil
	case ConflictAsk:
		if opts.DryRun {
			return false, nil
		}
		choice, ok, err := m.host.Choose(ctx, fmt.Sprintf("%s already exists.", target),
			[]string{ChoiceOverwrite, ChoiceSkip})
		if err != nil {
			return false, newGeneratorError(GeneratorPromptFailed, "conflict prompt failed", target, err)
		}
		return ok && choice == ChoiceOverwrite, nil
	default:
		return false, nil
	}
}

func (m *Materializer) ensureDirectory(dir string, opts Options, result *Result) error {
	if slices.Contains(result.Directories, dir) {
		return nil
	}
	exists, err := m.storage.Stat(dir)
	if err != nil {
		return newGeneratorError(GeneratorWriteFailed, "failed to check directory", dir, err)
	}
	if exists {
		return nil
	}

	if !opts.DryRun {
		if err := m.storage.CreateDirectory(dir); err != nil {
			return newGeneratorError(GeneratorWriteFailed, "failed to create directory", dir, err)
		}
	}
	result.Directories = append(result.Directories, dir)
	return nil
}
