// Package reflector reads an existing directory subtree back into a DSL tree.
package reflector

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/tacogips/sgmtr/internal/debug"
	"github.com/tacogips/sgmtr/internal/storage"
	"github.com/tacogips/sgmtr/internal/template/dsl"
	"github.com/tacogips/sgmtr/internal/template/ignore"
	"github.com/tacogips/sgmtr/internal/template/snippet"
)

// OutputSuffix is appended to the reflected directory name to build the
// output file name.
const OutputSuffix = ".sgmtr"

// Options configures a reflection.
type Options struct {
	// Folder is the backend path of the directory to reflect.
	Folder string

	// Rules are the compiled ignore rules. Paths are matched relative to Folder.
	Rules ignore.RuleSet
}

// Stats counts what a reflection visited.
type Stats struct {
	Directories int
	Files       int
	Snippets    int
	Ignored     int
	// Unreadable counts files and nested directories that could not be read.
	Unreadable int
}

// Reflector converts storage subtrees to DSL trees.
type Reflector struct {
	storage    storage.Backend
	classifier snippet.Classifier
}

// New creates a Reflector. A nil classifier uses the default heuristics.
func New(backend storage.Backend, classifier snippet.Classifier) *Reflector {
	if classifier == nil {
		classifier = snippet.NewHeuristic()
	}
	return &Reflector{storage: backend, classifier: classifier}
}

// Reflect lists opts.Folder recursively. Ignored entries are dropped, files
// collapse to their snippet code or "". Failing to list opts.Folder itself
// is an error; unreadable nested entries are treated as empty.
func (r *Reflector) Reflect(ctx context.Context, opts Options) (*dsl.Directory, *Stats, error) {
	debug.Debug("[reflector] Reflecting %s (excludes=%v, includes=%v)",
		opts.Folder, opts.Rules.Excludes(), opts.Rules.Includes())

	entries, err := r.storage.ReadDirectory(opts.Folder)
	if err != nil {
		return nil, nil, err
	}

	stats := &Stats{}
	tree, err := r.walk(ctx, opts, "", entries, stats)
	if err != nil {
		return nil, nil, err
	}

	debug.Debug("[reflector] Reflection complete: dirs=%d, files=%d, snippets=%d, ignored=%d, unreadable=%d",
		stats.Directories, stats.Files, stats.Snippets, stats.Ignored, stats.Unreadable)
	return tree, stats, nil
}

func (r *Reflector) walk(ctx context.Context, opts Options, rel string, entries []storage.DirEntry, stats *Stats) (*dsl.Directory, error) {
	out := dsl.NewDirectory()

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		relPath := joinRel(rel, entry.Name)
		ignored := opts.Rules.IsIgnored(relPath)
		abs := path.Join(opts.Folder, relPath)

		switch entry.Kind {
		case storage.KindDirectory:
			if ignored && !opts.Rules.MayInclude(relPath) {
				stats.Ignored++
				continue
			}

			children, err := r.storage.ReadDirectory(abs)
			if err != nil {
				debug.Debug("[reflector] Unreadable directory %s: %v", abs, err)
				stats.Unreadable++
				children = nil
			}

			sub, err := r.walk(ctx, opts, relPath, children, stats)
			if err != nil {
				return nil, err
			}
			if ignored && sub.Len() == 0 {
				stats.Ignored++
				continue
			}
			stats.Directories++
			out.Set(entry.Name, sub)

		case storage.KindFile:
			if ignored {
				stats.Ignored++
				continue
			}
			stats.Files++
			out.Set(entry.Name, dsl.File{Content: r.classify(abs, stats)})

		default:
			debug.Debug("[reflector] Skipping %s entry: %s", entry.Kind, abs)
		}
	}

	return out, nil
}

func (r *Reflector) classify(abs string, stats *Stats) string {
	data, err := r.storage.ReadFile(abs)
	if err != nil {
		debug.Debug("[reflector] Unreadable file %s: %v", abs, err)
		stats.Unreadable++
		return ""
	}
	code, ok := r.classifier.ClassifyContent(string(data))
	if !ok {
		return ""
	}
	stats.Snippets++
	return string(code)
}

func joinRel(rel, name string) string {
	if rel == "" {
		return name
	}
	return rel + "/" + name
}

// OutputPath returns the sibling file a reflection of folder is written to:
// <parent>/<name>.sgmtr.json, or .sgmtr.yaml for YAML output.
func OutputPath(folder string, format dsl.Format) (string, error) {
	cleaned := path.Clean(strings.ReplaceAll(folder, `\`, "/"))
	name := path.Base(cleaned)
	if name == "." || name == "/" || name == ".." {
		return "", fmt.Errorf("cannot derive an output name from %q", folder)
	}

	ext := ".json"
	if format == dsl.FormatYAML {
		ext = ".yaml"
	}
	return path.Join(path.Dir(cleaned), name+OutputSuffix+ext), nil
}

// Encode serializes a reflected tree in the given format.
func Encode(tree *dsl.Directory, format dsl.Format) ([]byte, error) {
	if format == dsl.FormatYAML {
		return dsl.MarshalYAML(tree)
	}
	return dsl.MarshalJSON(tree), nil
}

// Write serializes tree next to folder and returns the written path.
func Write(backend storage.Backend, folder string, tree *dsl.Directory, format dsl.Format) (string, error) {
	out, err := OutputPath(folder, format)
	if err != nil {
		return "", err
	}
	data, err := Encode(tree, format)
	if err != nil {
		return "", err
	}
	if err := backend.WriteFile(out, data); err != nil {
		return "", err
	}
	debug.Debug("[reflector] Wrote %s (%d bytes)", out, len(data))
	return out, nil
}
