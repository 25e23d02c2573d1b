package preview

import (
	"context"
	"fmt"
	"path"

	"github.com/tacogips/sgmtr/internal/debug"
	"github.com/tacogips/sgmtr/internal/storage"
	"github.com/tacogips/sgmtr/internal/template/dsl"
	"github.com/tacogips/sgmtr/internal/template/generator"
	"github.com/tacogips/sgmtr/internal/template/ignore"
	"github.com/tacogips/sgmtr/internal/template/snippet"
	"github.com/tacogips/sgmtr/internal/template/variables"
)

// Options configures Compose.
type Options struct {
	// Root is the backend path the tree would be generated under. Backend
	// paths are matched against Rules as is.
	Root string

	// Tree is the parsed DSL tree.
	Tree *dsl.Directory

	// Values holds display values for variables.
	Values variables.Values

	// Rules hides excluded paths from the preview.
	Rules ignore.RuleSet

	// Detail shows import and export lines for snippets and component files.
	Detail bool

	// ComponentExtensions defaults to snippet.DefaultComponentExtensions.
	ComponentExtensions []string
}

// Composer builds preview trees. It only reads from storage.
type Composer struct {
	storage    storage.Backend
	classifier snippet.Classifier
}

// NewComposer creates a Composer. A nil classifier uses the default heuristics.
func NewComposer(backend storage.Backend, classifier snippet.Classifier) *Composer {
	if classifier == nil {
		classifier = snippet.NewHeuristic()
	}
	return &Composer{storage: backend, classifier: classifier}
}

// Compose returns the annotated top-level nodes for opts.Tree.
func (c *Composer) Compose(ctx context.Context, opts Options) ([]Node, error) {
	if opts.Tree == nil {
		return nil, fmt.Errorf("tree cannot be nil")
	}
	if opts.Root == "" {
		opts.Root = "."
	}
	if opts.ComponentExtensions == nil {
		opts.ComponentExtensions = snippet.DefaultComponentExtensions
	}

	debug.Debug("[preview] Composing: root=%s, detail=%v", opts.Root, opts.Detail)
	return c.compose(ctx, opts.Root, opts.Tree, opts)
}

func (c *Composer) compose(ctx context.Context, base string, dir *dsl.Directory, opts Options) ([]Node, error) {
	nodes := make([]Node, 0, dir.Len())

	for _, entry := range dir.Entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name, err := generator.ProcessName(entry.Name, opts.Values)
		if err != nil {
			return nil, err
		}
		target := path.Join(base, name)
		ignored := opts.Rules.IsIgnored(target)

		switch node := entry.Node.(type) {
		case *dsl.Directory:
			if ignored && !opts.Rules.MayInclude(target) {
				debug.Debug("[preview] Ignored directory: %s", target)
				continue
			}
			children, err := c.compose(ctx, target, node, opts)
			if err != nil {
				return nil, err
			}
			if ignored && len(children) == 0 {
				continue
			}
			nodes = append(nodes, Branch{Label: name, Children: children})

		case dsl.File:
			if ignored {
				debug.Debug("[preview] Ignored file: %s", target)
				continue
			}
			nodes = append(nodes, c.fileNode(name, target, node, opts))

		default:
			return nil, fmt.Errorf("unexpected node type %T at %s", node, target)
		}
	}
	return nodes, nil
}

func (c *Composer) fileNode(name, target string, file dsl.File, opts Options) Node {
	value := variables.Inject(file.Content, opts.Values)
	code, isSnippet := c.classifier.ClassifyKeyword(value)
	isComponent := snippet.IsComponentFile(name, opts.ComponentExtensions)

	if !opts.Detail {
		switch {
		case isSnippet && isComponent:
			return Leaf{Label: fmt.Sprintf("%s  [expands: %s]", name, code)}
		case isSnippet:
			return Leaf{Label: fmt.Sprintf("%s  [warning: %s ignored]", name, code)}
		}
		return Leaf{Label: name}
	}

	if !isSnippet && !isComponent {
		return Leaf{Label: name}
	}

	source := value
	if isSnippet && isComponent {
		if expanded, err := c.classifier.Expand(code, name); err == nil {
			source = expanded
		}
	}
	if source == "" {
		source = c.existing(target)
	}

	label := name
	switch {
	case isSnippet && isComponent:
		label = fmt.Sprintf("%s [expands: %s]", name, code)
	case isSnippet:
		label = fmt.Sprintf("%s [warning: %s ignored]", name, code)
	case c.classifier.LooksLikeComponent(source):
		label = fmt.Sprintf("%s [component detected]", name)
	}

	imports, exports := ScanImportsExports(source)
	return DetailLeaf{Label: label, Imports: imports, Exports: exports}
}

// existing reads the current file at target. Missing or unreadable files
// yield "".
func (c *Composer) existing(target string) string {
	data, err := c.storage.ReadFile(target)
	if err != nil {
		debug.Debug("[preview] No readable file at %s: %v", target, err)
		return ""
	}
	return string(data)
}
