// Package preview builds an annotated, read-only view of what a DSL tree
// would produce and renders it as a box-drawing tree.
package preview

import "strings"

// Node is a preview tree node: Leaf, DetailLeaf or Branch.
type Node interface {
	isNode()
}

// Leaf is a plain file line.
type Leaf struct {
	Label string
}

// DetailLeaf is a file shown with the import and export lines of its source.
type DetailLeaf struct {
	Label   string
	Imports []string
	Exports []string
}

// Branch is a directory.
type Branch struct {
	Label    string
	Children []Node
}

func (Leaf) isNode()       {}
func (DetailLeaf) isNode() {}
func (Branch) isNode()     {}

// ScanImportsExports returns the lines of source that start with "import"
// or "export" once leading whitespace is removed. Lines are trimmed and
// keep their order.
func ScanImportsExports(source string) (imports, exports []string) {
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "import"):
			imports = append(imports, trimmed)
		case strings.HasPrefix(trimmed, "export"):
			exports = append(exports, trimmed)
		}
	}
	return imports, exports
}
