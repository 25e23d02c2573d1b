package preview

import (
	"sort"
	"strings"
)

const (
	connectorMiddle = "├── "
	connectorLast   = "└── "
	prefixMiddle    = "│   "
	prefixLast      = "    "
)

// None is shown for an empty import or export list.
const None = "(none)"

// Render draws nodes as a tree. Directory-like nodes (Branch, DetailLeaf)
// come first, then files; each group is sorted by label. Import and export
// lines keep their source order.
func Render(nodes []Node, prefix string) string {
	var sb strings.Builder
	renderLevel(&sb, nodes, prefix)
	return sb.String()
}

func renderLevel(sb *strings.Builder, nodes []Node, prefix string) {
	ordered := order(nodes)
	for i, n := range ordered {
		last := i == len(ordered)-1
		connector, next := connectorMiddle, prefix+prefixMiddle
		if last {
			connector, next = connectorLast, prefix+prefixLast
		}

		switch node := n.(type) {
		case Branch:
			writeLine(sb, prefix+connector, node.Label+"/")
			renderLevel(sb, node.Children, next)
		case DetailLeaf:
			writeLine(sb, prefix+connector, node.Label+"/")
			writeLine(sb, next+connectorMiddle, "exports/")
			renderLines(sb, node.Exports, next+prefixMiddle)
			writeLine(sb, next+connectorLast, "imports/")
			renderLines(sb, node.Imports, next+prefixLast)
		case Leaf:
			writeLine(sb, prefix+connector, node.Label)
		}
	}
}

func renderLines(sb *strings.Builder, lines []string, prefix string) {
	if len(lines) == 0 {
		writeLine(sb, prefix+connectorLast, None)
		return
	}
	for i, line := range lines {
		connector := connectorMiddle
		if i == len(lines)-1 {
			connector = connectorLast
		}
		writeLine(sb, prefix+connector, "- "+strings.TrimSpace(line))
	}
}

func writeLine(sb *strings.Builder, lead, text string) {
	sb.WriteString(lead)
	sb.WriteString(text)
	sb.WriteByte('\n')
}

func order(nodes []Node) []Node {
	var dirs, files []Node
	for _, n := range nodes {
		switch n.(type) {
		case Branch, DetailLeaf:
			dirs = append(dirs, n)
		default:
			files = append(files, n)
		}
	}
	sortByLabel(dirs)
	sortByLabel(files)
	return append(dirs, files...)
}

func sortByLabel(nodes []Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return label(nodes[i]) < label(nodes[j])
	})
}

func label(n Node) string {
	switch node := n.(type) {
	case Leaf:
		return node.Label
	case DetailLeaf:
		return node.Label
	case Branch:
		return node.Label
	}
	return ""
}
