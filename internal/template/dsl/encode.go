package dsl

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/ddddddO/gtree"
	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
	"gopkg.in/yaml.v3"
)

var jsonOptions = ojg.Options{
	Indent:     2,
	Sort:       true,
	HTMLUnsafe: true,
}

// MarshalJSON encodes the tree as two-space indented JSON with sorted keys,
// so the same tree always produces the same bytes.
func MarshalJSON(dir *Directory) []byte {
	out := oj.JSON(dir.ToMap(), &jsonOptions)
	return []byte(out + "\n")
}

// MarshalYAML encodes the tree as a YAML mapping in declared order.
func MarshalYAML(dir *Directory) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(yamlMapping(dir)); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return buf.Bytes(), nil
}

func yamlMapping(dir *Directory) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range dir.Entries {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Name}
		switch n := e.Node.(type) {
		case *Directory:
			m.Content = append(m.Content, key, yamlMapping(n))
		case File:
			m.Content = append(m.Content, key, &yaml.Node{
				Kind:  yaml.ScalarNode,
				Tag:   "!!str",
				Value: n.Content,
				Style: yaml.DoubleQuotedStyle,
			})
		}
	}
	return m
}

// PrintTree writes a plain box-drawing outline of the tree under rootLabel.
// Directories are listed before files, each group sorted by name; non-empty
// file values are shown in brackets.
func PrintTree(w io.Writer, rootLabel string, dir *Directory) error {
	root := gtree.NewRoot(rootLabel)
	addTreeNodes(root, dir)
	return gtree.OutputProgrammably(w, root)
}

func addTreeNodes(parent *gtree.Node, dir *Directory) {
	var dirs, files []Entry
	for _, e := range dir.Entries {
		switch e.Node.(type) {
		case *Directory:
			dirs = append(dirs, e)
		case File:
			files = append(files, e)
		}
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Name < dirs[j].Name })
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	for _, e := range dirs {
		addTreeNodes(parent.Add(e.Name+"/"), e.Node.(*Directory))
	}
	for _, e := range files {
		label := e.Name
		if f := e.Node.(File); f.Content != "" {
			label = fmt.Sprintf("%s [%s]", e.Name, f.Content)
		}
		parent.Add(label)
	}
}
