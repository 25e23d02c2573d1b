// Package dsl holds the folder structure tree described by .sgmtr documents
// and the codecs that read and write it.
package dsl

// Node is one value of a DSL tree: either a *Directory or a File.
type Node interface {
	isNode()
}

// File is a leaf whose value is file content, a snippet keyword or templated text.
type File struct {
	Content string
}

func (File) isNode() {}

// Entry is a named child of a Directory.
type Entry struct {
	Name string
	Node Node
}

// Directory maps names to child nodes, keeping the declared order.
type Directory struct {
	Entries []Entry
}

func (*Directory) isNode() {}

// NewDirectory creates an empty directory.
func NewDirectory() *Directory {
	return &Directory{}
}

// Set adds or replaces the entry with the given name.
// A replaced entry keeps its original position.
func (d *Directory) Set(name string, node Node) {
	for i := range d.Entries {
		if d.Entries[i].Name == name {
			d.Entries[i].Node = node
			return
		}
	}
	d.Entries = append(d.Entries, Entry{Name: name, Node: node})
}

// Get returns the child with the given name.
func (d *Directory) Get(name string) (Node, bool) {
	for _, e := range d.Entries {
		if e.Name == name {
			return e.Node, true
		}
	}
	return nil, false
}

// Len returns the number of direct children.
func (d *Directory) Len() int {
	return len(d.Entries)
}

// Names returns the child names in declared order.
func (d *Directory) Names() []string {
	names := make([]string, 0, len(d.Entries))
	for _, e := range d.Entries {
		names = append(names, e.Name)
	}
	return names
}

// ToMap converts the tree to nested map[string]interface{} values with
// string leaves. Declared order is lost.
func (d *Directory) ToMap() map[string]interface{} {
	m := make(map[string]interface{}, len(d.Entries))
	for _, e := range d.Entries {
		switch n := e.Node.(type) {
		case *Directory:
			m[e.Name] = n.ToMap()
		case File:
			m[e.Name] = n.Content
		}
	}
	return m
}

// Count returns the number of directories and files in the tree, excluding d itself.
func (d *Directory) Count() (dirs, files int) {
	for _, e := range d.Entries {
		switch n := e.Node.(type) {
		case *Directory:
			sd, sf := n.Count()
			dirs += sd + 1
			files += sf
		case File:
			files++
		}
	}
	return dirs, files
}
