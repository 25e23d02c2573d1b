package dsl

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tacogips/sgmtr/internal/debug"
)

// Format identifies the text format of a DSL document.
type Format int

const (
	// FormatJSON is the JSON-compatible .sgmtr format.
	FormatJSON Format = iota
	// FormatYAML is a YAML mapping with the same structure.
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	default:
		return "json"
	}
}

// FormatFor picks the format from a file name; .yaml and .yml select YAML.
func FormatFor(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ParseOptions configures Parse.
type ParseOptions struct {
	// Format selects the decoder.
	Format Format
	// Lenient strips // and /* */ comments before parsing JSON.
	Lenient bool
	// File is the source path used in error messages.
	File string
}

// Parse decodes a DSL document into a Directory, keeping declared key order.
func Parse(data []byte, opts ParseOptions) (*Directory, error) {
	debug.Debug("[dsl] Parse: file=%s format=%s lenient=%v size=%d", opts.File, opts.Format, opts.Lenient, len(data))

	var (
		dir *Directory
		err error
	)
	switch opts.Format {
	case FormatYAML:
		dir, err = parseYAML(data)
	default:
		src := data
		if opts.Lenient {
			src = StripComments(data)
		}
		dir, err = parseJSON(src)
	}

	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) && pe.File == "" {
			pe.File = opts.File
		}
		return nil, err
	}
	return dir, nil
}

// ParseString is a convenience wrapper around Parse for strict JSON text.
func ParseString(text string) (*Directory, error) {
	return Parse([]byte(text), ParseOptions{})
}

func parseJSON(data []byte) (*Directory, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, syntaxError(dec, "", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, newParseError(InvalidStructure, "top-level value must be an object", "", dec.InputOffset(), nil)
	}

	dir, err := parseJSONObject(dec, "")
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, newParseError(TrailingData, "unexpected data after top-level object", "", dec.InputOffset(), nil)
	}
	return dir, nil
}

// parseJSONObject reads object members until the closing brace.
// The opening brace has already been consumed.
func parseJSONObject(dec *json.Decoder, path string) (*Directory, error) {
	dir := NewDirectory()

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, syntaxError(dec, path, err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, newParseError(InvalidSyntax, "expected object key", path, dec.InputOffset(), nil)
		}
		childPath := joinKeyPath(path, key)

		tok, err = dec.Token()
		if err != nil {
			return nil, syntaxError(dec, childPath, err)
		}

		switch v := tok.(type) {
		case string:
			dir.Set(key, File{Content: v})
		case json.Delim:
			if v != '{' {
				return nil, newParseError(InvalidStructure, "arrays are not allowed; use an object for directories", childPath, dec.InputOffset(), nil)
			}
			child, err := parseJSONObject(dec, childPath)
			if err != nil {
				return nil, err
			}
			dir.Set(key, child)
		default:
			return nil, newParseError(InvalidStructure,
				fmt.Sprintf("value must be a string or an object, got %s", describeJSONValue(v)),
				childPath, dec.InputOffset(), nil)
		}
	}

	// closing '}'
	if _, err := dec.Token(); err != nil {
		return nil, syntaxError(dec, path, err)
	}
	return dir, nil
}

func syntaxError(dec *json.Decoder, path string, err error) *ParseError {
	offset := dec.InputOffset()
	var se *json.SyntaxError
	if errors.As(err, &se) {
		offset = se.Offset
	}
	if err == io.EOF {
		return newParseError(InvalidSyntax, "unexpected end of input", path, offset, nil)
	}
	return newParseError(InvalidSyntax, "invalid JSON", path, offset, err)
}

func describeJSONValue(v interface{}) string {
	switch v.(type) {
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func parseYAML(data []byte) (*Directory, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, newParseError(InvalidSyntax, "invalid YAML", "", -1, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, newParseError(InvalidStructure, "document is empty", "", -1, nil)
	}

	root := resolveAlias(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, newParseError(InvalidStructure, "top-level value must be a mapping", "", -1, nil)
	}
	return parseYAMLMapping(root, "")
}

func parseYAMLMapping(node *yaml.Node, path string) (*Directory, error) {
	dir := NewDirectory()

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valueNode := resolveAlias(node.Content[i+1])
		key := keyNode.Value
		childPath := joinKeyPath(path, key)

		switch valueNode.Kind {
		case yaml.ScalarNode:
			// Quote numbers, booleans and empty values: "12", "true", "".
			if tag := valueNode.ShortTag(); tag != "!!str" {
				return nil, &ParseError{
					Type:    InvalidStructure,
					Message: fmt.Sprintf("value must be a string or a mapping, got %s", yamlTagName(tag)),
					Path:    childPath,
					Offset:  -1,
				}
			}
			dir.Set(key, File{Content: valueNode.Value})
		case yaml.MappingNode:
			child, err := parseYAMLMapping(valueNode, childPath)
			if err != nil {
				return nil, err
			}
			dir.Set(key, child)
		default:
			return nil, &ParseError{
				Type:    InvalidStructure,
				Message: "value must be a scalar or a mapping",
				Path:    childPath,
				Offset:  -1,
			}
		}
	}
	return dir, nil
}

func yamlTagName(tag string) string {
	switch tag {
	case "!!int", "!!float":
		return "number"
	case "!!bool":
		return "boolean"
	case "!!null":
		return "null"
	default:
		return strings.TrimPrefix(tag, "!!")
	}
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func joinKeyPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "/" + key
}
