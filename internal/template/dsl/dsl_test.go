package dsl

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParse_KeepsDeclaredOrder tests that entries keep the order they are written in
func TestParse_KeepsDeclaredOrder(t *testing.T) {
	dir, err := ParseString(`{"zeta": "", "alpha": {"b.txt": "x", "a.txt": "y"}, "mid": "rafce"}`)
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, dir.Names())

	alpha, ok := dir.Get("alpha")
	require.True(t, ok)
	sub, ok := alpha.(*Directory)
	require.True(t, ok, "alpha should be a directory")
	assert.Equal(t, []string{"b.txt", "a.txt"}, sub.Names())

	mid, _ := dir.Get("mid")
	assert.Equal(t, File{Content: "rafce"}, mid)
}

// TestParse_DuplicateKeyReplacesInPlace tests duplicate key handling
func TestParse_DuplicateKeyReplacesInPlace(t *testing.T) {
	dir, err := ParseString(`{"a": "1", "b": "2", "a": {"c": ""}}`)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, dir.Names())
	a, _ := dir.Get("a")
	assert.IsType(t, &Directory{}, a)
}

// TestParse_Errors tests parse error categories
func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		errType ParseErrorType
	}{
		{"empty input", ``, InvalidSyntax},
		{"missing brace", `{"a": ""`, InvalidSyntax},
		{"array root", `["a"]`, InvalidStructure},
		{"string root", `"a"`, InvalidStructure},
		{"number value", `{"a": 1}`, InvalidStructure},
		{"null value", `{"a": null}`, InvalidStructure},
		{"array value", `{"a": ["x"]}`, InvalidStructure},
		{"trailing data", `{"a": ""} {}`, TrailingData},
		{"comment in strict mode", "{\n// note\n\"a\": \"\"}", InvalidSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input), ParseOptions{File: "tree.sgmtr"})
			require.Error(t, err)

			var pe *ParseError
			require.True(t, errors.As(err, &pe), "expected *ParseError, got %T", err)
			assert.Equal(t, tt.errType, pe.Type)
			assert.Equal(t, "tree.sgmtr", pe.File)
		})
	}
}

// TestParse_ErrorCarriesKeyPath tests key paths in structure errors
func TestParse_ErrorCarriesKeyPath(t *testing.T) {
	_, err := ParseString(`{"src": {"lib": {"x": true}}}`)
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "src/lib/x", pe.Path)
	assert.Contains(t, err.Error(), "boolean")
}

// TestParse_Lenient tests comment stripping in lenient mode
func TestParse_Lenient(t *testing.T) {
	input := `{
  // application sources
  "src": {
    /* entry point */
    "index.js": "// not a comment",
    "url.txt": "http://example.com/*x*/"
  } // trailing
}`
	dir, err := Parse([]byte(input), ParseOptions{Lenient: true})
	require.NoError(t, err)

	src, _ := dir.Get("src")
	srcDir := src.(*Directory)
	index, _ := srcDir.Get("index.js")
	assert.Equal(t, File{Content: "// not a comment"}, index)
	url, _ := srcDir.Get("url.txt")
	assert.Equal(t, File{Content: "http://example.com/*x*/"}, url)
}

// TestStripComments tests comment removal outside string literals
func TestStripComments(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no comments", `{"a": "b"}`, `{"a": "b"}`},
		{"line comment keeps newline", "{\n// c\n}", "{\n\n}"},
		{"block comment", `{/* c */"a": ""}`, `{ "a": ""}`},
		{"escaped quote in string", `{"a": "x\"//y"}`, `{"a": "x\"//y"}`},
		{"unterminated block", `{} /* open`, `{}  `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(StripComments([]byte(tt.in))))
		})
	}
}

// TestParse_YAML tests YAML input
func TestParse_YAML(t *testing.T) {
	input := `
src:
  components:
    Button.jsx: rafce
  index.js: ""
README.md: ''
`
	dir, err := Parse([]byte(input), ParseOptions{Format: FormatYAML})
	require.NoError(t, err)

	want := map[string]interface{}{
		"src": map[string]interface{}{
			"components": map[string]interface{}{"Button.jsx": "rafce"},
			"index.js":   "",
		},
		"README.md": "",
	}
	if diff := cmp.Diff(want, dir.ToMap()); diff != "" {
		t.Errorf("ToMap() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"src", "README.md"}, dir.Names())
}

// TestParse_YAMLRejectsSequences tests YAML sequence rejection
func TestParse_YAMLRejectsSequences(t *testing.T) {
	_, err := Parse([]byte("src:\n  - a\n"), ParseOptions{Format: FormatYAML})
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, InvalidStructure, pe.Type)
	assert.Equal(t, "src", pe.Path)
}

// TestParse_YAMLRejectsNonStringScalars tests that YAML numbers, booleans and
// nulls are rejected like their JSON counterparts
func TestParse_YAMLRejectsNonStringScalars(t *testing.T) {
	tests := []struct {
		name  string
		input string
		path  string
		kind  string
	}{
		{"number", "a: 12\n", "a", "number"},
		{"boolean", "src:\n  b: true\n", "src/b", "boolean"},
		{"empty value", "c:\n", "c", "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input), ParseOptions{Format: FormatYAML})
			var pe *ParseError
			require.True(t, errors.As(err, &pe), "expected *ParseError, got %v", err)
			assert.Equal(t, InvalidStructure, pe.Type)
			assert.Equal(t, tt.path, pe.Path)
			assert.Contains(t, pe.Error(), tt.kind)
		})
	}

	dir, err := Parse([]byte("a: '12'\nb: \"true\"\nc: ''\n"), ParseOptions{Format: FormatYAML})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"a": "12", "b": "true", "c": ""}, dir.ToMap())
}

// TestFormatFor tests format detection from file names
func TestFormatFor(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFor("tree.sgmtr"))
	assert.Equal(t, FormatYAML, FormatFor("tree.sgmtr.yaml"))
	assert.Equal(t, FormatYAML, FormatFor("TREE.YML"))
}

// TestMarshalJSON_SortedAndStable tests stable sorted JSON output
func TestMarshalJSON_SortedAndStable(t *testing.T) {
	dir, err := ParseString(`{"b": {"y": "", "x": "rfc"}, "a": ""}`)
	require.NoError(t, err)

	first := MarshalJSON(dir)
	second := MarshalJSON(dir)
	assert.Equal(t, first, second)

	text := string(first)
	assert.Less(t, strings.Index(text, `"a"`), strings.Index(text, `"b"`))
	assert.Less(t, strings.Index(text, `"x"`), strings.Index(text, `"y"`))

	back, err := ParseString(text)
	require.NoError(t, err)
	if diff := cmp.Diff(dir.ToMap(), back.ToMap()); diff != "" {
		t.Errorf("re-parsed tree mismatch (-want +got):\n%s", diff)
	}
}

// TestMarshalYAML_DeclaredOrder tests YAML output in declared order
func TestMarshalYAML_DeclaredOrder(t *testing.T) {
	dir, err := ParseString(`{"src": {"main.go": ""}, "Makefile": "rafce"}`)
	require.NoError(t, err)

	out, err := MarshalYAML(dir)
	require.NoError(t, err)

	back, err := Parse(out, ParseOptions{Format: FormatYAML})
	require.NoError(t, err)
	assert.Equal(t, []string{"src", "Makefile"}, back.Names())
	if diff := cmp.Diff(dir.ToMap(), back.ToMap()); diff != "" {
		t.Errorf("YAML round trip mismatch (-want +got):\n%s", diff)
	}
}

// TestDirectory_Count tests directory and file counting
func TestDirectory_Count(t *testing.T) {
	dir, err := ParseString(`{"a": {"b": {"c.txt": ""}, "d.txt": ""}, "e.txt": ""}`)
	require.NoError(t, err)

	dirs, files := dir.Count()
	assert.Equal(t, 2, dirs)
	assert.Equal(t, 3, files)
}

// TestPrintTree tests plain tree printing
func TestPrintTree(t *testing.T) {
	dir, err := ParseString(`{"z.txt": "", "src": {"App.jsx": "rafce"}}`)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, PrintTree(&buf, "project", dir))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "project\n"), "got:\n%s", out)
	assert.Contains(t, out, "src/")
	assert.Contains(t, out, "App.jsx [rafce]")
	assert.Less(t, strings.Index(out, "src/"), strings.Index(out, "z.txt"))
}
