package snippet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestClassifyKeyword tests exact keyword classification
func TestClassifyKeyword(t *testing.T) {
	h := NewHeuristic()

	tests := []struct {
		input string
		want  Code
		ok    bool
	}{
		{"rafce", RAFCE, true},
		{"  rcc\n", RCC, true},
		{"RFC", "", false},
		{"rafce2", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := h.ClassifyKeyword(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestClassifyContent tests structural content classification
func TestClassifyContent(t *testing.T) {
	h := NewHeuristic()

	tests := []struct {
		name   string
		source string
		want   Code
		ok     bool
	}{
		{"keyword wins", "rfc", RFC, true},
		{"default arrow", "export default () => (\n  <div/>\n)", RAFCE, true},
		{"default arrow any case", "EXPORT DEFAULT (props) => (", RAFCE, true},
		{"default function", "export default function App() {\n  return <div/>\n}", RFC, true},
		{"const arrow with return", "const Card = () => {\n  return (\n    <div/>\n  )\n}", RAFC, true},
		{"const arrow without return", "const add = (a, b) => a + b", "", false},
		{"plain text", "# README", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := h.ClassifyContent(tt.source)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestLooksLikeComponent tests component detection
func TestLooksLikeComponent(t *testing.T) {
	h := NewHeuristic()

	assert.True(t, h.LooksLikeComponent("export default function Page() {}"))
	assert.True(t, h.LooksLikeComponent("const X = () => {\n  return (<p/>)\n}"))
	assert.False(t, h.LooksLikeComponent("rafce"), "keywords are not structural matches")
	assert.False(t, h.LooksLikeComponent("module.exports = {}"))
}

// TestExpand tests boilerplate expansion
func TestExpand(t *testing.T) {
	h := NewHeuristic()

	out, err := h.Expand(RAFCE, "Button.jsx")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "import React from 'react'\n"), "got:\n%s", out)
	assert.Contains(t, out, "const Button = () => {")
	assert.Contains(t, out, "export default Button")
	assert.False(t, strings.Contains(out, "{{"), "unrendered template in:\n%s", out)
	assert.False(t, strings.HasPrefix(out, "\t"))
}

// TestExpand_AllCodesNameTheSymbol tests symbol names in every expansion
func TestExpand_AllCodesNameTheSymbol(t *testing.T) {
	h := NewHeuristic()
	for _, code := range Codes() {
		t.Run(string(code), func(t *testing.T) {
			out, err := h.Expand(code, "src/UserCard.tsx")
			require.NoError(t, err)
			assert.Contains(t, out, "UserCard")
		})
	}
}

// TestExpand_Deterministic tests repeatable expansion
func TestExpand_Deterministic(t *testing.T) {
	h := NewHeuristic()
	a, err := h.Expand(RCC, "List.jsx")
	require.NoError(t, err)
	b, err := h.Expand(RCC, "List.jsx")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

// TestExpand_UnknownCode tests unknown snippet codes
func TestExpand_UnknownCode(t *testing.T) {
	_, err := NewHeuristic().Expand(Code("nope"), "A.jsx")
	require.Error(t, err)
}

// TestSymbolName tests symbol names derived from file names
func TestSymbolName(t *testing.T) {
	tests := []struct {
		fileName string
		want     string
	}{
		{"Button.jsx", "Button"},
		{"Button.test.jsx", "Button"},
		{"src/components/Nav-Bar.tsx", "NavBar"},
		{`src\win\Card.jsx`, "Card"},
		{".jsx", "Component"},
		{"404.jsx", "Component404"},
		{"my_widget$.jsx", "my_widget$"},
	}

	for _, tt := range tests {
		t.Run(tt.fileName, func(t *testing.T) {
			assert.Equal(t, tt.want, SymbolName(tt.fileName))
		})
	}
}

// TestIsComponentFile tests component file extension checks
func TestIsComponentFile(t *testing.T) {
	assert.True(t, IsComponentFile("Button.jsx", DefaultComponentExtensions))
	assert.True(t, IsComponentFile("Button.TSX", DefaultComponentExtensions))
	assert.False(t, IsComponentFile("Button.js", DefaultComponentExtensions))
	assert.False(t, IsComponentFile("Makefile", DefaultComponentExtensions))
	assert.True(t, IsComponentFile("view.vue", []string{".vue"}))
}
