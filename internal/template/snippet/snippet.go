// Package snippet recognizes React boilerplate codes in DSL values and
// source text, and expands codes into boilerplate.
package snippet

import (
	"path"
	"regexp"
	"strings"
)

// Code is a snippet keyword.
type Code string

const (
	// RAFCE is an arrow function component with a default export.
	RAFCE Code = "rafce"
	// RFC is a default-exported function component.
	RFC Code = "rfc"
	// RAFC is a named-export arrow function component.
	RAFC Code = "rafc"
	// RSC is a stateless component with an implicit return.
	RSC Code = "rsc"
	// RCC is a class component.
	RCC Code = "rcc"
)

// Codes returns every known code in keyword priority order.
func Codes() []Code {
	return []Code{RAFCE, RFC, RAFC, RSC, RCC}
}

// Valid reports whether c is one of the known codes.
func (c Code) Valid() bool {
	for _, known := range Codes() {
		if c == known {
			return true
		}
	}
	return false
}

// DefaultComponentExtensions are the file extensions that receive snippet
// expansion.
var DefaultComponentExtensions = []string{".jsx", ".tsx"}

// Classifier decides whether text is a snippet keyword or looks like a
// component, and expands codes into boilerplate.
type Classifier interface {
	// ClassifyKeyword matches text against the code set exactly.
	ClassifyKeyword(text string) (Code, bool)

	// ClassifyContent applies the keyword rule, then structural heuristics.
	ClassifyContent(source string) (Code, bool)

	// LooksLikeComponent applies only the structural heuristics.
	LooksLikeComponent(source string) bool

	// Expand returns the boilerplate for code, naming the component after fileName.
	Expand(code Code, fileName string) (string, error)
}

var (
	defaultArrowPattern    = regexp.MustCompile(`(?i)export default\s+.*=>\s*\(`)
	defaultFunctionPattern = regexp.MustCompile(`(?i)export default function`)
	constArrowPattern      = regexp.MustCompile(`(?i)const\s+\w+\s*=\s*\(`)
	explicitReturnPattern  = regexp.MustCompile(`(?i)return\s*\(`)

	identifierCleaner = regexp.MustCompile(`[^A-Za-z0-9_$]`)
)

// Heuristic is the regular-expression based Classifier.
type Heuristic struct{}

// NewHeuristic returns the default classifier.
func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

// ClassifyKeyword matches the trimmed text against the code set.
func (h *Heuristic) ClassifyKeyword(text string) (Code, bool) {
	c := Code(strings.TrimSpace(text))
	if c.Valid() {
		return c, true
	}
	return "", false
}

// ClassifyContent checks, in order: exact keyword, default-exported arrow
// function returning markup, default-exported function, const arrow function
// with an explicit return. First match wins.
func (h *Heuristic) ClassifyContent(source string) (Code, bool) {
	if c, ok := h.ClassifyKeyword(source); ok {
		return c, true
	}
	return structural(source)
}

// LooksLikeComponent reports whether any structural heuristic matches.
func (h *Heuristic) LooksLikeComponent(source string) bool {
	_, ok := structural(source)
	return ok
}

// Expand renders the boilerplate for code.
func (h *Heuristic) Expand(code Code, fileName string) (string, error) {
	return render(code, SymbolName(fileName))
}

func structural(source string) (Code, bool) {
	switch {
	case defaultArrowPattern.MatchString(source):
		return RAFCE, true
	case defaultFunctionPattern.MatchString(source):
		return RFC, true
	case constArrowPattern.MatchString(source) && explicitReturnPattern.MatchString(source):
		return RAFC, true
	}
	return "", false
}

// SymbolName derives a component identifier from a file name: the base name
// up to its first '.', with non-identifier characters removed.
func SymbolName(fileName string) string {
	base := path.Base(strings.ReplaceAll(fileName, `\`, "/"))
	if i := strings.Index(base, "."); i >= 0 {
		base = base[:i]
	}
	name := identifierCleaner.ReplaceAllString(base, "")
	switch {
	case name == "":
		return "Component"
	case name[0] >= '0' && name[0] <= '9':
		return "Component" + name
	}
	return name
}

// IsComponentFile reports whether name has one of the given extensions.
// Comparison ignores case.
func IsComponentFile(name string, extensions []string) bool {
	ext := path.Ext(name)
	if ext == "" {
		return false
	}
	for _, e := range extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

var _ Classifier = (*Heuristic)(nil)
