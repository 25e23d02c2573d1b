// Package variables finds ${name} tokens in DSL trees, resolves them to
// values and injects the values back into names and file content.
package variables

import (
	"regexp"

	"github.com/tacogips/sgmtr/internal/template/dsl"
)

// Built-in variable names and the interactive prefix.
const (
	WorkspaceName = "workspaceName"
	Date          = "date"
	Time          = "time"
	AskPrefix     = "ask:"
)

// tokenPattern matches ${name}; the name is everything up to the first '}'.
var tokenPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Values maps variable names to resolved text.
type Values map[string]string

// ExtractFromString returns the variable names referenced in s, in order of
// first appearance, without duplicates.
func ExtractFromString(s string) []string {
	var names []string
	seen := make(map[string]bool)
	collect(s, seen, &names)
	return names
}

// Extract scans every entry name and file value of the tree and returns the
// referenced variable names in order of first appearance, without duplicates.
func Extract(dir *dsl.Directory) []string {
	var names []string
	seen := make(map[string]bool)
	extractTree(dir, seen, &names)
	return names
}

func extractTree(dir *dsl.Directory, seen map[string]bool, names *[]string) {
	for _, e := range dir.Entries {
		collect(e.Name, seen, names)
		switch n := e.Node.(type) {
		case *dsl.Directory:
			extractTree(n, seen, names)
		case dsl.File:
			collect(n.Content, seen, names)
		}
	}
}

func collect(s string, seen map[string]bool, names *[]string) {
	for _, m := range tokenPattern.FindAllStringSubmatch(s, -1) {
		name := m[1]
		if !seen[name] {
			seen[name] = true
			*names = append(*names, name)
		}
	}
}

// Inject replaces every ${name} in text with values[name]. Names without a
// value are replaced with the empty string.
func Inject(text string, values Values) string {
	return tokenPattern.ReplaceAllStringFunc(text, func(token string) string {
		name := tokenPattern.FindStringSubmatch(token)[1]
		return values[name]
	})
}

// HasTokens reports whether text still contains a ${name} token.
func HasTokens(text string) bool {
	return tokenPattern.MatchString(text)
}
