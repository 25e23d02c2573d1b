package generator

import (
	"fmt"
	"path"
	"strings"

	"github.com/tacogips/sgmtr/internal/debug"
	"github.com/tacogips/sgmtr/internal/template/variables"
)

// ProcessName injects variable values into a DSL entry name and validates
// the result. Names may span several path segments ("src/lib").
// Returns an error if the injected name:
// - is empty
// - is absolute
// - escapes the directory it is declared in
func ProcessName(raw string, values variables.Values) (string, error) {
	injected := variables.Inject(raw, values)
	debug.Debug("[generator] ProcessName: %s -> %s", raw, injected)

	if strings.TrimSpace(injected) == "" {
		return "", fmt.Errorf("name %q is empty after variable substitution", raw)
	}

	slashed := strings.ReplaceAll(injected, `\`, "/")
	if strings.HasPrefix(slashed, "/") || hasDriveLetter(slashed) {
		return "", fmt.Errorf("name %q is an absolute path after variable substitution (original: %q)", injected, raw)
	}

	cleaned := path.Clean(slashed)
	if cleaned == "." {
		return "", fmt.Errorf("name %q resolves to the current directory (original: %q)", injected, raw)
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("name %q escapes its parent directory (original: %q)", injected, raw)
	}

	return cleaned, nil
}

func hasDriveLetter(p string) bool {
	return len(p) >= 2 && p[1] == ':' &&
		((p[0] >= 'a' && p[0] <= 'z') || (p[0] >= 'A' && p[0] <= 'Z'))
}
