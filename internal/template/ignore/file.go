package ignore

import (
	"strings"

	"github.com/tacogips/sgmtr/internal/debug"
	"github.com/tacogips/sgmtr/internal/storage"
)

// DefaultFileName is the ignore file looked up at the workspace root.
const DefaultFileName = ".sgmtrignore"

// ParseLines splits ignore file content into patterns. Blank lines and
// lines starting with '#' are dropped.
func ParseLines(data []byte) []string {
	var patterns []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns
}

// LoadPatterns reads the ignore file at name. A missing file yields no
// patterns.
func LoadPatterns(backend storage.Backend, name string) ([]string, error) {
	exists, err := backend.Stat(name)
	if err != nil {
		return nil, err
	}
	if !exists {
		debug.Debug("[ignore] No ignore file at %s", name)
		return nil, nil
	}

	data, err := backend.ReadFile(name)
	if err != nil {
		return nil, err
	}
	patterns := ParseLines(data)
	debug.Debug("[ignore] Loaded %d patterns from %s", len(patterns), name)
	return patterns, nil
}

// Load reads the ignore file, prepends extra patterns and compiles the result.
func Load(backend storage.Backend, name string, extra []string, opts ...Option) (RuleSet, error) {
	patterns, err := LoadPatterns(backend, name)
	if err != nil {
		return RuleSet{}, err
	}
	all := make([]string, 0, len(extra)+len(patterns))
	all = append(all, extra...)
	all = append(all, patterns...)
	return Compile(all, opts...)
}
