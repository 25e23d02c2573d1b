// Package ignore compiles .sgmtrignore glob patterns into an immutable rule
// set and decides whether workspace-relative paths are excluded.
package ignore

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/tacogips/sgmtr/internal/debug"
)

// recursiveSuffix marks a directory pattern that also hides the directory itself.
const recursiveSuffix = "/**"

// matcher is one compiled glob.
type matcher struct {
	// source is the pattern as written (after '!' and '/' handling).
	source string
	// glob is the pattern used for matching (lowercased when case-insensitive).
	glob string
	// baseName is true when the pattern has no '/' and also matches base names.
	baseName bool
}

// RuleSet is a compiled set of exclude and include matchers.
// The zero value ignores nothing.
type RuleSet struct {
	excludes        []matcher
	includes        []matcher
	caseInsensitive bool
}

// Option configures Compile.
type Option func(*RuleSet)

// CaseInsensitive makes matching ignore letter case.
func CaseInsensitive(enabled bool) Option {
	return func(r *RuleSet) {
		r.caseInsensitive = enabled
	}
}

// Compile builds a RuleSet from raw pattern lines.
//
//   - "!pattern" adds include matchers (the pattern with '!' removed);
//     every other pattern adds exclude matchers.
//   - "dir/**" adds two matchers: "dir" and "dir/**".
//   - A leading '/' anchors the pattern to the root.
//
// Blank patterns are skipped. Malformed globs are reported as errors.
func Compile(patterns []string, opts ...Option) (RuleSet, error) {
	var rs RuleSet
	for _, opt := range opts {
		opt(&rs)
	}

	for _, raw := range patterns {
		p := strings.TrimSpace(raw)
		if p == "" {
			continue
		}

		target := &rs.excludes
		if rest, ok := strings.CutPrefix(p, "!"); ok {
			target = &rs.includes
			p = rest
		}

		p = filepath.ToSlash(p)
		anchored := strings.HasPrefix(p, "/")
		p = strings.TrimPrefix(p, "/")
		if p == "" {
			continue
		}

		sources := []string{p}
		if base, ok := strings.CutSuffix(p, recursiveSuffix); ok && base != "" {
			sources = []string{base, p}
		}

		for _, src := range sources {
			m, err := rs.newMatcher(src, anchored)
			if err != nil {
				return RuleSet{}, fmt.Errorf("invalid ignore pattern %q: %w", raw, err)
			}
			*target = append(*target, m)
		}
	}

	debug.Debug("[ignore] Compile: %d patterns -> %d excludes, %d includes",
		len(patterns), len(rs.excludes), len(rs.includes))
	return rs, nil
}

// MustCompile is like Compile but panics on malformed patterns.
func MustCompile(patterns []string, opts ...Option) RuleSet {
	rs, err := Compile(patterns, opts...)
	if err != nil {
		panic(err)
	}
	return rs
}

func (r *RuleSet) newMatcher(src string, anchored bool) (matcher, error) {
	glob := src
	if r.caseInsensitive {
		glob = strings.ToLower(glob)
	}
	if !doublestar.ValidatePattern(glob) {
		return matcher{}, fmt.Errorf("malformed glob")
	}
	return matcher{
		source:   src,
		glob:     glob,
		baseName: !anchored && !strings.Contains(src, "/"),
	}, nil
}

// IsIgnored reports whether relPath is hidden: some exclude matches it and
// no include rescues it. A matcher applies to a path when it matches the path
// or one of its ancestor directories.
func (r RuleSet) IsIgnored(relPath string) bool {
	p := r.normalize(relPath)
	if p == "" {
		return false
	}

	excluded := false
	for _, m := range r.excludes {
		if m.matchesPathOrAncestor(p) {
			excluded = true
			break
		}
	}
	if !excluded {
		return false
	}

	for _, m := range r.includes {
		if m.matchesPathOrAncestor(p) {
			return false
		}
	}
	return true
}

// MayInclude reports whether an include matcher could match something
// strictly below dir. Traversals use it to look inside excluded directories.
func (r RuleSet) MayInclude(dir string) bool {
	d := r.normalize(dir)
	if d == "" {
		return len(r.includes) > 0
	}
	dirSegs := strings.Split(d, "/")

	for _, m := range r.includes {
		if m.baseName {
			return true
		}
		if prefixCouldMatch(strings.Split(m.glob, "/"), dirSegs) {
			return true
		}
	}
	return false
}

// Excludes returns the exclude patterns in declaration order.
func (r RuleSet) Excludes() []string {
	return sources(r.excludes)
}

// Includes returns the include patterns in declaration order.
func (r RuleSet) Includes() []string {
	return sources(r.includes)
}

func sources(ms []matcher) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.source)
	}
	return out
}

func (r RuleSet) normalize(p string) string {
	p = path.Clean("/" + strings.ReplaceAll(filepath.ToSlash(p), `\`, "/"))
	p = strings.TrimPrefix(p, "/")
	if r.caseInsensitive {
		p = strings.ToLower(p)
	}
	return p
}

func (m matcher) matchesPathOrAncestor(p string) bool {
	for cur := p; cur != "." && cur != ""; cur = path.Dir(cur) {
		if m.matches(cur) {
			return true
		}
	}
	return false
}

func (m matcher) matches(p string) bool {
	if ok, _ := doublestar.Match(m.glob, p); ok {
		return true
	}
	if m.baseName {
		ok, _ := doublestar.Match(m.glob, path.Base(p))
		return ok
	}
	return false
}

// prefixCouldMatch reports whether a path under dir could match the pattern
// segments. dir itself must be a proper prefix of the match.
func prefixCouldMatch(patSegs, dirSegs []string) bool {
	for i, seg := range dirSegs {
		if i >= len(patSegs) {
			return false
		}
		if patSegs[i] == "**" {
			return true
		}
		if ok, _ := doublestar.Match(patSegs[i], seg); !ok {
			return false
		}
	}
	return len(patSegs) > len(dirSegs)
}
