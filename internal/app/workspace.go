package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tacogips/sgmtr/internal/config"
	"github.com/tacogips/sgmtr/internal/debug"
	"github.com/tacogips/sgmtr/internal/storage"
	"github.com/tacogips/sgmtr/internal/template/dsl"
	"github.com/tacogips/sgmtr/internal/template/ignore"
)

// Workspace is the root directory every command works in.
type Workspace struct {
	// Root is the absolute workspace path.
	Root string
	// Name is the base name of Root, used for ${workspaceName}.
	Name string
	// Storage is rooted at Root.
	Storage storage.Backend
	// Config is the effective configuration.
	Config *config.Config
}

// OpenWorkspace resolves dir into a Workspace. A nil cfg uses defaults.
func OpenWorkspace(dir string, cfg *config.Config) (*Workspace, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if dir == "" {
		return nil, NewNotFoundError("no workspace directory given", nil)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, NewNotFoundError("failed to resolve workspace path", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, NewNotFoundError(fmt.Sprintf("workspace not found: %s", abs), err)
	}
	if !info.IsDir() {
		return nil, NewNotFoundError(fmt.Sprintf("workspace is not a directory: %s", abs), nil)
	}

	debug.DebugValue("[app] Workspace root", abs)
	return &Workspace{
		Root:    abs,
		Name:    filepath.Base(abs),
		Storage: storage.NewOSBackend(abs),
		Config:  cfg,
	}, nil
}

// Abs resolves p against the workspace root unless it is absolute.
func (w *Workspace) Abs(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(w.Root, p)
}

// Rel converts a path (absolute, or relative to the workspace root) to a
// slash-separated workspace-relative path. Paths outside the workspace are
// rejected.
func (w *Workspace) Rel(p string) (string, error) {
	rel, err := filepath.Rel(w.Root, w.Abs(p))
	if err != nil {
		return "", NewValidationError(fmt.Sprintf("%s is not inside the workspace", p), err)
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", NewValidationError(fmt.Sprintf("%s is not inside the workspace %s", p, w.Root), nil)
	}
	return rel, nil
}

// IgnoreRules loads the workspace ignore file plus the configured default
// patterns.
func (w *Workspace) IgnoreRules() (ignore.RuleSet, error) {
	rules, err := ignore.Load(w.Storage, w.Config.Ignore.File, w.Config.Ignore.DefaultPatterns,
		ignore.CaseInsensitive(w.Config.Ignore.CaseInsensitive))
	if err != nil {
		var se *storage.Error
		if errors.As(err, &se) {
			return ignore.RuleSet{}, NewStorageError("failed to read ignore file", err)
		}
		return ignore.RuleSet{}, NewValidationError("invalid ignore pattern", err)
	}
	return rules, nil
}

// ReadTree reads and parses a DSL file. Files outside the workspace are
// read from their own directory.
func (w *Workspace) ReadTree(file string) (*dsl.Directory, error) {
	backend, name := w.Storage, ""
	if rel, err := w.Rel(file); err == nil {
		name = rel
	} else {
		abs := w.Abs(file)
		backend, name = storage.NewOSBackend(filepath.Dir(abs)), filepath.Base(abs)
	}

	data, err := backend.ReadFile(name)
	if err != nil {
		if storage.IsNotExist(err) {
			return nil, NewNotFoundError(fmt.Sprintf("DSL file not found: %s", file), err)
		}
		return nil, NewStorageError("failed to read DSL file", err)
	}

	tree, err := dsl.Parse(data, dsl.ParseOptions{
		Format:  dsl.FormatFor(file),
		Lenient: w.Config.DSL.Lenient,
		File:    file,
	})
	if err != nil {
		return nil, NewParseError("failed to parse DSL", err)
	}
	return tree, nil
}

// target resolves an output directory into a workspace-relative path.
// An empty target is the workspace root.
func (w *Workspace) target(dir string) (string, error) {
	if dir == "" {
		return ".", nil
	}
	return w.Rel(dir)
}
