package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tacogips/sgmtr/internal/debug"
	"github.com/tacogips/sgmtr/internal/template/dsl"
	"github.com/tacogips/sgmtr/internal/template/generator"
	"github.com/tacogips/sgmtr/internal/template/snippet"
	"github.com/tacogips/sgmtr/internal/template/variables"
)

// CheckOptions holds options for DSL validation.
type CheckOptions struct {
	// Path is a DSL file or a directory of DSL files. Empty checks the
	// workspace templates directory.
	Path string
	// Recursive indicates whether to check subdirectories.
	Recursive bool
}

// CheckResult holds the results of DSL validation.
type CheckResult struct {
	// FilesChecked is the number of files checked.
	FilesChecked int
	// FilesWithErrors is the number of files with validation errors.
	FilesWithErrors int
	// Errors is the list of validation errors found.
	Errors []CheckIssue
	// Warnings are problems that do not stop generation.
	Warnings []CheckIssue
}

// CheckIssue is one problem found in a DSL file.
type CheckIssue struct {
	// File is the file path.
	File string
	// Path is the key path inside the tree, if applicable.
	Path string
	// Message is the problem description.
	Message string
}

// CheckTemplates parses DSL files and reports parse errors, literal names
// that cannot be generated, and snippet keywords in non-component files.
func CheckTemplates(ctx context.Context, ws *Workspace, opts CheckOptions) (*CheckResult, error) {
	debug.DebugSection("[app] CheckTemplates workflow start")

	root := opts.Path
	if root == "" {
		root = ws.Config.DSL.TemplatesDir
	}
	abs := ws.Abs(root)
	debug.DebugValue("[app] Check path", abs)

	info, err := os.Stat(abs)
	if err != nil {
		return nil, NewNotFoundError(fmt.Sprintf("path not found: %s", abs), err)
	}

	var files []string
	if info.IsDir() {
		files, err = collectDSLFiles(abs, ws.Config.DSL.Extension, opts.Recursive)
		if err != nil {
			return nil, NewStorageError("failed to list DSL files", err)
		}
	} else {
		files = []string{abs}
	}

	result := &CheckResult{}
	extensions := ws.Config.Generate.ComponentExtensions
	classifier := snippet.NewHeuristic()

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result.FilesChecked++

		tree, err := ws.ReadTree(file)
		if err != nil {
			result.FilesWithErrors++
			issue := CheckIssue{File: file, Message: err.Error()}
			var pe *dsl.ParseError
			if errors.As(err, &pe) {
				issue.Path = pe.Path
				issue.Message = pe.Error()
			}
			result.Errors = append(result.Errors, issue)
			continue
		}

		errs, warnings := checkTree(file, "", tree, classifier, extensions)
		if len(errs) > 0 {
			result.FilesWithErrors++
		}
		result.Errors = append(result.Errors, errs...)
		result.Warnings = append(result.Warnings, warnings...)
	}

	debug.Debug("[app] CheckTemplates completed: checked=%d, with errors=%d, warnings=%d",
		result.FilesChecked, result.FilesWithErrors, len(result.Warnings))
	return result, nil
}

func checkTree(file, base string, dir *dsl.Directory, classifier snippet.Classifier, extensions []string) (errs, warnings []CheckIssue) {
	for _, entry := range dir.Entries {
		keyPath := entry.Name
		if base != "" {
			keyPath = base + "/" + entry.Name
		}

		// Names with variables are only known at generation time.
		if !variables.HasTokens(entry.Name) {
			if _, err := generator.ProcessName(entry.Name, nil); err != nil {
				errs = append(errs, CheckIssue{File: file, Path: keyPath, Message: err.Error()})
				continue
			}
		}

		switch node := entry.Node.(type) {
		case *dsl.Directory:
			e, w := checkTree(file, keyPath, node, classifier, extensions)
			errs = append(errs, e...)
			warnings = append(warnings, w...)
		case dsl.File:
			code, ok := classifier.ClassifyKeyword(node.Content)
			if ok && !variables.HasTokens(entry.Name) && !snippet.IsComponentFile(entry.Name, extensions) {
				warnings = append(warnings, CheckIssue{
					File:    file,
					Path:    keyPath,
					Message: fmt.Sprintf("snippet keyword %q is written literally: %s is not a component file", code, entry.Name),
				})
			}
		}
	}
	return errs, warnings
}

// collectDSLFiles lists files with ext under dir, sorted.
func collectDSLFiles(dir, ext string, recursive bool) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != dir && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), ext) {
			files = append(files, p)
		}
		return nil
	})
	sort.Strings(files)
	return files, err
}
