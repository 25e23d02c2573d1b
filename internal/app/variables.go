package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/tacogips/sgmtr/internal/debug"
	"github.com/tacogips/sgmtr/internal/prompt"
	"github.com/tacogips/sgmtr/internal/template/dsl"
	"github.com/tacogips/sgmtr/internal/template/variables"
)

// askKey is what godotenv makes of an "ask:Question=Value" line: it splits
// YAML-style on ':' and keeps "ask" as the key.
const askKey = "ask"

// LoadPresetVariables reads KEY=VALUE pairs from dotenv-style files. Later
// files win. An empty path is skipped. Prompt answers cannot be written in a
// dotenv file; use ParseAnswers for those.
func LoadPresetVariables(paths ...string) (variables.Values, error) {
	values := variables.Values{}
	for _, path := range paths {
		if path == "" {
			continue
		}
		debug.DebugValue("[app] Loading variables from", path)

		env, err := godotenv.Read(path)
		if err != nil {
			return nil, NewVariableResolveError(fmt.Sprintf("failed to read variables file %s", path), err)
		}
		if _, ok := env[askKey]; ok {
			return nil, NewVariableResolveError(
				fmt.Sprintf("variables file %s: %q is not a variable name (answer ${ask:...} prompts with --answer \"Question=Value\")", path, askKey),
				nil,
			)
		}
		for k, v := range env {
			values[k] = v
		}
	}
	debug.DebugValue("[app] Preset variables", len(values))
	return values, nil
}

// ParseAnswers turns "Question=Value" pairs into presets for ${ask:Question}.
// The pair is split at the first '='; the question may not be blank.
func ParseAnswers(pairs []string) (variables.Values, error) {
	values := variables.Values{}
	for _, pair := range pairs {
		question, value, ok := strings.Cut(pair, "=")
		question = strings.TrimSpace(question)
		if !ok || question == "" {
			return nil, NewVariableResolveError(fmt.Sprintf("invalid answer %q (want Question=Value)", pair), nil)
		}
		values[variables.AskPrefix+question] = value
	}
	debug.DebugValue("[app] Prompt answers", len(values))
	return values, nil
}

// resolveOptions configures variable resolution for one tree.
type resolveOptions struct {
	Preset  variables.Values
	Host    prompt.Host
	Display bool
	Now     func() time.Time
}

// resolveValues extracts every variable referenced by tree and resolves it.
func (w *Workspace) resolveValues(ctx context.Context, tree *dsl.Directory, opts resolveOptions) (variables.Values, error) {
	names := variables.Extract(tree)
	debug.Debug("[app] Variables referenced: %v", names)

	r := &variables.Resolver{
		WorkspaceName: w.Name,
		Preset:        opts.Preset,
		Host:          opts.Host,
		Display:       opts.Display,
		Now:           opts.Now,
	}
	values, err := r.ResolveAll(ctx, names)
	if err != nil {
		return nil, NewVariableResolveError("failed to resolve variables", err)
	}
	return values, nil
}
