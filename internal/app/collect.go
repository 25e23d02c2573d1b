package app

import (
	"strings"

	"github.com/tacogips/sgmtr/internal/debug"
	"github.com/tacogips/sgmtr/internal/template/variables"
)

// VariableSource tells where a variable's value will come from.
type VariableSource string

const (
	// SourceBuiltIn is ${workspaceName}, ${date} or ${time}.
	SourceBuiltIn VariableSource = "built-in"
	// SourcePreset is a value supplied by a --vars file.
	SourcePreset VariableSource = "preset"
	// SourceAsk is an ${ask:Question} prompt.
	SourceAsk VariableSource = "ask"
	// SourceUnset resolves to an empty string.
	SourceUnset VariableSource = "unset"
)

// CollectedVar represents a variable referenced by a DSL file.
type CollectedVar struct {
	// Name is the variable name as written inside ${...}.
	Name string
	// Source is where the value will come from.
	Source VariableSource
	// Value is the preset value, when Source is SourcePreset.
	Value string
}

// CollectVarsResult holds the variables referenced by a DSL file, in order
// of first appearance.
type CollectVarsResult struct {
	Variables []CollectedVar
}

// CollectVars lists the variables a DSL file references and how each one
// would be resolved given preset.
func CollectVars(ws *Workspace, file string, preset variables.Values) (*CollectVarsResult, error) {
	debug.DebugSection("[app] CollectVars workflow start")
	debug.DebugValue("[app] DSL file", file)

	tree, err := ws.ReadTree(file)
	if err != nil {
		return nil, err
	}

	result := &CollectVarsResult{}
	for _, name := range variables.Extract(tree) {
		v := CollectedVar{Name: name, Source: SourceUnset}
		switch {
		case name == variables.WorkspaceName || name == variables.Date || name == variables.Time:
			v.Source = SourceBuiltIn
		case hasPreset(preset, name):
			v.Source, v.Value = SourcePreset, preset[name]
		case strings.HasPrefix(name, variables.AskPrefix):
			v.Source = SourceAsk
		}
		result.Variables = append(result.Variables, v)
	}

	debug.DebugValue("[app] Variables found", len(result.Variables))
	return result, nil
}

func hasPreset(preset variables.Values, name string) bool {
	_, ok := preset[name]
	return ok
}
