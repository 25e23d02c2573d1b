package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacogips/sgmtr/internal/template/variables"
)

func TestCollectVars(t *testing.T) {
	ws := newTestWorkspace(t, map[string]string{
		"tree.sgmtr": `{
			"${workspaceName}": {"${ask:Component}.${ext}": "rafce"},
			"README.md": "${date} ${missing} ${ext}"
		}`,
	})

	result, err := CollectVars(ws, "tree.sgmtr", variables.Values{"ext": "jsx"})
	require.NoError(t, err)

	assert.Equal(t, []CollectedVar{
		{Name: "workspaceName", Source: SourceBuiltIn},
		{Name: "ask:Component", Source: SourceAsk},
		{Name: "ext", Source: SourcePreset, Value: "jsx"},
		{Name: "date", Source: SourceBuiltIn},
		{Name: "missing", Source: SourceUnset},
	}, result.Variables)
}

func TestCollectVars_MissingFile(t *testing.T) {
	ws := newTestWorkspace(t, nil)
	_, err := CollectVars(ws, "nope.sgmtr", nil)
	requireAppError(t, err, NotFound)
}
