package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacogips/sgmtr/internal/config"
)

func TestCheckTemplates(t *testing.T) {
	ws := newTestWorkspace(t, map[string]string{
		".sgmtr/templates/good.sgmtr":     `{"src": {"App.jsx": "rafce", "${name}.txt": "rfc"}}`,
		".sgmtr/templates/broken.sgmtr":   `{"src": {"x": 1}}`,
		".sgmtr/templates/escape.sgmtr":   `{"src": {"..": {"a.txt": ""}}}`,
		".sgmtr/templates/warn.sgmtr":     `{"notes.md": "rcc"}`,
		".sgmtr/templates/nested/x.sgmtr": `{"a": 1}`,
		".sgmtr/templates/readme.md":      "not a template",
	})

	result, err := CheckTemplates(context.Background(), ws, CheckOptions{})
	require.NoError(t, err)

	assert.Equal(t, 4, result.FilesChecked)
	assert.Equal(t, 2, result.FilesWithErrors)

	require.Len(t, result.Errors, 2)
	assert.Equal(t, filepath.Join(ws.Root, ".sgmtr", "templates", "broken.sgmtr"), result.Errors[0].File)
	assert.Equal(t, "src/x", result.Errors[0].Path)
	assert.Equal(t, "src/..", result.Errors[1].Path)

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "notes.md", result.Warnings[0].Path)
	assert.Contains(t, result.Warnings[0].Message, `"rcc"`)
}

func TestCheckTemplates_Recursive(t *testing.T) {
	ws := newTestWorkspace(t, map[string]string{
		"trees/a.sgmtr":      `{}`,
		"trees/deep/b.sgmtr": `{"b": ""}`,
	})

	result, err := CheckTemplates(context.Background(), ws, CheckOptions{Path: "trees", Recursive: true})
	require.NoError(t, err)
	assert.Equal(t, 2, result.FilesChecked)
	assert.Zero(t, result.FilesWithErrors)
}

func TestCheckTemplates_SingleFileAndMissing(t *testing.T) {
	ws := newTestWorkspace(t, map[string]string{"tree.yaml": "src:\n  a.txt: ''\n"})

	result, err := CheckTemplates(context.Background(), ws, CheckOptions{Path: "tree.yaml"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.FilesChecked)
	assert.Empty(t, result.Errors)

	_, err = CheckTemplates(context.Background(), ws, CheckOptions{Path: "absent"})
	requireAppError(t, err, NotFound)
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sgmtr", "config.json")

	require.NoError(t, InitConfig(InitConfigOptions{Path: path}))

	cfg, err := config.NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)

	err = InitConfig(InitConfigOptions{Path: path})
	requireAppError(t, err, ValidationFailed)

	require.NoError(t, InitConfig(InitConfigOptions{Path: path, Force: true}))

	err = InitConfig(InitConfigOptions{Path: filepath.Dir(path)})
	requireAppError(t, err, ValidationFailed)
}
