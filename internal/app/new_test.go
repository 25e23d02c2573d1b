package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacogips/sgmtr/internal/prompt/prompttest"
	"github.com/tacogips/sgmtr/internal/template/dsl"
)

func TestAvailableScaffoldTypes(t *testing.T) {
	types, err := AvailableScaffoldTypes()
	require.NoError(t, err)
	assert.Equal(t, []string{"basic", "component", "feature"}, types)
}

func TestScaffoldsParse(t *testing.T) {
	types, err := AvailableScaffoldTypes()
	require.NoError(t, err)

	for _, typ := range types {
		t.Run(typ, func(t *testing.T) {
			data, err := scaffoldsFS.ReadFile("scaffolds/" + typ + scaffoldExt)
			require.NoError(t, err)
			tree, err := dsl.Parse(data, dsl.ParseOptions{Lenient: true})
			require.NoError(t, err)
			assert.Positive(t, tree.Len())
		})
	}
}

func TestNewTemplate(t *testing.T) {
	tests := []struct {
		name     string
		opts     NewTemplateOptions
		existing bool
		wantErr  AppErrorType
		ok       bool
	}{
		{"create", NewTemplateOptions{Name: "button", Type: "component"}, false, 0, true},
		{"exists without force", NewTemplateOptions{Name: "button", Type: "component"}, true, ValidationFailed, false},
		{"exists with force", NewTemplateOptions{Name: "button", Type: "basic", Force: true}, true, 0, true},
		{"unknown type", NewTemplateOptions{Name: "x", Type: "angular"}, false, ValidationFailed, false},
		{"empty name", NewTemplateOptions{Name: " ", Type: "basic"}, false, ValidationFailed, false},
		{"nested name", NewTemplateOptions{Name: "a/b", Type: "basic"}, false, ValidationFailed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := map[string]string{}
			if tt.existing {
				files[".sgmtr/templates/button.sgmtr"] = `{"old.txt": ""}`
			}
			ws := newTestWorkspace(t, files)

			result, err := NewTemplate(ws, tt.opts)
			if !tt.ok {
				requireAppError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, ".sgmtr/templates/"+tt.opts.Name+".sgmtr", result.Path)
			assert.Equal(t, tt.existing, result.Overwritten)

			want, err := scaffoldsFS.ReadFile("scaffolds/" + tt.opts.Type + scaffoldExt)
			require.NoError(t, err)
			assert.Equal(t, string(want), readFile(t, filepath.Join(ws.Root, filepath.FromSlash(result.Path))))
		})
	}
}

func TestListTemplates(t *testing.T) {
	ws := newTestWorkspace(t, nil)

	templates, err := ListTemplates(ws)
	require.NoError(t, err)
	assert.Empty(t, templates, "missing templates directory lists nothing")

	ws = newTestWorkspace(t, map[string]string{
		".sgmtr/templates/page.sgmtr":  `{}`,
		".sgmtr/templates/card.sgmtr":  `{}`,
		".sgmtr/templates/notes.md":    "",
		".sgmtr/templates/dir/x.sgmtr": `{}`,
	})
	templates, err = ListTemplates(ws)
	require.NoError(t, err)
	assert.Equal(t, []TemplateInfo{
		{Name: "card", Path: ".sgmtr/templates/card.sgmtr"},
		{Name: "page", Path: ".sgmtr/templates/page.sgmtr"},
	}, templates)
}

func TestGenerateFromTemplate(t *testing.T) {
	templates := map[string]string{
		".sgmtr/templates/card.sgmtr": `{"Card.jsx": "rfc"}`,
		".sgmtr/templates/page.sgmtr": `{"pages": {"Home.jsx": "rafce"}}`,
	}

	t.Run("by name", func(t *testing.T) {
		ws := newTestWorkspace(t, templates)
		result, err := GenerateFromTemplate(context.Background(), ws, GenerateFromTemplateOptions{
			Name:            "page",
			GenerateOptions: GenerateOptions{Target: "src"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"src/pages/Home.jsx"}, result.Files)
		assert.FileExists(t, filepath.Join(ws.Root, "src", "pages", "Home.jsx"))
	})

	t.Run("picked", func(t *testing.T) {
		ws := newTestWorkspace(t, templates)
		host := prompttest.New("card")
		result, err := GenerateFromTemplate(context.Background(), ws, GenerateFromTemplateOptions{
			GenerateOptions: GenerateOptions{Host: host},
		})
		require.NoError(t, err)
		require.NotNil(t, result)
		require.Len(t, host.Calls, 1)
		assert.Equal(t, "choose", host.Calls[0].Kind)
		assert.Equal(t, []string{"card", "page"}, host.Calls[0].Options)
		assert.FileExists(t, filepath.Join(ws.Root, "Card.jsx"))
	})

	t.Run("dismissed", func(t *testing.T) {
		ws := newTestWorkspace(t, templates)
		host := (&prompttest.Scripted{}).Dismiss()
		result, err := GenerateFromTemplate(context.Background(), ws, GenerateFromTemplateOptions{
			GenerateOptions: GenerateOptions{Host: host},
		})
		require.NoError(t, err)
		assert.Nil(t, result)
		assert.NoFileExists(t, filepath.Join(ws.Root, "Card.jsx"))
	})

	t.Run("unknown name", func(t *testing.T) {
		ws := newTestWorkspace(t, templates)
		_, err := GenerateFromTemplate(context.Background(), ws, GenerateFromTemplateOptions{Name: "nope"})
		requireAppError(t, err, NotFound)
	})

	t.Run("no templates", func(t *testing.T) {
		ws := newTestWorkspace(t, nil)
		_, err := GenerateFromTemplate(context.Background(), ws, GenerateFromTemplateOptions{Name: "card"})
		ae := requireAppError(t, err, EmptyResult)
		assert.Contains(t, ae.Message, ".sgmtr/templates")
	})

	t.Run("no name without host", func(t *testing.T) {
		ws := newTestWorkspace(t, templates)
		_, err := GenerateFromTemplate(context.Background(), ws, GenerateFromTemplateOptions{})
		requireAppError(t, err, ValidationFailed)
	})
}

func TestNewTemplate_GeneratesBasicScaffold(t *testing.T) {
	ws := newTestWorkspace(t, nil)
	_, err := NewTemplate(ws, NewTemplateOptions{Name: "starter", Type: "basic"})
	require.NoError(t, err)

	_, err = GenerateFromTemplate(context.Background(), ws, GenerateFromTemplateOptions{
		Name:            "starter",
		GenerateOptions: GenerateOptions{Now: fixedNow},
	})
	require.NoError(t, err)
	assert.Equal(t, "# my-app\n\nGenerated on 2026-01-02.\n", readFile(t, filepath.Join(ws.Root, "README.md")))
	assert.FileExists(t, filepath.Join(ws.Root, "src", "index.js"))
}
