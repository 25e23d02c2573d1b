package variables

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacogips/sgmtr/internal/prompt"
	"github.com/tacogips/sgmtr/internal/prompt/prompttest"
	"github.com/tacogips/sgmtr/internal/template/dsl"
)

// TestExtractFromString tests token extraction from text
func TestExtractFromString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"no tokens", "plain.txt", nil},
		{"single", "${name}.js", []string{"name"}},
		{"multiple", "${a}-${b}", []string{"a", "b"}},
		{"duplicates", "${a}${a}${b}", []string{"a", "b"}},
		{"ask with spaces", "${ask:Component name}", []string{"ask:Component name"}},
		{"unterminated", "${open", nil},
		{"empty braces", "${}", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractFromString(tt.input))
		})
	}
}

// TestExtract_KeysAndValues tests token extraction from a tree
func TestExtract_KeysAndValues(t *testing.T) {
	tree, err := dsl.ParseString(`{
		"${workspaceName}": {
			"Button.${ext}": "rafce",
			"README.md": "# ${workspaceName} (${date})"
		},
		"notes-${ask:Author}.txt": "${ext}"
	}`)
	require.NoError(t, err)

	assert.Equal(t, []string{"workspaceName", "ext", "date", "ask:Author"}, Extract(tree))
}

// TestInject tests value injection
func TestInject(t *testing.T) {
	values := Values{"ext": "jsx", "name": "Button"}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no tokens", "index.js", "index.js"},
		{"resolved", "${name}.${ext}", "Button.jsx"},
		{"unknown becomes empty", "${missing}x", "x"},
		{"repeated", "${name}${name}", "ButtonButton"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Inject(tt.input, values))
		})
	}
}

// TestInject_NoResidualTokens tests that injection leaves no tokens behind
func TestInject_NoResidualTokens(t *testing.T) {
	text := "${a}/${b}/${ask:Question?}/${a}"
	values := Values{}
	for _, name := range ExtractFromString(text) {
		values[name] = "v"
	}

	out := Inject(text, values)
	assert.False(t, strings.Contains(out, "${"), "residual token in %q", out)
	assert.False(t, HasTokens(out))
	assert.Equal(t, "v/v/v/v", out)
}

func fixedClock() time.Time {
	return time.Date(2026, 3, 4, 5, 6, 7, 0, time.FixedZone("X", 9*3600))
}

// TestResolver_BuiltIns tests built-in variables
func TestResolver_BuiltIns(t *testing.T) {
	r := &Resolver{WorkspaceName: "my-app", Now: fixedClock}
	ctx := context.Background()

	v, err := r.Resolve(ctx, WorkspaceName)
	require.NoError(t, err)
	assert.Equal(t, "my-app", v)

	// built-ins are rendered in UTC
	v, err = r.Resolve(ctx, Date)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-03", v)

	v, err = r.Resolve(ctx, Time)
	require.NoError(t, err)
	assert.Equal(t, "20:06:07", v)
}

// TestResolver_BuiltInsBeatPresets tests built-in precedence over presets
func TestResolver_BuiltInsBeatPresets(t *testing.T) {
	r := &Resolver{WorkspaceName: "ws", Preset: Values{WorkspaceName: "other", "ext": "tsx"}}

	v, err := r.Resolve(context.Background(), WorkspaceName)
	require.NoError(t, err)
	assert.Equal(t, "ws", v)

	v, err = r.Resolve(context.Background(), "ext")
	require.NoError(t, err)
	assert.Equal(t, "tsx", v)
}

// TestResolver_Ask tests ask prompts
func TestResolver_Ask(t *testing.T) {
	host := prompttest.New("Button")
	r := &Resolver{Host: host}

	v, err := r.Resolve(context.Background(), "ask:Component name")
	require.NoError(t, err)
	assert.Equal(t, "Button", v)

	require.Len(t, host.Calls, 1)
	assert.Equal(t, "input", host.Calls[0].Kind)
	assert.Equal(t, "Component name", host.Calls[0].Message)
}

// TestResolver_AskDismissedIsEmpty tests dismissed ask prompts
func TestResolver_AskDismissedIsEmpty(t *testing.T) {
	host := (&prompttest.Scripted{}).Dismiss()
	r := &Resolver{Host: host}

	v, err := r.Resolve(context.Background(), "ask:Name")
	require.NoError(t, err)
	assert.Equal(t, "", v)
}

// TestResolver_AskRejectsBlank tests blank ask answers
func TestResolver_AskRejectsBlank(t *testing.T) {
	host := prompttest.New("   ")
	r := &Resolver{Host: host}

	_, err := r.Resolve(context.Background(), "ask:Name")
	require.Error(t, err)
	assert.True(t, errors.Is(err, prompt.ErrValueRequired))
}

// TestResolver_AskWithoutHost tests ask variables without a prompt host
func TestResolver_AskWithoutHost(t *testing.T) {
	r := &Resolver{}
	v, err := r.Resolve(context.Background(), "ask:Name")
	require.NoError(t, err)
	assert.Equal(t, "", v)
}

// TestResolver_Display tests display values used by preview
func TestResolver_Display(t *testing.T) {
	host := prompttest.New()
	r := &Resolver{Host: host, Display: true}

	v, err := r.Resolve(context.Background(), "ask:Component name")
	require.NoError(t, err)
	assert.Equal(t, "<Component name>", v)
	assert.Empty(t, host.Calls, "display mode must not prompt")
}

// TestResolver_UnknownDefaultsToEmpty tests unknown variables
func TestResolver_UnknownDefaultsToEmpty(t *testing.T) {
	r := &Resolver{}
	v, err := r.Resolve(context.Background(), "whatever")
	require.NoError(t, err)
	assert.Equal(t, "", v)
}

// TestResolveAll tests resolving a list of variables
func TestResolveAll(t *testing.T) {
	host := prompttest.New("Card")
	r := &Resolver{WorkspaceName: "ws", Host: host, Preset: Values{"ext": "jsx"}}

	values, err := r.ResolveAll(context.Background(), []string{"workspaceName", "ask:Name", "ext", "other"})
	require.NoError(t, err)
	assert.Equal(t, Values{
		"workspaceName": "ws",
		"ask:Name":      "Card",
		"ext":           "jsx",
		"other":         "",
	}, values)
}

// TestResolveAll_HostFailure tests prompt host failures
func TestResolveAll_HostFailure(t *testing.T) {
	r := &Resolver{Host: prompttest.New()}

	_, err := r.ResolveAll(context.Background(), []string{"ask:Name"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"ask:Name"`)
}

// TestResolveAll_Cancelled tests context cancellation
func TestResolveAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&Resolver{}).ResolveAll(ctx, []string{"a"})
	assert.ErrorIs(t, err, context.Canceled)
}
