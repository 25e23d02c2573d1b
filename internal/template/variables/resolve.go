package variables

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tacogips/sgmtr/internal/debug"
	"github.com/tacogips/sgmtr/internal/prompt"
)

// Resolver turns variable names into values.
//
// Resolution order: built-ins (workspaceName, date, time), preset values,
// interactive ask:<question> prompts, and finally the empty string.
type Resolver struct {
	// WorkspaceName is the value of ${workspaceName}.
	WorkspaceName string
	// Preset holds values supplied up front (e.g. from a vars file).
	Preset Values
	// Host answers ask:<question> variables. Nil behaves like a dismissed prompt.
	Host prompt.Host
	// Display resolves ask:<question> to "<question>" without prompting.
	Display bool
	// Now returns the current time; nil means time.Now.
	Now func() time.Time
}

// Resolve returns the value for a single variable name.
// A dismissed prompt yields the empty string; only host failures are errors.
func (r *Resolver) Resolve(ctx context.Context, name string) (string, error) {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}

	switch name {
	case WorkspaceName:
		return r.WorkspaceName, nil
	case Date:
		return now().UTC().Format("2006-01-02"), nil
	case Time:
		return now().UTC().Format("15:04:05"), nil
	}

	if v, ok := r.Preset[name]; ok {
		debug.Debug("[variables] %s: using preset value", name)
		return v, nil
	}

	if question, ok := strings.CutPrefix(name, AskPrefix); ok {
		if r.Display {
			return "<" + question + ">", nil
		}
		if r.Host == nil {
			debug.Debug("[variables] %s: no prompt host, using empty value", name)
			return "", nil
		}
		answer, ok, err := r.Host.InputText(ctx, question, prompt.Required)
		if err != nil {
			return "", err
		}
		if !ok {
			debug.Debug("[variables] %s: prompt dismissed, using empty value", name)
			return "", nil
		}
		return answer, nil
	}

	debug.Debug("[variables] %s: unknown variable, using empty value", name)
	return "", nil
}

// ResolveAll resolves every name in order. Prompts are shown one at a time.
func (r *Resolver) ResolveAll(ctx context.Context, names []string) (Values, error) {
	values := make(Values, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		v, err := r.Resolve(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve variable %q: %w", name, err)
		}
		values[name] = v
	}
	return values, nil
}
