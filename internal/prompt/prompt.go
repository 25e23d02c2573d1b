// Package prompt defines the interactive capability the generator core
// suspends on: choosing between options and entering text.
package prompt

import (
	"context"
	"errors"
	"strings"
)

// Validator checks an entered value; a non-nil error rejects it.
type Validator func(value string) error

// Host asks the user for input. ok is false when the prompt was dismissed.
// A dismissed prompt is not an error.
type Host interface {
	// Choose presents options and returns the selected one.
	Choose(ctx context.Context, message string, options []string) (selection string, ok bool, err error)

	// InputText asks for free text. validate may be nil.
	InputText(ctx context.Context, message string, validate Validator) (text string, ok bool, err error)
}

// Declining is a Host for non-interactive runs: every prompt is dismissed.
type Declining struct{}

// Choose always reports a dismissed prompt.
func (Declining) Choose(ctx context.Context, message string, options []string) (string, bool, error) {
	return "", false, ctx.Err()
}

// InputText always reports a dismissed prompt.
func (Declining) InputText(ctx context.Context, message string, validate Validator) (string, bool, error) {
	return "", false, ctx.Err()
}

// ErrValueRequired is returned by Required for blank input.
var ErrValueRequired = errors.New("value required")

// Required rejects blank input.
func Required(value string) error {
	if strings.TrimSpace(value) == "" {
		return ErrValueRequired
	}
	return nil
}
