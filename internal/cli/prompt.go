package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"golang.org/x/term"

	"github.com/tacogips/sgmtr/internal/prompt"
)

// surveyHost answers prompts on the terminal.
type surveyHost struct{}

// newHost returns a terminal host when stdin is a terminal, otherwise a host
// that dismisses every prompt.
func newHost() prompt.Host {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return surveyHost{}
	}
	return prompt.Declining{}
}

// Choose implements prompt.Host with a survey select. Ctrl-C dismisses.
func (surveyHost) Choose(ctx context.Context, message string, options []string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	var result string
	p := &survey.Select{
		Message: message,
		Options: options,
	}
	if err := survey.AskOne(p, &result); err != nil {
		return dismissed(err)
	}
	return result, true, nil
}

// InputText implements prompt.Host with a survey input. Ctrl-C dismisses.
func (surveyHost) InputText(ctx context.Context, message string, validate prompt.Validator) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	var result string
	p := &survey.Input{
		Message: message,
	}

	opts := []survey.AskOpt{}
	if validate != nil {
		opts = append(opts, survey.WithValidator(surveyValidator(validate)))
	}

	if err := survey.AskOne(p, &result, opts...); err != nil {
		return dismissed(err)
	}
	return result, true, nil
}

func dismissed(err error) (string, bool, error) {
	if errors.Is(err, terminal.InterruptErr) {
		return "", false, nil
	}
	return "", false, err
}

// surveyValidator adapts a prompt.Validator to survey's answer type.
func surveyValidator(validate prompt.Validator) survey.Validator {
	return func(val interface{}) error {
		str, ok := val.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", val)
		}
		return validate(str)
	}
}

var _ prompt.Host = surveyHost{}
