// Package prompttest provides a deterministic prompt.Host for tests.
package prompttest

import (
	"context"
	"fmt"

	"github.com/tacogips/sgmtr/internal/prompt"
)

// Answer is one scripted response. Dismissed answers report ok=false.
type Answer struct {
	Value     string
	Dismissed bool
}

// Call records a prompt that was shown.
type Call struct {
	Kind    string // "choose" or "input"
	Message string
	Options []string
}

// Scripted replays queued answers in order and records every prompt.
// Running out of answers is reported as an error.
type Scripted struct {
	Answers []Answer
	Calls   []Call
}

// New creates a Scripted host answering with the given values.
func New(values ...string) *Scripted {
	s := &Scripted{}
	for _, v := range values {
		s.Answers = append(s.Answers, Answer{Value: v})
	}
	return s
}

// Dismiss appends a dismissed answer.
func (s *Scripted) Dismiss() *Scripted {
	s.Answers = append(s.Answers, Answer{Dismissed: true})
	return s
}

// Choose implements prompt.Host.
func (s *Scripted) Choose(ctx context.Context, message string, options []string) (string, bool, error) {
	s.Calls = append(s.Calls, Call{Kind: "choose", Message: message, Options: options})
	a, err := s.next()
	if err != nil || a.Dismissed {
		return "", false, err
	}
	for _, o := range options {
		if o == a.Value {
			return a.Value, true, nil
		}
	}
	return "", false, fmt.Errorf("scripted answer %q is not one of %v", a.Value, options)
}

// InputText implements prompt.Host. The validator runs on the scripted value.
func (s *Scripted) InputText(ctx context.Context, message string, validate prompt.Validator) (string, bool, error) {
	s.Calls = append(s.Calls, Call{Kind: "input", Message: message})
	a, err := s.next()
	if err != nil || a.Dismissed {
		return "", false, err
	}
	if validate != nil {
		if err := validate(a.Value); err != nil {
			return "", false, fmt.Errorf("scripted answer %q rejected: %w", a.Value, err)
		}
	}
	return a.Value, true, nil
}

func (s *Scripted) next() (Answer, error) {
	if len(s.Answers) == 0 {
		return Answer{}, fmt.Errorf("no scripted answer left")
	}
	a := s.Answers[0]
	s.Answers = s.Answers[1:]
	return a, nil
}

var _ prompt.Host = (*Scripted)(nil)
