package dsl

import "fmt"

// ParseErrorType categorizes DSL parse errors.
type ParseErrorType int

const (
	// InvalidSyntax indicates the text is not well-formed JSON or YAML.
	InvalidSyntax ParseErrorType = iota
	// InvalidStructure indicates well-formed text that is not a folder tree
	// (non-object root, arrays, numbers, booleans or null values).
	InvalidStructure
	// TrailingData indicates extra content after the top-level object.
	TrailingData
)

// ParseError reports malformed DSL text.
type ParseError struct {
	// Type categorizes the error.
	Type ParseErrorType
	// Message is the error message.
	Message string
	// File is the DSL file path (if known).
	File string
	// Path is the slash-separated key path where the error occurred.
	Path string
	// Offset is the byte offset in the parsed text (-1 if unknown).
	Offset int64
	// Cause is the underlying decoder error (if any).
	Cause error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s (at %q)", msg, e.Path)
	}
	if e.Offset >= 0 {
		msg = fmt.Sprintf("%s [offset %d]", msg, e.Offset)
	}
	if e.File != "" {
		msg = fmt.Sprintf("%s: %s", e.File, msg)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

func newParseError(typ ParseErrorType, message, path string, offset int64, cause error) *ParseError {
	return &ParseError{
		Type:    typ,
		Message: message,
		Path:    path,
		Offset:  offset,
		Cause:   cause,
	}
}
