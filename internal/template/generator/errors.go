package generator

import "fmt"

// GeneratorErrorType categorizes generator errors.
type GeneratorErrorType int

const (
	// GeneratorWriteFailed indicates a storage operation failed.
	GeneratorWriteFailed GeneratorErrorType = iota
	// GeneratorExpandFailed indicates snippet expansion failed.
	GeneratorExpandFailed
	// GeneratorPathError indicates an invalid or unsafe path was produced.
	GeneratorPathError
	// GeneratorPromptFailed indicates the conflict prompt returned an error.
	GeneratorPromptFailed
)

// String returns a short name for the error type.
func (t GeneratorErrorType) String() string {
	switch t {
	case GeneratorWriteFailed:
		return "write failed"
	case GeneratorExpandFailed:
		return "expand failed"
	case GeneratorPathError:
		return "invalid path"
	case GeneratorPromptFailed:
		return "prompt failed"
	default:
		return "unknown"
	}
}

// GeneratorError represents generator-specific errors.
type GeneratorError struct {
	// Type categorizes the error.
	Type GeneratorErrorType
	// Message is the error message.
	Message string
	// File is the target path related to the error (if applicable).
	File string
	// Cause is the underlying error (if any).
	Cause error
}

// Error implements the error interface.
func (e *GeneratorError) Error() string {
	if e.File != "" {
		if e.Cause != nil {
			return fmt.Sprintf("%s (file: %s): %v", e.Message, e.File, e.Cause)
		}
		return fmt.Sprintf("%s (file: %s)", e.Message, e.File)
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}

	return e.Message
}

// Unwrap returns the underlying cause error for error unwrapping.
func (e *GeneratorError) Unwrap() error {
	return e.Cause
}

func newGeneratorError(typ GeneratorErrorType, message, file string, cause error) *GeneratorError {
	return &GeneratorError{
		Type:    typ,
		Message: message,
		File:    file,
		Cause:   cause,
	}
}
