package app

import "fmt"

// AppErrorType represents the type of application error.
type AppErrorType int

const (
	// ParseFailed indicates a DSL document could not be parsed.
	ParseFailed AppErrorType = iota
	// StorageFailed indicates a storage backend operation failed.
	StorageFailed
	// NotFound indicates the workspace or an input does not exist.
	NotFound
	// EmptyResult indicates there was nothing to choose from.
	EmptyResult
	// ValidationFailed indicates invalid options or input.
	ValidationFailed
	// VariableResolveFailed indicates a variable could not be resolved.
	VariableResolveFailed
)

// String returns a short name for the error type.
func (t AppErrorType) String() string {
	switch t {
	case ParseFailed:
		return "parse error"
	case StorageFailed:
		return "storage error"
	case NotFound:
		return "not found"
	case EmptyResult:
		return "empty result"
	case ValidationFailed:
		return "validation error"
	case VariableResolveFailed:
		return "variable error"
	default:
		return "error"
	}
}

// AppError represents an application-layer error.
type AppError struct {
	// Type is the error type.
	Type AppErrorType
	// Message is the error message.
	Message string
	// Cause is the underlying error.
	Cause error
}

// Error returns the error message.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new AppError.
func NewAppError(errType AppErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// NewParseError creates a parse error.
func NewParseError(message string, cause error) *AppError {
	return NewAppError(ParseFailed, message, cause)
}

// NewStorageError creates a storage error.
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(StorageFailed, message, cause)
}

// NewNotFoundError creates a not-found error.
func NewNotFoundError(message string, cause error) *AppError {
	return NewAppError(NotFound, message, cause)
}

// NewEmptyResultError creates an empty-result error.
func NewEmptyResultError(message string) *AppError {
	return NewAppError(EmptyResult, message, nil)
}

// NewValidationError creates a validation error.
func NewValidationError(message string, cause error) *AppError {
	return NewAppError(ValidationFailed, message, cause)
}

// NewVariableResolveError creates a variable resolution error.
func NewVariableResolveError(message string, cause error) *AppError {
	return NewAppError(VariableResolveFailed, message, cause)
}
