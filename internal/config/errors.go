package config

import (
	"fmt"
	"strings"
)

// ConfigErrorType represents the type of configuration error.
type ConfigErrorType int

const (
	// ConfigNotFound indicates the configuration file was not found.
	ConfigNotFound ConfigErrorType = iota
	// ConfigInvalid indicates the file could not be read or is not valid JSON.
	ConfigInvalid
	// ConfigValidationFailed indicates a field value is not allowed.
	ConfigValidationFailed
	// ConfigWriteFailed indicates the configuration could not be saved.
	ConfigWriteFailed
)

// String returns a short name for the error type.
func (t ConfigErrorType) String() string {
	switch t {
	case ConfigNotFound:
		return "not found"
	case ConfigInvalid:
		return "invalid"
	case ConfigValidationFailed:
		return "validation failed"
	case ConfigWriteFailed:
		return "write failed"
	default:
		return "error"
	}
}

// ConfigError represents a configuration-related error.
type ConfigError struct {
	// Type is the error type.
	Type ConfigErrorType
	// Message is the error message.
	Message string
	// File is the configuration file path. Empty for in-memory checks.
	File string
	// Field is the JSON path of the offending field, e.g. "generate.on_conflict".
	Field string
	// Cause is the underlying error if any.
	Cause error
}

// Error renders "config <file> [<field>]: <message>: <cause>", leaving out
// the parts that are not set.
func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("config")
	if e.File != "" {
		b.WriteString(" " + e.File)
	}
	if e.Field != "" {
		b.WriteString(" [" + e.Field + "]")
	}
	b.WriteString(": " + e.Message)
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

// Unwrap returns the underlying cause error.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// NewConfigError creates a ConfigError. cause may be nil.
func NewConfigError(typ ConfigErrorType, file, message string, cause error) *ConfigError {
	return &ConfigError{
		Type:    typ,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// newFieldError reports a validation failure of one field.
func newFieldError(field, message string) *ConfigError {
	return &ConfigError{
		Type:    ConfigValidationFailed,
		Field:   field,
		Message: message,
	}
}
