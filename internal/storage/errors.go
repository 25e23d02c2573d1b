package storage

import (
	"errors"
	"fmt"
	"io/fs"
)

// Error reports a failed storage operation.
type Error struct {
	// Op is the backend operation (stat, readdir, mkdir, read, write).
	Op string
	// Path is the path the operation was applied to.
	Path string
	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Cause)
}

// Unwrap returns the underlying cause error for error unwrapping.
func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(op, path string, cause error) *Error {
	return &Error{Op: op, Path: path, Cause: cause}
}

// IsNotExist reports whether err means the path does not exist.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
