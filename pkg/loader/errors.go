package loader

import (
	stderrors "errors"
	"fmt"

	"chronicle-hq/chronicle/pkg/pdx/ast"
	"chronicle-hq/chronicle/pkg/pdx/errors"
)

// LoadError is a failure to access a document, a mod descriptor or the game
// folder itself, as opposed to a diagnostic raised while reading content.
type LoadError struct {
	// FilePath is the path that failed to load
	FilePath string

	// Message describes the error
	Message string

	// Cause is the underlying error, if any
	Cause error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load %q: %s: %v", e.FilePath, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load %q: %s", e.FilePath, e.Message)
}

// Unwrap implements the errors.Unwrap interface for error chain support.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// asDiagnostic converts a document failure into a typed diagnostic, so that
// every failure lands in LoadResult.Errors with a type and location.
func asDiagnostic(path string, err error) *errors.Error {
	var de *errors.Error
	if stderrors.As(err, &de) {
		return de
	}
	var le *LoadError
	if stderrors.As(err, &le) {
		msg := le.Message
		if le.Cause != nil {
			msg = fmt.Sprintf("%s: %v", msg, le.Cause)
		}
		return errors.New(errors.ErrorTypeIO, ast.Location{File: le.FilePath}, "%s", msg)
	}
	return errors.New(errors.ErrorTypeIO, ast.Location{File: path}, "%v", err)
}
