package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"chronicle-hq/chronicle/pkg/pdx/ast"
)

// ErrorType categorizes a diagnostic raised while reading or linking documents.
type ErrorType string

const (
	ErrorTypeSyntax              ErrorType = "syntax"               // Unbalanced brackets, missing operator
	ErrorTypeMalformedScalar     ErrorType = "malformed_scalar"     // Numeric or date literal fails to convert
	ErrorTypeUnknownReference    ErrorType = "unknown_reference"    // Cross-reference id has no registry entry
	ErrorTypeUnresolvedAdjacency ErrorType = "unresolved_adjacency" // Adjacency endpoint is not a known province
	ErrorTypeDuplicateOverwrite  ErrorType = "duplicate_overwrite"  // A later document replaced an entity
	ErrorTypeIO                  ErrorType = "io"                   // File I/O error
)

// Fatal reports whether an error of this type aborts the document it occurs in.
// The remaining types are recorded and the pass continues.
func (t ErrorType) Fatal() bool {
	switch t {
	case ErrorTypeSyntax, ErrorTypeMalformedScalar, ErrorTypeIO:
		return true
	default:
		return false
	}
}

// Error is a diagnostic with location, the offending tag and raw text, and
// optional source context and suggestion.
type Error struct {
	Type       ErrorType    // Category of error
	Message    string       // Error message
	Location   ast.Location // Source location (file, line, column)
	Tag        string       // Key the error was raised under, if any
	Raw        string       // Raw token text, if any
	Context    string       // Surrounding source lines
	Suggestion string       // Suggested fix (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "[%s] %s\n", e.Type, e.Message)

	if e.Location.IsValid() {
		fmt.Fprintf(&sb, "  --> %s\n", e.Location.String())
	}

	if e.Context != "" {
		sb.WriteString("  |\n")
		sb.WriteString(e.Context)
		sb.WriteString("  |\n")
	}

	if e.Suggestion != "" {
		fmt.Fprintf(&sb, "  = suggestion: %s\n", e.Suggestion)
	}

	return sb.String()
}

// Summary returns a single-line rendering used for diagnostic listings.
func (e *Error) Summary() string {
	var sb strings.Builder
	if e.Location.IsValid() {
		sb.WriteString(e.Location.String())
		sb.WriteString(": ")
	}
	fmt.Fprintf(&sb, "[%s] %s", e.Type, e.Message)
	if e.Suggestion != "" {
		sb.WriteString(" (")
		sb.WriteString(e.Suggestion)
		sb.WriteString(")")
	}
	return sb.String()
}

// New creates an error of the given type.
func New(errType ErrorType, loc ast.Location, format string, args ...any) *Error {
	return &Error{
		Type:     errType,
		Message:  fmt.Sprintf(format, args...),
		Location: loc,
	}
}

// MalformedScalar creates an error for a literal that failed to convert.
func MalformedScalar(loc ast.Location, tag, raw string, cause error) *Error {
	msg := fmt.Sprintf("malformed value %q for %q", raw, tag)
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, cause)
	}
	return &Error{
		Type:     ErrorTypeMalformedScalar,
		Message:  msg,
		Location: loc,
		Tag:      tag,
		Raw:      raw,
	}
}

// IsType reports whether err is, or wraps, an *Error of the given type.
func IsType(err error, errType ErrorType) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type == errType
	}
	var list *ErrorList
	if stderrors.As(err, &list) {
		return list.HasErrorType(errType)
	}
	return false
}

// ErrorList accumulates diagnostics instead of failing on the first one.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList creates a new empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{
		Errors: make([]*Error, 0),
	}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	el.Errors = append(el.Errors, err)
}

// AddError creates and adds a new error.
func (el *ErrorList) AddError(errType ErrorType, message string, location ast.Location) {
	el.Add(&Error{
		Type:     errType,
		Message:  message,
		Location: location,
	})
}

// Merge appends every error of other.
func (el *ErrorList) Merge(other []*Error) {
	el.Errors = append(el.Errors, other...)
}

// HasErrors returns true if the list contains any errors.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// Count returns the number of errors in the list.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// Error implements the error interface.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d error(s):\n\n", el.Count())

	for i, err := range el.Errors {
		fmt.Fprintf(&sb, "Error %d:\n", i+1)
		sb.WriteString(err.Error())
		sb.WriteString("\n")
	}

	return sb.String()
}

// ToError returns nil if the list is empty, otherwise the list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

// Strings returns one summary line per error, in insertion order.
func (el *ErrorList) Strings() []string {
	out := make([]string, 0, len(el.Errors))
	for _, err := range el.Errors {
		out = append(out, err.Summary())
	}
	return out
}

// ByType returns all errors of the given type.
func (el *ErrorList) ByType(errType ErrorType) []*Error {
	var result []*Error
	for _, err := range el.Errors {
		if err.Type == errType {
			result = append(result, err)
		}
	}
	return result
}

// HasErrorType returns true if the list contains at least one error of the given type.
func (el *ErrorList) HasErrorType(errType ErrorType) bool {
	for _, err := range el.Errors {
		if err.Type == errType {
			return true
		}
	}
	return false
}

// CountByType returns the number of errors per type.
func (el *ErrorList) CountByType() map[ErrorType]int {
	counts := make(map[ErrorType]int)
	for _, err := range el.Errors {
		counts[err.Type]++
	}
	return counts
}
