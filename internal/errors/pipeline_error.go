// Package errors provides standardized error types for pipeline operations.
// This package defines PipelineError for consistent error handling across
// loaders, transforms and writers, with operation context and error wrapping
// support.
package errors

import (
	"fmt"
)

// PipelineError represents standardized errors across all pipeline operations
type PipelineError struct {
	Op      string // Operation name (e.g., "ReadWide", "ParseScaledNumber", "Finalize")
	Source  string // Input or output the operation was working on, if any
	Column  string // Column name if applicable
	Message string // Human-readable error description
	Cause   error  // Underlying error cause
}

// Error implements the error interface
func (e *PipelineError) Error() string {
	msg := e.Op + " operation failed"
	if e.Source != "" {
		msg += fmt.Sprintf(" in '%s'", e.Source)
	}
	if e.Column != "" {
		msg += fmt.Sprintf(" on column '%s'", e.Column)
	}
	msg += ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error wrapping support
func (e *PipelineError) Unwrap() error {
	return e.Cause
}

// Is implements error equality checking for errors.Is()
func (e *PipelineError) Is(target error) bool {
	if pe, ok := target.(*PipelineError); ok {
		return e.Op == pe.Op && e.Column == pe.Column && e.Message == pe.Message
	}
	return false
}

// WithSource returns a copy of the error annotated with the input it came from.
func (e *PipelineError) WithSource(source string) *PipelineError {
	cp := *e
	cp.Source = source
	return &cp
}

// NewColumnNotFoundError creates an error for a required column missing from an input
func NewColumnNotFoundError(op, column string) *PipelineError {
	return &PipelineError{
		Op:      op,
		Column:  column,
		Message: "column does not exist",
	}
}

// NewParseError creates an error for a value that cannot be converted
func NewParseError(op, value string, cause error) *PipelineError {
	return &PipelineError{
		Op:      op,
		Message: fmt.Sprintf("cannot parse %q", value),
		Cause:   cause,
	}
}

// NewInvalidInputError creates an error for invalid operation inputs
func NewInvalidInputError(op, message string) *PipelineError {
	return &PipelineError{
		Op:      op,
		Message: message,
	}
}

// NewValidationError creates an error for input validation failures
func NewValidationError(op, column, message string) *PipelineError {
	return &PipelineError{
		Op:      op,
		Column:  column,
		Message: message,
	}
}

// NewIOError creates an error for a failed read or write of a named source
func NewIOError(op, source string, cause error) *PipelineError {
	return &PipelineError{
		Op:      op,
		Source:  source,
		Message: "i/o failure",
		Cause:   cause,
	}
}

// Predefined error variables for common cases
var (
	// ErrEmptyInput indicates an input with a header but no usable rows
	ErrEmptyInput = &PipelineError{
		Op:      "validation",
		Message: "input has no rows",
	}

	// ErrMissingHeader indicates an input without a header row
	ErrMissingHeader = &PipelineError{
		Op:      "validation",
		Message: "input has no header row",
	}
)
