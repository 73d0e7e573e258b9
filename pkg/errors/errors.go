// Package errors provides structured error types for the floorslice application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI commands and library packages
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Every error produced while processing a plan falls into one of four
// terminal categories: usage errors (wrong invocation), I/O errors (a path
// cannot be opened or created), parse errors (a line is neither a valid
// operator token nor a valid leaf descriptor), and structural errors (the
// token sequence does not encode a well-formed binary tree). None of them is
// transient; there is no retry policy.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeParse, "line %d: bad leaf descriptor %q", n, line)
//	if errors.Is(err, errors.ErrCodeParse) {
//	    // Handle parse error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "open %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// ErrCodeUsage indicates a wrong argument count or flag combination.
	ErrCodeUsage Code = "USAGE_ERROR"

	// ErrCodeIO indicates an input or output path that cannot be opened.
	ErrCodeIO Code = "IO_ERROR"

	// ErrCodeParse indicates a token that is neither an operator nor a
	// valid leaf descriptor.
	ErrCodeParse Code = "PARSE_ERROR"

	// ErrCodeStructure indicates a token sequence that does not encode a
	// well-formed binary tree: an operator with fewer than two operand
	// subtrees, more than one root after the full input, or empty input.
	ErrCodeStructure Code = "STRUCTURAL_ERROR"

	// ErrCodeInvalidFormat indicates an unsupported render format.
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
