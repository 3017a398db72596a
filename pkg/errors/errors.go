// Package errors provides structured error types for rosview.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the HTTP API
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes name the failure category rather than the failing component:
//   - FILE_NOT_FOUND: a source or layout file does not exist
//   - INVALID_*: malformed input, settings or names
//   - UNKNOWN_PATH: a requested named path is absent from the source
//   - INCONSISTENT: metadata does not match the graph it describes
//   - DEPENDENCY_UNAVAILABLE: the layout backend cannot run
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownPath, "path %q not found", name)
//	if errors.Is(err, errors.ErrCodeUnknownPath) {
//	    // Report and keep the previous graph
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "parse %s", path)
package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input errors
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidSetting Code = "INVALID_SETTING"
	ErrCodeInvalidName    Code = "INVALID_NAME"

	// Lookup errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeUnknownPath  Code = "UNKNOWN_PATH"
	ErrCodeUnknownNode  Code = "UNKNOWN_NODE"
	ErrCodeInconsistent Code = "INCONSISTENT"

	// Environment errors
	ErrCodeDependencyUnavailable Code = "DEPENDENCY_UNAVAILABLE"
	ErrCodeUnsupported           Code = "UNSUPPORTED"

	// Internal errors
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

// WrapRead wraps a file read failure, classifying a missing file as
// ErrCodeFileNotFound and anything else as ErrCodeInternal.
func WrapRead(err error, path string) *Error {
	if errors.Is(err, fs.ErrNotExist) {
		return Wrap(ErrCodeFileNotFound, err, "file not found: %s", path)
	}
	return Wrap(ErrCodeInternal, err, "read %s", path)
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
