// Package errors provides structured error types for qrtile.
//
// Every failure the renderer can produce is a deterministic function of its
// input, so errors carry a machine-readable [Code] that callers (the CLI and
// the HTTP server) map to exit statuses and response codes without parsing
// messages.
//
// # Error Codes
//
//   - INVALID_*: input validation failures (geometry, grid, color, level)
//   - PRECONDITION_VIOLATION: inconsistent data passed between components;
//     a programming error, never produced by a validated configuration
//   - UNSUPPORTED_*: selectors outside a closed enumeration
//   - INTERNAL_ERROR: unexpected internal failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidGeometry, "width must be positive, got %v", w)
//	if errors.Is(err, errors.ErrCodeInvalidGeometry) {
//	    // reject the request
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInternal, origErr, "encode png")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidGeometry Code = "INVALID_GEOMETRY"
	ErrCodeInvalidGrid     Code = "INVALID_GRID"
	ErrCodeInvalidColor    Code = "INVALID_COLOR"
	ErrCodeInvalidLevel    Code = "INVALID_LEVEL"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// Programming errors between components
	ErrCodePreconditionViolation Code = "PRECONDITION_VIOLATION"

	// Closed enumerations
	ErrCodeUnsupportedBackend Code = "UNSUPPORTED_BACKEND"
	ErrCodeUnsupported        Code = "UNSUPPORTED"

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

// IsClientError reports whether err was caused by caller input rather than
// by a defect or an environment failure.
func IsClientError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidGeometry, ErrCodeInvalidGrid,
		ErrCodeInvalidColor, ErrCodeInvalidLevel, ErrCodeInvalidFormat,
		ErrCodeInvalidConfig, ErrCodeInvalidPath, ErrCodeUnsupportedBackend,
		ErrCodeUnsupported:
		return true
	}
	return false
}
