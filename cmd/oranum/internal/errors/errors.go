// Package errors provides the error kinds raised by configuration, numeric
// conversion and column mapping. Every error carries an ErrorCode so callers
// can tell a bad setting from two settings that disagree, and both from a
// value that cannot be converted under the configured policy.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/thalib/oranum/cmd/oranum/internal/constants"
)

// ErrorCode represents a standard error code
type ErrorCode string

const (
	// Configuration errors
	CodeInvalidInput             ErrorCode = "INVALID_INPUT"
	CodeConflictingConfiguration ErrorCode = "CONFLICTING_CONFIGURATION"

	// Conversion errors
	CodeConversionInexact ErrorCode = "CONVERSION_INEXACT"
	CodeExceedsLimits     ErrorCode = "EXCEEDS_LIMITS"
	CodeUnsupportedType   ErrorCode = "UNSUPPORTED_TYPE"

	// Database errors
	CodeDatabaseError     ErrorCode = "DATABASE_ERROR"
	CodeConnectionFailed  ErrorCode = "CONNECTION_FAILED"
	CodeObjectNotFound    ErrorCode = "OBJECT_NOT_FOUND"
	CodeInvalidIdentifier ErrorCode = "INVALID_IDENTIFIER"
)

// Sentinels for errors.Is. Any *Error with the same code matches.
var (
	ErrInvalidInput             = &Error{ErrorCode: CodeInvalidInput, Message: "invalid input"}
	ErrConflictingConfiguration = &Error{ErrorCode: CodeConflictingConfiguration, Message: "conflicting configuration"}
	ErrConversionInexact        = &Error{ErrorCode: CodeConversionInexact, Message: "rounding necessary"}
	ErrExceedsLimits            = &Error{ErrorCode: CodeExceedsLimits, Message: "value exceeds type limits"}
	ErrUnsupportedType          = &Error{ErrorCode: CodeUnsupportedType, Message: "unsupported type"}
	ErrDatabase                 = &Error{ErrorCode: CodeDatabaseError, Message: "database error"}
	ErrConnectionFailed         = &Error{ErrorCode: CodeConnectionFailed, Message: "connection failed"}
	ErrObjectNotFound           = &Error{ErrorCode: CodeObjectNotFound, Message: "object not found"}
	ErrInvalidIdentifier        = &Error{ErrorCode: CodeInvalidIdentifier, Message: "invalid identifier"}
)

// Error represents an application error
type Error struct {
	Message   string
	ErrorCode ErrorCode
	Details   map[string]any
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.ErrorCode == t.ErrorCode
}

// WithDetails adds details to the error
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// Wrap wraps an error with additional context
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

// New creates a new error with the given code
func New(code ErrorCode, message string) *Error {
	return &Error{
		Message:   message,
		ErrorCode: code,
	}
}

// Newf creates a new error with a formatted message
func Newf(code ErrorCode, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// NewInvalidInputError reports a single setting outside its declared domain.
func NewInvalidInputError(field string, value any, reason string) *Error {
	return Newf(CodeInvalidInput, "invalid value %v for %s: %s", value, field, reason).
		WithDetails(map[string]any{"field": field, "value": value})
}

// NewConflictingConfigurationError reports two settings that disagree.
func NewConflictingConfigurationError(message string, fields ...string) *Error {
	return New(CodeConflictingConfiguration, message).
		WithDetails(map[string]any{"fields": fields})
}

// NewConversionInexactError reports a value that needs rounding under a
// rounding mode that forbids it.
func NewConversionInexactError(value string, scale int) *Error {
	return Newf(CodeConversionInexact, "rounding necessary to fit %s into scale %d", value, scale).
		WithDetails(map[string]any{"value": value, "scale": scale})
}

// NewExceedsLimitsError reports a value or column wider than the host type.
func NewExceedsLimitsError(message string) *Error {
	return New(CodeExceedsLimits, message)
}

// NewUnsupportedTypeError reports a column whose type cannot be mapped.
func NewUnsupportedTypeError(column, dataType string) *Error {
	return Newf(CodeUnsupportedType, "unsupported type %s for column %s", dataType, column).
		WithDetails(map[string]any{"column": column, "data_type": dataType})
}

// NewDatabaseError wraps a driver error
func NewDatabaseError(err error) *Error {
	return New(CodeDatabaseError, "database error").Wrap(err)
}

// CodeOf returns the code of the first *Error in err's chain, or "" if none.
func CodeOf(err error) ErrorCode {
	var e *Error
	if stderrors.As(err, &e) {
		return e.ErrorCode
	}
	return ""
}

// IsConnectionError reports whether a driver error looks like a network or
// listener failure rather than a rejected login.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()

	if containsAny(errStr, constants.CredentialErrorPatterns) {
		return false
	}
	return containsAny(errStr, constants.ConnectionErrorPatterns)
}

// containsAny checks if any of the patterns in the slice are in the string
func containsAny(s string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(s, pattern) {
			return true
		}
	}
	return false
}
