// Package apperrors provides typed error handling for the arcview application.
// It uses struct-based errors with separate user-safe and internal messages.
package apperrors

import "fmt"

// Code categorizes errors for consistent handling across the application.
type Code int

// Error codes for categorizing application errors.
const (
	// CodeUnknown indicates an unspecified error type
	CodeUnknown Code = iota
	// CodeNotFound indicates a requested resource does not exist
	CodeNotFound
	// CodeInvalidInput indicates malformed or invalid input
	CodeInvalidInput
	// CodeConfig indicates an invalid configuration value
	CodeConfig
	// CodeInstancePath indicates the instance directory could not be prepared
	CodeInstancePath
	// CodeTemplate indicates a template could not be loaded or executed
	CodeTemplate
)

// Error represents a domain error with separate user-safe and internal messages.
// The Message field is always safe to expose to clients.
// The Internal field contains debugging details and should only be logged.
type Error struct {
	Code     Code   // Error category for handler mapping
	Message  string // User-safe message (always exposable)
	Internal string // Internal details (for logging only)
	Field    string // Optional: which field caused the error
	Err      error  // Wrapped underlying error
}

// Error implements the error interface.
// Returns the user-safe message.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithInternal adds internal debugging details to the error.
func (e *Error) WithInternal(format string, args ...any) *Error {
	e.Internal = fmt.Sprintf(format, args...)
	return e
}

// Wrap wraps an underlying error.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

// String returns the string representation of the error code.
func (c Code) String() string {
	switch c {
	case CodeUnknown:
		return "unknown"
	case CodeNotFound:
		return "not_found"
	case CodeInvalidInput:
		return "invalid_input"
	case CodeConfig:
		return "config"
	case CodeInstancePath:
		return "instance_path"
	case CodeTemplate:
		return "template"
	default:
		return fmt.Sprintf("unknown_code_%d", c)
	}
}

// Is reports whether target matches this error's code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// Sentinels for errors.Is checks against a code.
var (
	ErrConfig       = &Error{Code: CodeConfig}
	ErrInstancePath = &Error{Code: CodeInstancePath}
	ErrTemplate     = &Error{Code: CodeTemplate}
)

// NotFound creates a new not found error with the given message.
func NotFound(message string) *Error {
	return &Error{
		Code:    CodeNotFound,
		Message: message,
	}
}

// InvalidInput creates a new invalid input error with the given message.
func InvalidInput(message string) *Error {
	return &Error{
		Code:    CodeInvalidInput,
		Message: message,
	}
}

// Config creates a new configuration error for the named field.
func Config(field, message string) *Error {
	return &Error{
		Code:    CodeConfig,
		Message: message,
		Field:   field,
	}
}

// InstancePath creates a new instance directory error with the given message.
func InstancePath(message string) *Error {
	return &Error{
		Code:    CodeInstancePath,
		Message: message,
	}
}

// Template creates a new template error with the given message.
func Template(message string) *Error {
	return &Error{
		Code:    CodeTemplate,
		Message: message,
	}
}

// CodeOf returns the code of the first *Error in err's chain, or CodeUnknown.
func CodeOf(err error) Code {
	var e *Error
	if As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}
