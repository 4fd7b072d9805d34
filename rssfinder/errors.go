// ABOUTME: Error types and handling for the rss-finder library
// ABOUTME: Classifies engine errors so callers need not import core packages

package rssfinder

import (
	stderrors "errors"
	"fmt"

	"github.com/sgacode/rss-finder/core/errors"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeValidation indicates an invalid URL or option
	ErrorTypeValidation ErrorType = "validation"

	// ErrorTypeParsing indicates a page whose markup could not be parsed
	ErrorTypeParsing ErrorType = "parsing"

	// ErrorTypeConfiguration indicates a bad client option
	ErrorTypeConfiguration ErrorType = "configuration"
)

// Error represents a structured error from the library
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new error with the given type and message
func NewError(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// WithCause adds a cause to the error
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// wrapError classifies engine errors. Context errors pass through so
// errors.Is(err, context.Canceled) keeps working unchanged.
func wrapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.IsValidation(err):
		return NewError(ErrorTypeValidation, "invalid search").WithCause(err)
	case errors.IsParse(err):
		return NewError(ErrorTypeParsing, "page could not be parsed").WithCause(err)
	default:
		return err
	}
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return hasType(err, ErrorTypeValidation)
}

// IsParsingError checks if an error is a parsing error
func IsParsingError(err error) bool {
	return hasType(err, ErrorTypeParsing)
}

// IsConfigurationError checks if an error is a configuration error
func IsConfigurationError(err error) bool {
	return hasType(err, ErrorTypeConfiguration)
}

func hasType(err error, t ErrorType) bool {
	var e *Error
	return stderrors.As(err, &e) && e.Type == t
}
