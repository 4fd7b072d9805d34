// ABOUTME: Custom error types for the feed discovery core
// ABOUTME: Separates fetch failures, unrecoverable markup failures, and bad arguments

package errors

import (
	"errors"
	"fmt"
)

// FetchError represents any failure to retrieve a URL: connection errors,
// deadline expiry, unreadable or undecodable bodies. Callers never need to
// tell these apart.
type FetchError struct {
	URL   string
	Cause error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("fetch %s failed", e.URL)
	}
	return fmt.Sprintf("fetch %s failed: %v", e.URL, e.Cause)
}

// Unwrap returns the underlying cause
func (e *FetchError) Unwrap() error {
	return e.Cause
}

// ParseError represents an HTML document that could not be parsed at all
type ParseError struct {
	URL   string
	Cause error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	target := e.URL
	if target == "" {
		target = "document"
	}
	if e.Cause == nil {
		return fmt.Sprintf("parse %s failed", target)
	}
	return fmt.Sprintf("parse %s failed: %v", target, e.Cause)
}

// Unwrap returns the underlying cause
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// IsFetch checks if an error is a FetchError
func IsFetch(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr)
}

// IsParse checks if an error is a ParseError
func IsParse(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
