// Package errors provides a lightweight structured error type (LibForgeError)
// for category-based classification of resolution, toolchain, and build
// execution failures surfaced by the CLI.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory represents the category of a libforge error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Variant resolution errors
	CategoryToolchain ErrorCategory = "toolchain"

	// Build execution errors
	CategoryBuild ErrorCategory = "build"
	CategoryLease ErrorCategory = "lease"
	CategoryState ErrorCategory = "state"

	// Runtime and infrastructure errors
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
)

// LibForgeError is a structured error with category, retryability, and context
type LibForgeError struct {
	Category  ErrorCategory `json:"category"`
	Severity  ErrorSeverity `json:"severity"`
	Message   string        `json:"message"`
	Cause     error         `json:"cause,omitempty"`
	Retryable bool          `json:"retryable"`
	Context   ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for LibForgeError
type ContextFields map[string]any

// Error implements the error interface
func (e *LibForgeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *LibForgeError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *LibForgeError) WithContext(key string, value any) *LibForgeError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new LibForgeError
func New(category ErrorCategory, severity ErrorSeverity, message string) *LibForgeError {
	return &LibForgeError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new LibForgeError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *LibForgeError {
	return &LibForgeError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// WrapRetryable creates a new retryable LibForgeError that wraps an existing error
func WrapRetryable(err error, category ErrorCategory, severity ErrorSeverity, message string) *LibForgeError {
	return &LibForgeError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Cause:     err,
		Retryable: true,
	}
}

// IsCategory checks if an error belongs to a specific category anywhere in its chain.
func IsCategory(err error, category ErrorCategory) bool {
	var lfe *LibForgeError
	if errors.As(err, &lfe) {
		return lfe.Category == category
	}
	return false
}

// IsRetryable checks if an error is retryable
func IsRetryable(err error) bool {
	var lfe *LibForgeError
	if errors.As(err, &lfe) {
		return lfe.Retryable
	}
	return false
}
