// Package errors provides a lightweight structured error type (InformerError)
// for category-based classification and retry semantics in HTTP adapters and CLI.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of an Informer error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Source ingestion and external system errors
	CategoryIngest  ErrorCategory = "ingest"
	CategoryNetwork ErrorCategory = "network"
	CategoryPayment ErrorCategory = "payment"

	// Generation and publishing errors
	CategorySlug       ErrorCategory = "slug"
	CategoryRender     ErrorCategory = "render"
	CategoryPublish    ErrorCategory = "publish"
	CategoryFileSystem ErrorCategory = "filesystem"

	// Runtime and infrastructure errors
	CategoryStorage  ErrorCategory = "storage"
	CategoryRuntime  ErrorCategory = "runtime"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// InformerError is a structured error with category, retryability, and context
type InformerError struct {
	Category  ErrorCategory `json:"category"`
	Severity  ErrorSeverity `json:"severity"`
	Message   string        `json:"message"`
	Cause     error         `json:"cause,omitempty"`
	Retryable bool          `json:"retryable"`
	Context   ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for InformerError
type ContextFields map[string]any

// Error implements the error interface
func (e *InformerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *InformerError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *InformerError) WithContext(key string, value any) *InformerError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new InformerError
func New(category ErrorCategory, severity ErrorSeverity, message string) *InformerError {
	return &InformerError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Retryable: false,
	}
}

// Wrap creates a new InformerError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *InformerError {
	return &InformerError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Cause:     err,
		Retryable: false,
	}
}

// WrapRetryable creates a new retryable InformerError that wraps an existing error
func WrapRetryable(err error, category ErrorCategory, severity ErrorSeverity, message string) *InformerError {
	return &InformerError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Cause:     err,
		Retryable: true,
	}
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if ie, ok := err.(*InformerError); ok {
		return ie.Category == category
	}
	return false
}

// IsRetryable checks if an error is retryable
func IsRetryable(err error) bool {
	if ie, ok := err.(*InformerError); ok {
		return ie.Retryable
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not an InformerError
func GetCategory(err error) ErrorCategory {
	if ie, ok := err.(*InformerError); ok {
		return ie.Category
	}
	return CategoryInternal
}

// ValidationError creates a new validation error (400 Bad Request)
func ValidationError(message string) *InformerError {
	return &InformerError{
		Category:  CategoryValidation,
		Severity:  SeverityWarning,
		Message:   message,
		Retryable: false,
	}
}

// WrapError wraps an existing error with a new InformerError
func WrapError(err error, category ErrorCategory, message string) *InformerError {
	return &InformerError{
		Category:  category,
		Severity:  SeverityError,
		Message:   message,
		Cause:     err,
		Retryable: false,
	}
}
