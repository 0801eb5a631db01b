package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeValidation        ErrorType = "validation"
	ErrorTypeMissingDependency ErrorType = "missing_dependency"
	ErrorTypeMissingInput      ErrorType = "missing_input"
	ErrorTypeUndecryptable     ErrorType = "undecryptable"
	ErrorTypeLibrary           ErrorType = "library"
	ErrorTypeInternal          ErrorType = "internal"
	ErrorTypeNetwork           ErrorType = "network"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

// Error implements the error interface. The result is always a single line.
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Details)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		Details:    detail,
		StatusCode: http.StatusBadRequest,
	}
}

// NewMissingDependencyError reports a capability the process cannot provide
func NewMissingDependencyError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeMissingDependency,
		Message:    message,
		StatusCode: http.StatusServiceUnavailable,
		Cause:      cause,
	}
}

// NewMissingInputError reports a source file that does not exist
func NewMissingInputError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeMissingInput,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewUndecryptableError reports a document none of the empty passwords could open
func NewUndecryptableError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeUndecryptable,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      cause,
	}
}

// NewLibraryError wraps a failure raised by the PDF library
func NewLibraryError(message string, cause error) *AppError {
	details := ""
	if cause != nil {
		details = cause.Error()
	}
	return &AppError{
		Type:       ErrorTypeLibrary,
		Message:    message,
		Details:    details,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewInternalError creates a new internal server error
func NewInternalError(message string, cause error) *AppError {
	details := ""
	if cause != nil {
		details = cause.Error()
	}
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		Details:    details,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewNetworkError creates a new network error
func NewNetworkError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeNetwork,
		Message:    message,
		StatusCode: http.StatusServiceUnavailable,
		Cause:      cause,
	}
}

// IsType checks if the error, or any error it wraps, is of a specific type
func IsType(err error, errorType ErrorType) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// GetStatusCode returns the HTTP status code for an error
func GetStatusCode(err error) int {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
