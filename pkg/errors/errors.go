package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the broad category of an error
type ErrorType string

const (
	// Local geometric errors, raised before any network call
	ErrorTypeGeometry ErrorType = "GEOMETRY"

	// Bad arguments to an operation
	ErrorTypeParameter ErrorType = "PARAMETER"

	// Query resolution errors, e.g. an extrude whose face query is empty
	ErrorTypeQuery ErrorType = "QUERY"

	// Errors reported by the remote modeling service
	ErrorTypeRemote ErrorType = "REMOTE"

	// Transport-level failures reaching the remote service
	ErrorTypeNetwork ErrorType = "NETWORK"

	// Credential / authentication failures
	ErrorTypeAuth ErrorType = "AUTH"

	// Everything else
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// Codes narrow a type down to the specific contract violation.
const (
	CodeParallelLines      = "PARALLEL_LINES"
	CodeZeroVector         = "ZERO_VECTOR"
	CodeInvalidFillet      = "INVALID_FILLET"
	CodeDegenerateGeometry = "DEGENERATE_GEOMETRY"
	CodeEmptyQuery         = "EMPTY_QUERY"
	CodeLoftMismatch       = "LOFT_MISMATCH"
)

// AppError is the error value used throughout partforge
type AppError struct {
	Type    ErrorType              `json:"type"`
	Message string                 `json:"message"`
	Code    string                 `json:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`

	// StatusCode and Body are set on remote errors only. Body carries the
	// service's response verbatim; partforge never rewrites it.
	StatusCode int    `json:"-"`
	Body       string `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetails adds error details
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

// WithCause wraps an underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// Constructor functions for the error taxonomy

// NewParallelLinesError signals that two direction vectors are collinear
// within epsilon, so no intersection point exists.
func NewParallelLinesError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeGeometry,
		Code:    CodeParallelLines,
		Message: message,
	}
}

// NewZeroVectorError signals an attempt to normalize a zero-length vector.
func NewZeroVectorError() *AppError {
	return &AppError{
		Type:    ErrorTypeGeometry,
		Code:    CodeZeroVector,
		Message: "cannot normalize a zero-length vector",
	}
}

// NewInvalidFilletError signals a fillet whose radius is non-positive or
// whose trim distance exceeds a segment's length.
func NewInvalidFilletError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeGeometry,
		Code:    CodeInvalidFillet,
		Message: message,
	}
}

// NewDegenerateGeometryError signals a zero-length line, non-positive
// radius, or similar degenerate construction.
func NewDegenerateGeometryError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeGeometry,
		Code:    CodeDegenerateGeometry,
		Message: message,
	}
}

// NewParameterError creates an error for invalid operation arguments
func NewParameterError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeParameter,
		Message: message,
	}
}

// NewEmptyQueryError signals a query that resolved to zero entities where a
// feature requires at least one. Raised at build time, before any network
// call.
func NewEmptyQueryError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeQuery,
		Code:    CodeEmptyQuery,
		Message: message,
	}
}

// NewLoftMismatchError signals loft profiles whose entity counts cannot be
// paired one-to-one.
func NewLoftMismatchError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeQuery,
		Code:    CodeLoftMismatch,
		Message: message,
	}
}

// NewRemoteError wraps a failure reported by the remote modeling service.
// The body is kept verbatim so the caller sees exactly what the service said.
func NewRemoteError(statusCode int, body string) *AppError {
	return &AppError{
		Type:       ErrorTypeRemote,
		Message:    fmt.Sprintf("remote service returned status %d", statusCode),
		StatusCode: statusCode,
		Body:       body,
	}
}

// NewNetworkError creates a transport-level error
func NewNetworkError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeNetwork,
		Message: message,
		Cause:   err,
	}
}

// NewAuthError creates an authentication error
func NewAuthError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeAuth,
		Message: message,
	}
}

// NewInternalError creates an internal error
func NewInternalError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
	}
}

// Helper functions

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from an error chain
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == errType
}

// IsCode checks if an error carries a specific code
func IsCode(err error, code string) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == code
}

// IsGeometry checks if an error is a local geometric error
func IsGeometry(err error) bool {
	return IsType(err, ErrorTypeGeometry)
}

// IsParallelLines checks if an error is a parallel-lines error
func IsParallelLines(err error) bool {
	return IsCode(err, CodeParallelLines)
}

// IsInvalidFillet checks if an error is an invalid-fillet error
func IsInvalidFillet(err error) bool {
	return IsCode(err, CodeInvalidFillet)
}

// IsDegenerateGeometry checks if an error is a degenerate-geometry error
func IsDegenerateGeometry(err error) bool {
	return IsCode(err, CodeDegenerateGeometry)
}

// IsQuery checks if an error is a query resolution error
func IsQuery(err error) bool {
	return IsType(err, ErrorTypeQuery)
}

// IsRemote checks if an error came from the remote service
func IsRemote(err error) bool {
	return IsType(err, ErrorTypeRemote)
}

// IsNetwork checks if an error is a transport failure
func IsNetwork(err error) bool {
	return IsType(err, ErrorTypeNetwork)
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	// If it's already an AppError, add context to message
	if appErr := GetAppError(err); appErr != nil {
		appErr.Message = fmt.Sprintf("%s: %s", message, appErr.Message)
		return appErr
	}

	return NewInternalError(message).WithCause(err)
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}
