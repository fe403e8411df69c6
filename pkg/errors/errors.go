package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigSave  ErrorCode = "CONFIG_SAVE"

	// Package errors
	ErrPackageNotFound ErrorCode = "PACKAGE_NOT_FOUND"

	// Linking errors
	ErrConflict ErrorCode = "CONFLICT"
	ErrIO       ErrorCode = "IO"

	// Secret errors
	ErrCrypto           ErrorCode = "CRYPTO"
	ErrPayloadIntegrity ErrorCode = "PAYLOAD_INTEGRITY"
	ErrStaleFinding     ErrorCode = "STALE_FINDING"
)

// SlinkyError represents a structured error with code and details
type SlinkyError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SlinkyError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SlinkyError) Unwrap() error {
	return e.Wrapped
}

// Is matches any SlinkyError carrying the same code.
func (e *SlinkyError) Is(target error) bool {
	var targetErr *SlinkyError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SlinkyError with the given code and message
func New(code ErrorCode, message string) *SlinkyError {
	return &SlinkyError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SlinkyError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SlinkyError {
	return &SlinkyError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a SlinkyError
func Wrap(err error, code ErrorCode, message string) *SlinkyError {
	if err == nil {
		return nil
	}
	return &SlinkyError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SlinkyError {
	if err == nil {
		return nil
	}
	return &SlinkyError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *SlinkyError) WithDetail(key string, value interface{}) *SlinkyError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// PathError wraps a filesystem failure as an IO error tagged with the
// operation kind and the path it touched.
func PathError(err error, operation, path string) *SlinkyError {
	if err == nil {
		return nil
	}
	return Wrapf(err, ErrIO, "%s %s", operation, path).
		WithDetail("operation", operation).
		WithDetail("path", path)
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var slinkyErr *SlinkyError
	if errors.As(err, &slinkyErr) {
		return slinkyErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a SlinkyError
func GetErrorCode(err error) ErrorCode {
	var slinkyErr *SlinkyError
	if errors.As(err, &slinkyErr) {
		return slinkyErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a SlinkyError
func GetErrorDetails(err error) map[string]interface{} {
	var slinkyErr *SlinkyError
	if errors.As(err, &slinkyErr) {
		return slinkyErr.Details
	}
	return nil
}
