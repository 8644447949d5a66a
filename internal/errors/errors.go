package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeNotFound indicates the target identity does not exist server-side.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeValidation indicates bad input caught before any network call.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeInvalidCredentials indicates the persistence service rejected a login attempt.
	ErrCodeInvalidCredentials ErrorCode = "invalid_credentials"
	// ErrCodeNetwork indicates a transport-level failure reaching a collaborator.
	ErrCodeNetwork ErrorCode = "network"
	// ErrCodeServer indicates a backend failure that is not a missing row.
	ErrCodeServer ErrorCode = "server"
	// ErrCodeUnsupportedLocale indicates a language or currency code outside the supported set.
	ErrCodeUnsupportedLocale ErrorCode = "unsupported_locale"
	// ErrCodeTimeout indicates a timeout occurred.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeCanceled indicates the operation was canceled.
	ErrCodeCanceled ErrorCode = "canceled"
)

// AppError represents a structured application error with a code, message, and optional cause.
// It supports error wrapping and unwrapping for use with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Field is the specific field that caused the error (optional, for validation errors)
	Field string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: message,
	}
}

// NotFoundf creates a new NotFound error with formatted message.
func NotFoundf(format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf(format, args...),
	}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}

// Validationf creates a new Validation error with formatted message.
func Validationf(format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

// ValidationField creates a new Validation error for a specific field.
func ValidationField(field, message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
		Field:   field,
	}
}

// InvalidCredentials creates a new InvalidCredentials error.
func InvalidCredentials(message string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidCredentials,
		Message: message,
	}
}

// Network creates a new Network error.
func Network(message string) *AppError {
	return &AppError{
		Code:    ErrCodeNetwork,
		Message: message,
	}
}

// Server creates a new Server error.
func Server(message string) *AppError {
	return &AppError{
		Code:    ErrCodeServer,
		Message: message,
	}
}

// Serverf creates a new Server error with formatted message.
func Serverf(format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeServer,
		Message: fmt.Sprintf(format, args...),
	}
}

// UnsupportedLocale creates a new UnsupportedLocale error.
func UnsupportedLocale(message string) *AppError {
	return &AppError{
		Code:    ErrCodeUnsupportedLocale,
		Message: message,
	}
}

// UnsupportedLocalef creates a new UnsupportedLocale error with formatted message.
func UnsupportedLocalef(format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeUnsupportedLocale,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   err,
	}
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool {
	return isCode(err, ErrCodeNotFound)
}

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool {
	return isCode(err, ErrCodeValidation)
}

// IsInvalidCredentials checks if an error is an InvalidCredentials error.
func IsInvalidCredentials(err error) bool {
	return isCode(err, ErrCodeInvalidCredentials)
}

// IsNetwork checks if an error is a Network error.
func IsNetwork(err error) bool {
	return isCode(err, ErrCodeNetwork)
}

// IsServer checks if an error is a Server error.
func IsServer(err error) bool {
	return isCode(err, ErrCodeServer)
}

// IsUnsupportedLocale checks if an error is an UnsupportedLocale error.
func IsUnsupportedLocale(err error) bool {
	return isCode(err, ErrCodeUnsupportedLocale)
}

// IsTimeout checks if an error is a Timeout error.
func IsTimeout(err error) bool {
	return isCode(err, ErrCodeTimeout)
}

// IsCanceled checks if an error is a Canceled error.
func IsCanceled(err error) bool {
	return isCode(err, ErrCodeCanceled)
}

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetField returns the Field from an error, or empty string if not an AppError or no field set.
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}
