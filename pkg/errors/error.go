// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown and general errors
//   - Validation errors (100-199): Unknown keys, out-of-range values, invalid choices and types
//   - Preset errors (200-299): Preset lookup, preset validation and catalog loading
//   - Session errors (300-399): Unknown parameter groups and re-entrant mutations
//   - Settings errors (400-499): Reading, writing and validating persisted settings
//
// Usage:
//
//	// Create a new error
//	err := errors.New(errors.ErrCodeUnknownKey, "unknown parameter")
//
//	// Create a formatted error
//	err := errors.Newf(errors.ErrCodeOutOfRange, "%s must be within [%s, %s]", key, min, max)
//
//	// Wrap an existing error
//	err := errors.Wrap(errors.ErrCodeSettingsLoadFailed, "failed to read settings", originalErr)
//
//	// Check error code
//	if errors.HasCode(err, errors.ErrCodeOutOfRange) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error represents a structured error with an error code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   nil,
	}
}

// Wrap wraps an existing error with a new Error containing the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an existing error with a new Error containing the given code and formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard errors.Is function.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard errors.As function.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode extracts the ErrorCode from an error.
// An *InvalidPresetError reports ErrCodeInvalidPreset even though its cause carries
// the field-level code. Returns ErrCodeUnknown if the error carries no code.
func GetCode(err error) ErrorCode {
	// the outermost coded error in the chain decides
	for cur := err; cur != nil; cur = errors.Unwrap(cur) {
		switch e := cur.(type) {
		case *InvalidPresetError:
			return ErrCodeInvalidPreset
		case *Error:
			return e.Code
		}
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// InvalidPresetError reports a preset value that failed validation.
// Cause holds the field-level error (unknown key, out of range, invalid choice, ...).
type InvalidPresetError struct {
	Preset string // Preset name
	Key    string // Offending parameter key
	Cause  error  // Field-level validation error
}

// NewInvalidPresetError creates a new InvalidPresetError.
func NewInvalidPresetError(preset, key string, cause error) *InvalidPresetError {
	return &InvalidPresetError{
		Preset: preset,
		Key:    key,
		Cause:  cause,
	}
}

// Error implements the error interface.
func (e *InvalidPresetError) Error() string {
	return fmt.Sprintf("[%d] invalid preset %q at %q: %v", ErrCodeInvalidPreset, e.Preset, e.Key, e.Cause)
}

// Unwrap returns the field-level cause.
func (e *InvalidPresetError) Unwrap() error {
	return e.Cause
}

// IsInvalidPresetError checks if an error is an InvalidPresetError.
// It uses errors.As to check the error chain.
func IsInvalidPresetError(err error) bool {
	var presetErr *InvalidPresetError

	return errors.As(err, &presetErr)
}

// FieldCode returns the code of the field-level cause of err.
// For an InvalidPresetError this is the code of the rejected value; otherwise it is GetCode(err).
func FieldCode(err error) ErrorCode {
	var presetErr *InvalidPresetError
	if errors.As(err, &presetErr) {
		return GetCode(presetErr.Cause)
	}

	return GetCode(err)
}
