// Package errors defines stable error codes for all LBC failure modes and a
// structured error type carrying code, message, and cause.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// EntryPointNotFound indicates the entry unit is absent from the
	// supplied unit set. A build misconfiguration: retrying with the same
	// inputs cannot succeed.
	EntryPointNotFound ErrorCode = "ENTRY_POINT_NOT_FOUND"
	// RegistryPopulated indicates a computation was invoked against a
	// registry that already holds bundles. Caller usage defect.
	RegistryPopulated ErrorCode = "REGISTRY_POPULATED"
	// ManifestInvalid indicates a unit-graph manifest failed to parse or
	// validate
	ManifestInvalid ErrorCode = "MANIFEST_INVALID"
	// PlatformInvalid indicates a platform declaration file failed to
	// parse or validate
	PlatformInvalid ErrorCode = "PLATFORM_INVALID"
	// StateUnavailable indicates the bundle state database could not be
	// opened or queried
	StateUnavailable ErrorCode = "STATE_UNAVAILABLE"
	// SnapshotInvalid indicates a registry snapshot failed to read or
	// decode
	SnapshotInvalid ErrorCode = "SNAPSHOT_INVALID"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// LbcError represents an LBC error with code, message, and optional details
type LbcError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	cause   error       // Underlying error (not exported to JSON)
}

// New creates a new LbcError
func New(code ErrorCode, message string) *LbcError {
	return &LbcError{Code: code, Message: message}
}

// Newf creates a new LbcError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *LbcError {
	return &LbcError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a new LbcError wrapping an underlying cause
func Wrap(code ErrorCode, message string, cause error) *LbcError {
	return &LbcError{Code: code, Message: message, cause: cause}
}

// Error implements the error interface
func (e *LbcError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *LbcError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *LbcError) WithDetails(details interface{}) *LbcError {
	e.Details = details
	return e
}

// CodeOf returns the error code of err, or InternalError if err is not an
// LbcError.
func CodeOf(err error) ErrorCode {
	var le *LbcError
	if stderrors.As(err, &le) {
		return le.Code
	}
	return InternalError
}

// HasCode reports whether err is an LbcError with the given code
func HasCode(err error, code ErrorCode) bool {
	var le *LbcError
	return stderrors.As(err, &le) && le.Code == code
}
