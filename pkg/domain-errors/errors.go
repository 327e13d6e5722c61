// Package domainerrors defines the coded error type shared by all services.
//
// Services return these errors so transport layers can translate them into
// HTTP responses without inspecting error strings. Stores may return plain
// errors; services wrap them with the code that describes the failure from
// the caller's point of view.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error.
type Code string

const (
	// CodeValidation covers bad or missing input on create-style operations.
	CodeValidation Code = "validation_failed"
	// CodeBadRequest covers requests that cannot be parsed at all.
	CodeBadRequest Code = "bad_request"
	// CodeUnauthorized covers operations attempted without an authenticated
	// identity.
	CodeUnauthorized Code = "unauthorized"
	// CodeForbidden covers operations attempted by an identity whose role
	// does not permit them.
	CodeForbidden Code = "forbidden"
	// CodeNotFound covers lookups of records that do not exist.
	CodeNotFound Code = "not_found"
	// CodeConflict covers state transitions that already happened, such as
	// claiming an already-claimed donation.
	CodeConflict Code = "conflict"
	// CodeMalformedData covers structurally invalid snapshot imports.
	CodeMalformedData Code = "malformed_data"
	// CodeUnavailable covers failures of external collaborators (blob store,
	// location provider). The engine's own state stays valid.
	CodeUnavailable Code = "unavailable"
	// CodeInvariantViolation covers impossible states caught by model checks.
	CodeInvariantViolation Code = "invariant_violation"
	// CodeInternal is the fallback for unexpected failures.
	CodeInternal Code = "internal_error"
)

// Error carries a code, a human-readable message, and an optional cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New creates a coded error with no underlying cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error. The cause stays
// reachable through errors.Unwrap for logging; callers branch on the code.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// Is reports whether err carries the given code. An alias of HasCode kept
// for call-site readability in handlers.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// HasCode reports whether err (or anything it wraps) is a domain error with
// the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// GetCode extracts the code from err, defaulting to CodeInternal for
// uncoded errors.
func GetCode(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a code to its HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeValidation, CodeBadRequest, CodeMalformedData:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	case CodeInvariantViolation, CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
