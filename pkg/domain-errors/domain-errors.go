package domainerrors

import "errors"

// Code represents a client-side failure category independent of transport.
// These codes describe what went wrong from the caller's point of view, not
// which HTTP status the remote API returned.
type Code string

const (
	CodeUnauthenticated   Code = "unauthenticated"    // no credential present; detected before any request
	CodeUnauthorized      Code = "unauthorized"       // credential rejected by the server
	CodeForbidden         Code = "forbidden"          // credential accepted but lacks privilege
	CodeValidation        Code = "validation_failed"  // rejected input, locally or by the server
	CodeNotFound          Code = "not_found"          // target resource does not exist
	CodeTransport         Code = "transport"          // request could not complete
	CodeMalformedResponse Code = "malformed_response" // 2xx body did not match the endpoint schema
	CodeRequestFailed     Code = "request_failed"     // any other non-2xx response
	CodeInternal          Code = "internal_error"
)

// Error wraps client failures with a stable code and a human-readable message.
// Message is what callers show to the user; Status carries the HTTP status
// when the failure came from a response.
type Error struct {
	Code    Code
	Message string
	Status  int
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

// Unwrap implements error unwrapping for error chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is enables errors.Is() to match errors by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new domain error with the given code and message.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// WithStatus creates a domain error that records the HTTP status it came from.
func WithStatus(code Code, status int, msg string) error {
	return &Error{Code: code, Status: status, Message: msg}
}

// Wrap creates a new domain error wrapping an existing error.
// If the wrapped error is already a domain error, the original code is preserved.
func Wrap(err error, code Code, msg string) error {
	var existing *Error
	if errors.As(err, &existing) {
		return &Error{Code: existing.Code, Status: existing.Status, Message: msg, Err: err}
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode checks if an error is a domain error with the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// CodeOf returns the code of the first domain error in the chain, or
// CodeInternal when there is none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
