// Package domainerrors provides coded errors that services attach to failures
// so transport layers can translate them into consistent client responses.
package domainerrors

import "errors"

// Code classifies a failure for callers. Stores return sentinel errors;
// services translate them into exactly one of these codes.
type Code string

const (
	// CodeValidation marks malformed or out-of-range input, caught before
	// any write or external call.
	CodeValidation Code = "validation"
	// CodeReference marks a foreign key pointing at a row that does not exist.
	CodeReference Code = "reference"
	// CodeConflict marks a delete blocked by existing dependent rows.
	CodeConflict Code = "conflict"
	// CodeNotFound marks an absent target, locally or in an external catalog.
	CodeNotFound Code = "not_found"
	// CodeUpstream marks an unreachable or erroring external service.
	CodeUpstream Code = "upstream"
	// CodeInternal marks unexpected infrastructure failures.
	CodeInternal Code = "internal"
)

// Error is a coded domain error. Message is safe to show to callers.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// New builds a coded error with a caller-facing message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and caller-facing message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether any error in the chain carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if !errors.As(err, &de) {
		return false
	}
	return de.Code == code
}

// CodeOf returns the code of the outermost coded error in the chain, or
// CodeInternal when the error carries no code.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}
