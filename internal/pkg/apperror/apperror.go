// Package apperror carries a failure kind alongside an error so the HTTP layer
// can pick a status code without string matching.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error
type Kind int

const (
	KindInternal Kind = iota
	KindUnauthorized
	KindNotFound
	KindExpired
	KindMalformed
	KindConflict
	KindBadRequest
	KindForbidden
)

var kindNames = map[Kind]string{
	KindInternal:     "INTERNAL_ERROR",
	KindUnauthorized: "UNAUTHORIZED",
	KindNotFound:     "NOT_FOUND",
	KindExpired:      "TOKEN_EXPIRED",
	KindMalformed:    "TOKEN_MALFORMED",
	KindConflict:     "CONFLICT",
	KindBadRequest:   "BAD_REQUEST",
	KindForbidden:    "FORBIDDEN",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KIND(%d)", int(k))
}

// StatusCode maps a kind to its HTTP status
func (k Kind) StatusCode() int {
	switch k {
	case KindUnauthorized, KindExpired, KindMalformed:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindBadRequest:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Error is an error tagged with a Kind
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status for the error's kind
func (e *Error) StatusCode() int {
	return e.Kind.StatusCode()
}

// New creates an error of the given kind
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an error of the given kind with an underlying cause
func Wrap(err error, kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Unauthorized(message string) *Error { return New(KindUnauthorized, message) }
func NotFound(message string) *Error     { return New(KindNotFound, message) }
func Expired(message string) *Error      { return New(KindExpired, message) }
func Malformed(message string) *Error    { return New(KindMalformed, message) }
func Conflict(message string) *Error     { return New(KindConflict, message) }
func BadRequest(message string) *Error   { return New(KindBadRequest, message) }
func Forbidden(message string) *Error    { return New(KindForbidden, message) }

// Internal wraps an unexpected failure
func Internal(message string, err error) *Error {
	return Wrap(err, KindInternal, message)
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind
func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
