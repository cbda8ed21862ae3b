// Package apperr defines the error taxonomy shared by services and handlers.
// Every failure that should reach a client as something other than a 500 is
// an *Error carrying a Kind; the HTTP status is derived from the Kind.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an application error.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindUnauthenticated Kind = "unauthenticated"
	KindInvalidToken    Kind = "invalid_token"
	KindForbidden       Kind = "forbidden"
	KindNotFound        Kind = "not_found"
	KindUnprocessable   Kind = "unprocessable"
	KindTooLarge        Kind = "too_large"
	KindInternal        Kind = "internal"
)

// Error is a typed application error.
type Error struct {
	Kind    Kind
	Message string
	// Fields holds per-field validation details (field name -> reason).
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status maps the error kind to an HTTP status code.
func (e *Error) Status() int {
	return StatusOf(e.Kind)
}

// StatusOf maps a kind to an HTTP status code.
func StatusOf(k Kind) int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthenticated, KindInvalidToken:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindUnprocessable:
		return http.StatusUnprocessableEntity
	case KindTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func Validation(msg string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

func InvalidToken(err error) *Error {
	return &Error{Kind: KindInvalidToken, Message: "invalid token", Err: err}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Unprocessable(msg string) *Error {
	return &Error{Kind: KindUnprocessable, Message: msg}
}

// TooLarge reports a request body over its size limit.
func TooLarge(msg string) *Error {
	return &Error{Kind: KindTooLarge, Message: msg}
}

// Internal wraps an unexpected failure. The message is safe to show clients.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Is reports whether err's chain holds an *Error of kind k.
func Is(err error, k Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == k
}
