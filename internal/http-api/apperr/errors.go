// Package apperr defines the service's error taxonomy. Services return these
// typed errors; the HTTP layer maps them to a status code and a uniform
// {"message": ...} body at a single boundary.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error kind.
type Code string

const (
	CodeValidation     Code = "VALIDATION"     // malformed or missing input
	CodeAuthentication Code = "AUTHENTICATION" // missing/invalid/expired credential
	CodeAuthorization  Code = "AUTHORIZATION"  // valid identity, insufficient role or not the owner
	CodeNotFound       Code = "NOT_FOUND"
	CodeConflict       Code = "CONFLICT" // duplicate review, duplicate email
	CodeRateLimited    Code = "RATE_LIMITED"
	CodeUnexpected     Code = "UNEXPECTED"
)

// HTTPStatus returns the status code carried by an error kind.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeAuthentication:
		return http.StatusUnauthorized
	case CodeAuthorization:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error with a code and user-facing message.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error with the same Code, so handlers can test kinds with
// errors.Is(err, apperr.NotFound("")).
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

func Validation(msg string) *Error     { return &Error{Code: CodeValidation, Message: msg} }
func Authentication(msg string) *Error { return &Error{Code: CodeAuthentication, Message: msg} }
func Authorization(msg string) *Error  { return &Error{Code: CodeAuthorization, Message: msg} }
func NotFound(msg string) *Error       { return &Error{Code: CodeNotFound, Message: msg} }
func Conflict(msg string) *Error       { return &Error{Code: CodeConflict, Message: msg} }
func RateLimited(msg string) *Error    { return &Error{Code: CodeRateLimited, Message: msg} }

// Unexpected wraps a storage or upload failure. The cause is kept for logs but
// never shown to the client.
func Unexpected(msg string, cause error) *Error {
	return &Error{Code: CodeUnexpected, Message: msg, cause: cause}
}

// StatusAndMessage resolves any error to the status/message pair the HTTP
// boundary responds with. Unknown errors default to 500 "Something went wrong".
func StatusAndMessage(err error) (int, string) {
	var e *Error
	if errors.As(err, &e) {
		return e.HTTPStatus(), e.Message
	}
	return http.StatusInternalServerError, "Something went wrong"
}
