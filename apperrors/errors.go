// Package apperrors holds the error values shared by the repository, the
// services and the HTTP handlers.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind is the discriminant of an *Error.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindDenied
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindDenied:
		return "denied"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// Error is the application error value. Fields is only set for validation
// failures and maps json field names to a short rule description.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "Invalid request data", Fields: fields}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Conflict(msg string, err error) *Error {
	return &Error{Kind: KindConflict, Message: msg, Err: err}
}

func Denied(msg string) *Error {
	return &Error{Kind: KindDenied, Message: msg}
}

// Server wraps an internal failure. The message is what callers may see; the
// wrapped error is for logs only.
func Server(err error) *Error {
	return &Error{Kind: KindServer, Message: "Something went wrong", Err: err}
}

// KindOf reports the Kind of err, or KindUnknown if err carries no *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// AuthErrorType tags failures of registration and login.
type AuthErrorType string

const (
	AuthValidation         AuthErrorType = "VALIDATION_ERROR"
	AuthUsernameTaken      AuthErrorType = "USERNAME_TAKEN"
	AuthInvalidCredentials AuthErrorType = "INVALID_CREDENTIALS"
	AuthServer             AuthErrorType = "SERVER_ERROR"
	AuthUnexpected         AuthErrorType = "UNEXPECTED"
)

type AuthError struct {
	Type    AuthErrorType
	Message string
	Fields  map[string]string
	Err     error
}

func NewAuthError(t AuthErrorType, err error) *AuthError {
	return &AuthError{Type: t, Message: string(t), Err: err}
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Type, e.Err)
	}
	return string(e.Type)
}

func (e *AuthError) Unwrap() error { return e.Err }

// AuthTypeOf returns the type of an *AuthError inside err, or AuthUnexpected.
func AuthTypeOf(err error) AuthErrorType {
	var e *AuthError
	if errors.As(err, &e) {
		return e.Type
	}
	return AuthUnexpected
}
