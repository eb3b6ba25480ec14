// Package apperr is the closed error taxonomy shared by services and handlers.
//
// Every failure that reaches the HTTP boundary is an *Error carrying one Kind.
// Anything else is treated as an unhandled BackingStore failure.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	// BackingStore is the zero value so untyped errors map to it.
	BackingStore Kind = iota
	Validation
	Unauthorized
	Forbidden
	NotFound
	InvalidTransition
	Conflict
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Unauthorized:
		return "unauthorized"
	case Forbidden:
		return "forbidden"
	case NotFound:
		return "not_found"
	case InvalidTransition:
		return "invalid_transition"
	case Conflict:
		return "conflict"
	default:
		return "backing_store"
	}
}

type Error struct {
	Kind    Kind
	Message string
	// Code is the store's own error code when it reported one.
	Code string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(k Kind, msg string) *Error { return &Error{Kind: k, Message: msg} }

func Newf(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Message: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...any) *Error { return Newf(Validation, format, args...) }
func Unauthorizedf(format string, args ...any) *Error {
	return Newf(Unauthorized, format, args...)
}
func Forbiddenf(format string, args ...any) *Error { return Newf(Forbidden, format, args...) }
func NotFoundf(format string, args ...any) *Error  { return Newf(NotFound, format, args...) }
func Transitionf(format string, args ...any) *Error {
	return Newf(InvalidTransition, format, args...)
}
func Conflictf(format string, args ...any) *Error { return Newf(Conflict, format, args...) }

// Store wraps an error reported by a persistence collaborator.
func Store(msg string, err error) *Error {
	return &Error{Kind: BackingStore, Message: msg, Err: err}
}

// StoreCode is Store with the collaborator's error code attached.
func StoreCode(msg, code string, err error) *Error {
	return &Error{Kind: BackingStore, Message: msg, Code: code, Err: err}
}

// As returns the *Error in err's chain, or nil.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

func KindOf(err error) Kind {
	if e := As(err); e != nil {
		return e.Kind
	}
	return BackingStore
}

func Is(err error, k Kind) bool {
	e := As(err)
	return e != nil && e.Kind == k
}

// HTTPStatus maps an error to its response status. Store failures with a
// recognisable code are client-visible (400), the rest are 500.
func HTTPStatus(err error) int {
	e := As(err)
	if e == nil {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case Validation, InvalidTransition:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	default:
		if e.Code != "" {
			return http.StatusBadRequest
		}
		return http.StatusInternalServerError
	}
}
