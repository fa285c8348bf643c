package service

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindUnauthenticated
	KindMalformedPayload
	KindMissingParameter
	KindProviderRejected
	KindProviderUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "Unauthenticated"
	case KindMalformedPayload:
		return "MalformedPayload"
	case KindMissingParameter:
		return "MissingParameter"
	case KindProviderRejected:
		return "ProviderRejected"
	case KindProviderUnavailable:
		return "ProviderUnavailable"
	default:
		return "Internal"
	}
}

func (k Kind) HTTPStatus() int {
	switch k {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindMalformedPayload, KindMissingParameter:
		return http.StatusBadRequest
	case KindProviderRejected:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Error is the error returned by every operation of this package.
type Error struct {
	Kind    Kind
	Message string
	// Diagnostics passed back to the caller, e.g. the provider response body.
	Diag string
	Err  error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) HTTPStatus() int {
	return e.Kind.HTTPStatus()
}

func (e *Error) Detail() string {
	return e.Diag
}

func newError(kind Kind, err error, format string, v ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, v...), Err: err}
}

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
