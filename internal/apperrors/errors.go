package apperrors

import (
	"errors"
	"net/http"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrConfiguration    = errors.New("configuration error")
	ErrSignatureInvalid = errors.New("signature invalid")
	ErrForbidden        = errors.New("forbidden")
	ErrUpstream         = errors.New("upstream error")
)

// Kind is the category of a request failure.
type Kind string

const (
	KindInvalidInput     Kind = "invalid_input"
	KindConfiguration    Kind = "configuration"
	KindSignatureInvalid Kind = "signature_invalid"
	KindForbidden        Kind = "forbidden"
	KindUpstream         Kind = "upstream"
)

// Error is terminal for the request that produced it. Message is sent to the
// caller as plain text.
type Error struct {
	Kind    Kind
	Message string
	Status  int
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements errors.Is against the package sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrInvalidInput:
		return e.Kind == KindInvalidInput
	case ErrConfiguration:
		return e.Kind == KindConfiguration
	case ErrSignatureInvalid:
		return e.Kind == KindSignatureInvalid
	case ErrForbidden:
		return e.Kind == KindForbidden
	case ErrUpstream:
		return e.Kind == KindUpstream
	}
	return false
}

func InvalidInput(msg string) *Error {
	return &Error{Kind: KindInvalidInput, Message: msg, Status: http.StatusBadRequest}
}

// Configuration reports an operator misconfiguration. The status differs by
// endpoint, so the caller picks it.
func Configuration(status int, msg string) *Error {
	return &Error{Kind: KindConfiguration, Message: msg, Status: status}
}

func SignatureInvalid(err error) *Error {
	return &Error{
		Kind:    KindSignatureInvalid,
		Message: "Webhook signature verification failed",
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg, Status: http.StatusForbidden}
}

// Upstream passes the provider's message through verbatim.
func Upstream(err error) *Error {
	return &Error{
		Kind:    KindUpstream,
		Message: err.Error(),
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// StatusOf returns the HTTP status for err, 500 for anything unclassified.
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Status != 0 {
		return appErr.Status
	}
	return http.StatusInternalServerError
}
