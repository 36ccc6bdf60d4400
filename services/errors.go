// services/errors.go
package services

import "errors"

// ErrorKind classifies service failures so the transport layer can map them
// to status codes without inspecting error strings.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindConflict marks a uniqueness violation (email already taken).
	KindConflict
	// KindUnauthorized marks bad credentials or an invalid/expired token.
	KindUnauthorized
	// KindNotFound marks a missing user.
	KindNotFound
	// KindBadRequest marks an invalid OTP, already-verified state or
	// otherwise malformed input.
	KindBadRequest
	// KindTransient marks a downstream store or service being unavailable
	// or timing out.
	KindTransient
)

// Error is the service-boundary error type.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of a service error, or KindUnknown for anything
// else.
func KindOf(err error) ErrorKind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindUnknown
}

func ErrConflict(message string) error {
	return &Error{Kind: KindConflict, Message: message}
}

func ErrUnauthorized(message string) error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func ErrNotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func ErrBadRequest(message string) error {
	return &Error{Kind: KindBadRequest, Message: message}
}

func ErrTransient(message string, err error) error {
	return &Error{Kind: KindTransient, Message: message, Err: err}
}
