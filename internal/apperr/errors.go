// Package apperr defines the error taxonomy shared by the storage,
// service and HTTP layers. Handlers map Kind to a status code; the
// wrapped cause stays server-side.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthenticated
	KindNotFound
	KindDuplicate
	KindTransient
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindNotFound:
		return "not_found"
	case KindDuplicate:
		return "duplicate"
	case KindTransient:
		return "transient"
	default:
		return "internal"
	}
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *Error {
	return New(KindValidation, message)
}

func Unauthenticated(message string) *Error {
	return New(KindUnauthenticated, message)
}

func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

func Duplicate(message string) *Error {
	return New(KindDuplicate, message)
}

func Transient(message string, err error) *Error {
	return Wrap(KindTransient, message, err)
}

func Internal(message string, err error) *Error {
	return Wrap(KindInternal, message, err)
}

// KindOf reports the taxonomy kind of err, defaulting to internal for
// anything outside the taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// PublicMessage returns the message safe to show a client. Internal and
// transient causes are never echoed.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		switch e.Kind {
		case KindInternal:
			return "internal server error"
		case KindTransient:
			return "service temporarily unavailable"
		default:
			return e.Message
		}
	}
	return "internal server error"
}
