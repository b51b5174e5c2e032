// Package common defines shared constants and sentinel errors used across
// the quizauth server and CLI. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Outward error kinds. Each one is a terminal state of an auth flow.
	ErrValidation         = errors.New("validation rejected")
	ErrDuplicate          = errors.New("duplicate rejected")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMalformed          = errors.New("malformed rejected")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnauthorized       = errors.New("unauthorized")

	// Session carrier errors.
	ErrNoToken          = errors.New("no token")
	ErrMalformedCarrier = errors.New("malformed session carrier")
)

// RejectedError is a client-caused terminal state. Msg is safe to show to
// the user; Kind is one of the outward error kinds above.
type RejectedError struct {
	Kind error
	Msg  string
}

// Reject builds a RejectedError for the given kind.
func Reject(kind error, msg string) *RejectedError {
	return &RejectedError{Kind: kind, Msg: msg}
}

func (e *RejectedError) Error() string {
	return e.Msg
}

func (e *RejectedError) Unwrap() error {
	return e.Kind
}

// UserMessage returns the user-facing message carried by err, or fallback
// when err is not a RejectedError.
func UserMessage(err error, fallback string) string {
	var rej *RejectedError
	if errors.As(err, &rej) {
		return rej.Msg
	}
	return fallback
}
