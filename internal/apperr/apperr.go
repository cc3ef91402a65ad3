// Package apperr separates business-rule failures, which are reported back to
// the caller as a message, from misuse of an API by its caller.
package apperr

import "errors"

// Kind classifies a business-rule failure.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuthentication
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	}

	return "unknown"
}

// Error is a recoverable business-rule failure. Message is meant for end users.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Authentication(msg string) *Error {
	return &Error{Kind: KindAuthentication, Message: msg}
}

// ErrInvalidUsage marks a broken precondition on the caller side. It is never
// a business outcome and should not be shown to end users.
var ErrInvalidUsage = errors.New("invalid usage")

// IsBusiness reports whether err carries a business-rule failure.
func IsBusiness(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

// Message returns the user-facing message of a business-rule failure, or an
// empty string when err is not one.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}

	return ""
}
