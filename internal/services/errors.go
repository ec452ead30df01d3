package services

import "errors"

// Error kinds. Every error a service returns on purpose wraps exactly one of
// these; anything else is an unexpected failure.
var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrPaymentRequired = errors.New("payment required")
	ErrInvalidInput    = errors.New("invalid input")
	ErrConflict        = errors.New("conflict")
	ErrInvalidUser     = errors.New("invalid user token")
)

// Error is a client-facing failure: Message is safe to return to the caller.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

var (
	ErrBookNotFound          = newError(ErrNotFound, "book not found")
	ErrUserNotFound          = newError(ErrNotFound, "user not found")
	ErrParentCommentNotFound = newError(ErrNotFound, "parent comment not found")
	ErrNotBookOwner          = newError(ErrForbidden, "not your book")
	ErrBookPaymentRequired   = newError(ErrPaymentRequired, "payment required to read this book")
	ErrEmailTaken            = newError(ErrConflict, "email already registered")
	ErrMissingHandle         = newError(ErrInvalidUser, "invalid user token")
)
