package domain

import "errors"

// Error classes. Every error returned by a ledger operation matches exactly one of these
// with errors.Is, which is what callers and the HTTP layer dispatch on.
var (
	// ErrValidation is returned when input validation fails. Never retried.
	ErrValidation = errors.New("validation error")
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrConflict is returned when a concurrent writer invalidated the data an operation read.
	// Operations retry conflicts internally; seeing one means the retries were exhausted
	// and the caller may try again.
	ErrConflict = errors.New("conflict")
	// ErrUnavailable is returned when the store cannot be reached or a deadline expired.
	ErrUnavailable = errors.New("service unavailable")
)

// ErrVersionConflict is returned by the store when a compare-and-set write finds the row
// changed since it was read.
var ErrVersionConflict = NewError(ErrConflict, "concurrent modification detected")

// Error is a specific error that belongs to one of the error classes above.
type Error struct {
	class error
	msg   string
}

// NewError creates an error with the given message that unwraps to class.
func NewError(class error, msg string) *Error {
	return &Error{class: class, msg: msg}
}

func (e *Error) Error() string { return e.msg }

// Unwrap returns the error class.
func (e *Error) Unwrap() error { return e.class }

// Class reports which error class err belongs to, or nil when it matches none.
func Class(err error) error {
	for _, class := range []error{ErrValidation, ErrNotFound, ErrAlreadyExists, ErrConflict, ErrUnavailable} {
		if errors.Is(err, class) {
			return class
		}
	}
	return nil
}
