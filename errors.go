// errors.go
// Copyright (C) 2026 Vilhjálmur Þorsteinsson / Miðeind ehf.

// This file defines the error taxonomy of the skrafl package.
// Every failure returned by the package wraps one of the sentinel
// errors below, so callers can test for the category with errors.Is().

package skrafl

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput denotes a malformed rack, word, board or source line
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound denotes a missing board feature, such as the start square
	ErrNotFound = errors.New("not found")
	// ErrInvalidPlay denotes a word that cannot be laid down from a rack
	ErrInvalidPlay = errors.New("invalid play")
	// ErrStorage denotes a failure in the persisted word index
	ErrStorage = errors.New("storage error")
	// ErrNoExtender is returned when plays are requested for a board
	// that already has tiles on it, and no Extender has been configured
	ErrNoExtender = errors.New("no extender for non-opening turns")
)

// Error carries a sentinel error category along with
// a human readable description of the particular failure
type Error struct {
	Err     error
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(sentinel error, format string, args ...any) *Error {
	return &Error{
		Err:     sentinel,
		Message: fmt.Sprintf(format, args...),
	}
}

// storageError wraps an error from an index backend
func storageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{
		Err:     ErrStorage,
		Message: fmt.Sprintf("%s: %v", op, err),
	}
}
