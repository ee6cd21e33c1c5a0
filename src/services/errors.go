// Package services holds the connection-graph state machine, the message
// store and the notification aggregator behind the REST controllers. Every
// operation either fully succeeds or fails without touching persisted state,
// and failures are reported through the typed errors below so controllers can
// map them to HTTP statuses.
package services

import (
	"errors"
	"fmt"
)

// Sentinel error categories. Operations return *Error values unwrapping to
// exactly one of these; anything else is an infrastructure failure.
var (
	// ErrValidation marks malformed input or an illegal state transition.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks an unknown identity or record.
	ErrNotFound = errors.New("not found")
	// ErrAuthorization marks a caller that is not a legitimate participant.
	ErrAuthorization = errors.New("not authorized")
	// ErrConflict marks a duplicate or already-resolved request.
	ErrConflict = errors.New("conflict")
)

// Error pairs a client-facing message with its category. Matched with
// errors.Is against the sentinels above.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func validationf(format string, args ...interface{}) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func notFoundf(format string, args ...interface{}) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func authorizationf(format string, args ...interface{}) error {
	return &Error{Kind: ErrAuthorization, Message: fmt.Sprintf(format, args...)}
}

func conflictf(format string, args ...interface{}) error {
	return &Error{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}
