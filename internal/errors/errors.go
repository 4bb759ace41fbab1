// Package errors provides standardized domain errors that express business intent
// rather than infrastructure details. These errors should be used by use cases
// and mapped to appropriate HTTP status codes by handlers.
package errors

import (
	"errors"
	"fmt"
)

// Standard domain errors that can be used across all domain modules.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a conflict with existing data (e.g., duplicate key).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates the request lacks valid authentication credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the authenticated user doesn't have permission.
	ErrForbidden = errors.New("forbidden")

	// ErrQuery indicates a read operation failed for an operational reason
	// (store unreachable, malformed query), not because data is absent.
	ErrQuery = errors.New("query failed")

	// ErrMutation indicates a write operation (insert/update/delete) failed
	// after the data itself passed validation.
	ErrMutation = errors.New("mutation failed")

	// ErrSerialization indicates an in-memory entity could not be converted
	// for storage or transport.
	ErrSerialization = errors.New("serialization failed")

	// ErrDeserialization indicates a stored row no longer satisfies the entity
	// schema and could not be reconstructed.
	ErrDeserialization = errors.New("deserialization failed")
)

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New for consistency.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error type.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// WrapAs wraps an error with additional context and tags it with a sentinel,
// preserving both in the error chain. Use this at the persistence boundary to
// classify driver errors (e.g., as ErrQuery or ErrMutation) without losing the
// underlying cause.
func WrapAs(err error, sentinel error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", message, sentinel, err)
}

// Is reports whether any error in err's tree matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
