package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation signals malformed or out-of-range input. Detected before any store access.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound signals a well-formed key with no matching record.
	ErrNotFound = errors.New("not found")
	// ErrStore signals a failed store call (connectivity, constraint violation).
	ErrStore = errors.New("store unavailable")
)

// Kind classifies an error for the boundary layer.
type Kind string

// Error kinds.
const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindStore      Kind = "store"
	KindInternal   Kind = "internal"
)

// KindOf classifies err. nil yields "".
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrStore):
		return KindStore
	default:
		return KindInternal
	}
}

// ValidationError names the offending field. Unwraps to ErrValidation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a field-level validation error.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError carries the missing resource and key. Unwraps to ErrNotFound.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFound creates a not-found error for resource/key.
func NewNotFound(resource, key string) error {
	return &NotFoundError{Resource: resource, Key: key}
}

// StoreError wraps ErrStore around the failing store call.
func StoreError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStore, err)
}
