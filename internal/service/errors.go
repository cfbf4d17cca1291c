package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when an operation references a notebook or note that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrSerialization is returned when a slot holds text that is not a valid document.
	ErrSerialization = errors.New("serialization error")
	// ErrStorageUnavailable is returned when the durable slot store cannot be read or written.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// NotFoundError names the entity that could not be found.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// Is reports ErrNotFound as a match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// SerializationError describes a slot whose content could not be decoded.
type SerializationError struct {
	Key string
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("slot %q holds a malformed document: %v", e.Key, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// Is reports ErrSerialization as a match.
func (e *SerializationError) Is(target error) bool {
	return target == ErrSerialization
}

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// storageError marks err as a storage failure while keeping the cause in the chain.
func storageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
}
