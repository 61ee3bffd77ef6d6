package service

import "fmt"

// Domain errors surfaced to the API layer, where they map onto HTTP
// statuses. Anything else is treated as an internal failure.

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError reports that a referenced resource does not exist or is not
// in a state the operation can act on.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

func NewNotFound(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// ConflictError reports that an operation would violate a single-active
// constraint.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}

func NewConflict(reason string) *ConflictError {
	return &ConflictError{Reason: reason}
}
