package store

import (
	"errors"
	"fmt"

	"github.com/jpalmieri/ctxstore/internal/model"
)

// ErrNotFound reports an unknown context id or project. Callers treat
// it as an expected, recoverable condition.
var ErrNotFound = errors.New("not found")

// ValidationError reports malformed caller input. It is always
// returned synchronously and never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InvalidTransitionError reports an illegal status change. Status only
// moves forward; same-state and backward transitions are rejected.
type InvalidTransitionError struct {
	From model.Status
	To   model.Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition: %s -> %s", e.From, e.To)
}

// StorageError wraps a backing-medium failure. The store never retries
// these; retry policy belongs to the caller.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// storageErr wraps err as a StorageError for the given operation.
func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
