package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an operation targets a transaction that does
// not exist in the store (deleted in a previous action or never created).
var ErrNotFound = errors.New("transaction not found")

// ValidationError reports rejected user input. Recoverable: the caller should
// re-prompt.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConnectionError reports that the store could not be reached.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("database connection failed: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// PersistenceError reports a storage-layer failure during a read or write.
// The failed operation leaves no partial state behind.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
