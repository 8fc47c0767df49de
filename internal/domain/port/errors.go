package port

import (
	"errors"
	"fmt"
)

// ErrProfileNotFound is returned by reads against an unseen identifier.
// Write paths treat an absent profile as a fresh zero-valued one instead.
var ErrProfileNotFound = errors.New("profile not found")

// ErrInvalidInput marks malformed identifiers, amounts, or transaction
// types rejected before any storage access.
var ErrInvalidInput = errors.New("invalid input")

// StorageError wraps a durable-store I/O or timeout failure. The request
// fails as a whole; no partial state is ever visible.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err as a StorageError for the given operation.
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

// IsStorageError reports whether err is (or wraps) a StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
