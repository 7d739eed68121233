package gateway

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the backend has no record with the given id.
// Deleting the same record twice yields it on the second call.
var ErrNotFound = errors.New("gateway: record not found")

// NetworkError means the request never completed; the backend's state is
// unknown.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("gateway: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// WriteError means the backend rejected a mutation (validation or constraint
// violation). Message is safe to surface to the admin inline.
type WriteError struct {
	Message string
}

func (e *WriteError) Error() string {
	return "gateway: write rejected: " + e.Message
}

// StorageError means an image upload was rejected (collision, size or type).
type StorageError struct {
	Message string
}

func (e *StorageError) Error() string {
	return "gateway: upload rejected: " + e.Message
}

// AuthError means there is no usable session.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return "gateway: " + e.Message
}
