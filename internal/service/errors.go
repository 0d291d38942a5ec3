package service

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a task identity is not held by the store.
var ErrNotFound = errors.New("task not found")

// ErrorKind classifies storage failures.
type ErrorKind int

const (
	// ReadFailed means a fetch failed. Callers may log it and continue.
	ReadFailed ErrorKind = iota + 1

	// CommitFailed means pending changes could not be written. The store's
	// in-memory view may no longer match disk; callers must stop.
	CommitFailed
)

func (k ErrorKind) String() string {
	switch k {
	case ReadFailed:
		return "read failed"
	case CommitFailed:
		return "commit failed"
	default:
		return "unknown"
	}
}

// StorageError is returned by Store implementations for driver failures.
type StorageError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Fatal reports whether the error leaves the store unusable.
func (e *StorageError) Fatal() bool { return e.Kind == CommitFailed }

// IsFatal reports whether err wraps an unrecoverable storage failure.
func IsFatal(err error) bool {
	var se *StorageError
	return errors.As(err, &se) && se.Fatal()
}

// IsReadFailure reports whether err wraps a recoverable read failure.
func IsReadFailure(err error) bool {
	var se *StorageError
	return errors.As(err, &se) && se.Kind == ReadFailed
}
