// Package service defines the storage-agnostic interface for task operations.
package service

import "context"

// Store defines the interface for durable task storage.
// All reads and writes of the task set go through this interface.
// The screen and commands never import the database driver directly.
type Store interface {
	// FetchAll returns every persisted task in insertion order.
	// A failed read is reported as a *StorageError with Kind ReadFailed.
	FetchAll(ctx context.Context) ([]Task, error)

	// Create stores a new task with the given title and hands the created
	// task, identity assigned, to created. created is not called on failure.
	Create(ctx context.Context, title string, created func(Task)) error

	// Edit replaces task.Title with newTitle and persists it.
	// The caller's task is mutated in place.
	Edit(ctx context.Context, task *Task, newTitle string) error

	// Delete removes the task from durable storage.
	Delete(ctx context.Context, task Task) error

	// Close releases the underlying storage.
	Close() error
}
