// Package service defines the storage-agnostic interface for task operations.
package service

// Task represents a single task item.
type Task struct {
	ID    string `db:"id"`
	Title string `db:"title"`
}
