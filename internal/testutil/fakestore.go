// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"tasklist/internal/service"
)

// ErrDiskFull is the cause attached to injected commit failures.
var ErrDiskFull = errors.New("disk full")

// FakeStore is an in-memory implementation of service.Store for testing.
type FakeStore struct {
	mu    sync.RWMutex
	tasks []service.Task

	// Error injection for testing
	FetchAllErr error
	CommitErr   error // returned by Create, Edit and Delete; nothing is written

	// Call counters
	CreateCalls int
	EditCalls   int
	DeleteCalls int
	Closed      bool
}

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

// FailCommits makes every following mutation fail with a fatal commit error.
func (f *FakeStore) FailCommits() {
	f.CommitErr = &service.StorageError{Kind: service.CommitFailed, Op: "save", Err: ErrDiskFull}
}

// FailReads makes FetchAll fail with a read error.
func (f *FakeStore) FailReads() {
	f.FetchAllErr = &service.StorageError{Kind: service.ReadFailed, Op: "fetch", Err: errors.New("file is not a database")}
}

// AddTask adds a task directly, bypassing counters and error injection.
func (f *FakeStore) AddTask(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, service.Task{ID: id, Title: title})
}

// Titles returns the stored titles in order.
func (f *FakeStore) Titles() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]string, len(f.tasks))
	for i, t := range f.tasks {
		out[i] = t.Title
	}
	return out
}

// FetchAll implements service.Store.
func (f *FakeStore) FetchAll(ctx context.Context) ([]service.Task, error) {
	if f.FetchAllErr != nil {
		return nil, f.FetchAllErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.Task, len(f.tasks))
	copy(result, f.tasks)
	return result, nil
}

// Create implements service.Store.
func (f *FakeStore) Create(ctx context.Context, title string, created func(service.Task)) error {
	f.mu.Lock()
	f.CreateCalls++
	if f.CommitErr != nil {
		f.mu.Unlock()
		return f.CommitErr
	}
	task := service.Task{ID: uuid.NewString(), Title: title}
	f.tasks = append(f.tasks, task)
	f.mu.Unlock()

	if created != nil {
		created(task)
	}
	return nil
}

// Edit implements service.Store.
func (f *FakeStore) Edit(ctx context.Context, task *service.Task, newTitle string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.EditCalls++
	if f.CommitErr != nil {
		return f.CommitErr
	}
	for i, t := range f.tasks {
		if t.ID == task.ID {
			f.tasks[i].Title = newTitle
			task.Title = newTitle
			return nil
		}
	}
	return fmt.Errorf("%w: %s", service.ErrNotFound, task.ID)
}

// Delete implements service.Store.
func (f *FakeStore) Delete(ctx context.Context, task service.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls++
	if f.CommitErr != nil {
		return f.CommitErr
	}
	for i, t := range f.tasks {
		if t.ID == task.ID {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", service.ErrNotFound, task.ID)
}

// Close implements service.Store.
func (f *FakeStore) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}
