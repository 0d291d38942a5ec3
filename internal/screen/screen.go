// Package screen keeps the task list shown to the user in step with the store.
//
// A Screen owns an ordered copy of the stored tasks. Gestures (add, select,
// delete) become Store calls; after each successful mutation the copy is
// patched and the View is told which single row changed, so the list never
// re-fetches. The copy is a cache: with more than one writer it can drift.
package screen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"tasklist/internal/service"
)

// ErrRowOutOfRange is returned for a row index the screen does not hold.
var ErrRowOutOfRange = errors.New("row out of range")

// View renders rows. It reads row data back through Screen.Len and Screen.Title.
type View interface {
	// ReloadAll redraws every row.
	ReloadAll()

	// InsertRow adds a row at index.
	InsertRow(index int)

	// ReloadRow redraws the row at index.
	ReloadRow(index int)

	// DeleteRow removes the row at index.
	DeleteRow(index int)
}

// Prompter presents text-input dialogs.
// The implementation calls Dialog.Confirm or Dialog.Cancel once the user acts.
type Prompter interface {
	Present(d *Dialog)
}

// Screen is the task list presentation state.
type Screen struct {
	store    service.Store
	view     View
	prompter Prompter
	log      *log.Logger

	tasks  []service.Task
	loaded bool
}

// New creates a Screen. A nil logger discards log output.
func New(store service.Store, view View, prompter Prompter, logger *log.Logger) *Screen {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Screen{
		store:    store,
		view:     view,
		prompter: prompter,
		log:      logger,
	}
}

// Len returns the number of rows.
func (s *Screen) Len() int { return len(s.tasks) }

// Title returns the display text of row index.
func (s *Screen) Title(index int) string { return s.tasks[index].Title }

// Tasks returns a copy of the local task sequence.
func (s *Screen) Tasks() []service.Task {
	out := make([]service.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Loaded reports whether a fetch has succeeded.
func (s *Screen) Loaded() bool { return s.loaded }

// OnStart loads every task and redraws the list.
// A failed fetch is logged and the list stays as it was.
func (s *Screen) OnStart(ctx context.Context) {
	tasks, err := s.store.FetchAll(ctx)
	if err != nil {
		s.log.Printf("fetch tasks: %v", err)
		return
	}
	s.tasks = tasks
	s.loaded = true
	s.view.ReloadAll()
}

// OnAddRequested asks for a title and creates a task from it.
func (s *Screen) OnAddRequested(ctx context.Context) {
	s.prompter.Present(NewDialog(
		"New Task",
		"What do you want to do?",
		"",
		func(title string) error { return s.create(ctx, title) },
	))
}

func (s *Screen) create(ctx context.Context, title string) error {
	return s.store.Create(ctx, title, func(task service.Task) {
		s.tasks = append(s.tasks, task)
		s.loaded = true
		s.view.InsertRow(len(s.tasks) - 1)
	})
}

// OnRowSelected asks for a new title for the row and saves it.
func (s *Screen) OnRowSelected(ctx context.Context, index int) error {
	if index < 0 || index >= len(s.tasks) {
		return fmt.Errorf("%w: %d", ErrRowOutOfRange, index)
	}
	task := s.tasks[index]
	s.prompter.Present(NewDialog(
		"Change task name",
		"write your task here",
		task.Title,
		func(title string) error { return s.edit(ctx, task.ID, title) },
	))
	return nil
}

func (s *Screen) edit(ctx context.Context, id, title string) error {
	index := s.indexOf(id)
	if index < 0 {
		return fmt.Errorf("%w: task %s", ErrRowOutOfRange, id)
	}
	if err := s.store.Edit(ctx, &s.tasks[index], title); err != nil {
		return err
	}
	s.view.ReloadRow(index)
	return nil
}

// OnRowDeleteRequested deletes the task at index.
// The row stays if the store refuses the delete.
func (s *Screen) OnRowDeleteRequested(ctx context.Context, index int) error {
	if index < 0 || index >= len(s.tasks) {
		return fmt.Errorf("%w: %d", ErrRowOutOfRange, index)
	}
	if err := s.store.Delete(ctx, s.tasks[index]); err != nil {
		return err
	}
	s.tasks = append(s.tasks[:index], s.tasks[index+1:]...)
	s.view.DeleteRow(index)
	return nil
}

func (s *Screen) indexOf(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
