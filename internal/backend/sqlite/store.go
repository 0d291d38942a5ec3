// Package sqlite implements the service.Store interface on a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"tasklist/internal/config"
	"tasklist/internal/service"
)

const (
	// BusyTimeout is how long the driver waits on a locked database, in ms.
	BusyTimeout = 5000

	schema = `CREATE TABLE IF NOT EXISTS tasks (
    seq        INTEGER PRIMARY KEY AUTOINCREMENT,
    id         TEXT NOT NULL UNIQUE,
    title      TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
)`
)

type changeKind int

const (
	insertChange changeKind = iota
	updateChange
	deleteChange
)

// change is one staged mutation waiting for saveContext.
type change struct {
	kind changeKind
	task service.Task
}

type record struct {
	ID        string    `db:"id"`
	Title     string    `db:"title"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Store implements service.Store using SQLite.
// Every operation holds mu, so the store has a single writer.
type Store struct {
	mu      sync.Mutex
	db      *sqlx.DB
	path    string
	pending []change
	now     func() time.Time
}

// New opens the store at the path configured in cfg.
func New(ctx context.Context, cfg *config.Config) (*Store, error) {
	return Open(ctx, cfg.StorePath())
}

// Open opens (creating if needed) the SQLite file at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_busy_timeout=%d", path, BusyTimeout)
	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db, path: path, now: time.Now}
	if err := s.configurePragmas(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return s, nil
}

func (s *Store) configurePragmas(ctx context.Context) error {
	pragma := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=FULL;",
	}
	for _, q := range pragma {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("set pragma %q: %w", q, err)
		}
	}
	return nil
}

// Path returns the SQLite file path.
func (s *Store) Path() string { return s.path }

// Close closes the database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// FetchAll returns every task in insertion order.
func (s *Store) FetchAll(ctx context.Context) ([]service.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := []service.Task{}
	if err := s.db.SelectContext(ctx, &tasks, `SELECT id, title FROM tasks ORDER BY seq`); err != nil {
		return nil, &service.StorageError{Kind: service.ReadFailed, Op: "fetch", Err: err}
	}
	return tasks, nil
}

// Create stores a new task and passes it to created once it is on disk.
// created runs after the store is unlocked, so it may call back into the store.
func (s *Store) Create(ctx context.Context, title string, created func(service.Task)) error {
	task, err := s.insert(ctx, title)
	if err != nil {
		return err
	}
	if created != nil {
		created(task)
	}
	return nil
}

func (s *Store) insert(ctx context.Context, title string) (service.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := service.Task{ID: uuid.NewString(), Title: title}
	s.pending = append(s.pending, change{kind: insertChange, task: task})
	if err := s.saveContext(ctx); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// Edit replaces the task's title and persists it.
// An unchanged title writes nothing, but the task must still exist.
func (s *Store) Edit(ctx context.Context, task *service.Task, newTitle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if task.Title == newTitle {
		return s.exists(ctx, task.ID)
	}
	s.pending = append(s.pending, change{
		kind: updateChange,
		task: service.Task{ID: task.ID, Title: newTitle},
	})
	if err := s.saveContext(ctx); err != nil {
		return err
	}
	task.Title = newTitle
	return nil
}

// exists returns ErrNotFound unless a row with id is stored. Caller holds mu.
func (s *Store) exists(ctx context.Context, id string) error {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM tasks WHERE id = ?`, id); err != nil {
		return &service.StorageError{Kind: service.ReadFailed, Op: "edit", Err: err}
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", service.ErrNotFound, id)
	}
	return nil
}

// Delete removes the task and persists the removal.
func (s *Store) Delete(ctx context.Context, task service.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = append(s.pending, change{kind: deleteChange, task: task})
	return s.saveContext(ctx)
}

// saveContext commits staged changes in one transaction, if there are any.
// Staged changes are dropped whatever the outcome. Caller holds mu.
func (s *Store) saveContext(ctx context.Context) error {
	if len(s.pending) == 0 {
		return nil
	}
	changes := s.pending
	s.pending = nil

	// A commit in progress runs to completion even if the caller goes away.
	ctx = context.WithoutCancel(ctx)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return commitFailed(err)
	}

	now := s.now()
	for _, c := range changes {
		n, err := c.apply(ctx, tx, now)
		if err != nil {
			_ = tx.Rollback()
			return commitFailed(err)
		}
		if n == 0 {
			_ = tx.Rollback()
			return fmt.Errorf("%w: %s", service.ErrNotFound, c.task.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return commitFailed(err)
	}
	return nil
}

// apply executes one change and returns the number of rows it touched.
func (c change) apply(ctx context.Context, tx *sqlx.Tx, now time.Time) (int64, error) {
	var (
		res sql.Result
		err error
	)
	switch c.kind {
	case insertChange:
		res, err = tx.NamedExecContext(ctx,
			`INSERT INTO tasks (id, title, created_at, updated_at) VALUES (:id, :title, :created_at, :updated_at)`,
			record{ID: c.task.ID, Title: c.task.Title, CreatedAt: now, UpdatedAt: now})
	case updateChange:
		res, err = tx.ExecContext(ctx,
			`UPDATE tasks SET title = ?, updated_at = ? WHERE id = ?`,
			c.task.Title, now, c.task.ID)
	case deleteChange:
		res, err = tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, c.task.ID)
	default:
		return 0, fmt.Errorf("unknown change kind %d", c.kind)
	}
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func commitFailed(err error) error {
	return &service.StorageError{Kind: service.CommitFailed, Op: "save", Err: err}
}
