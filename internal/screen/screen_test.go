package screen_test

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasklist/internal/backend/sqlite"
	"tasklist/internal/screen"
	"tasklist/internal/service"
	"tasklist/internal/testutil"
)

// recordingView records row updates as strings like "insert 0".
type recordingView struct {
	calls []string
}

func (v *recordingView) ReloadAll()          { v.calls = append(v.calls, "reload all") }
func (v *recordingView) InsertRow(index int) { v.calls = append(v.calls, fmt.Sprintf("insert %d", index)) }
func (v *recordingView) ReloadRow(index int) { v.calls = append(v.calls, fmt.Sprintf("reload %d", index)) }
func (v *recordingView) DeleteRow(index int) { v.calls = append(v.calls, fmt.Sprintf("delete %d", index)) }

// stubPrompter keeps the last presented dialog.
type stubPrompter struct {
	dialog *screen.Dialog
}

func (p *stubPrompter) Present(d *screen.Dialog) { p.dialog = d }

type harness struct {
	screen   *screen.Screen
	view     *recordingView
	prompter *stubPrompter
	logs     *bytes.Buffer
}

func newHarness(store service.Store) *harness {
	h := &harness{view: &recordingView{}, prompter: &stubPrompter{}, logs: &bytes.Buffer{}}
	h.screen = screen.New(store, h.view, h.prompter, log.New(h.logs, "", 0))
	return h
}

func (h *harness) add(t *testing.T, title string) {
	t.Helper()
	h.screen.OnAddRequested(context.Background())
	require.NotNil(t, h.prompter.dialog)
	require.NoError(t, h.prompter.dialog.Confirm(title))
}

func (h *harness) rename(t *testing.T, index int, title string) {
	t.Helper()
	require.NoError(t, h.screen.OnRowSelected(context.Background(), index))
	require.NoError(t, h.prompter.dialog.Confirm(title))
}

func localTitles(s *screen.Screen) []string {
	out := []string{}
	for i := 0; i < s.Len(); i++ {
		out = append(out, s.Title(i))
	}
	return out
}

func storedTitles(t *testing.T, store service.Store) []string {
	t.Helper()
	tasks, err := store.FetchAll(context.Background())
	require.NoError(t, err)
	out := []string{}
	for _, task := range tasks {
		out = append(out, task.Title)
	}
	return out
}

func TestOnStart_LoadsTasks(t *testing.T) {
	store := testutil.NewFakeStore()
	store.AddTask("1", "Buy milk")
	store.AddTask("2", "Walk dog")
	h := newHarness(store)

	assert.False(t, h.screen.Loaded())
	h.screen.OnStart(context.Background())

	assert.True(t, h.screen.Loaded())
	assert.Equal(t, []string{"Buy milk", "Walk dog"}, localTitles(h.screen))
	assert.Equal(t, []string{"reload all"}, h.view.calls)
}

func TestOnStart_FetchFailureStaysEmpty(t *testing.T) {
	store := testutil.NewFakeStore()
	store.AddTask("1", "hidden")
	store.FailReads()
	h := newHarness(store)

	h.screen.OnStart(context.Background())

	assert.False(t, h.screen.Loaded())
	assert.Equal(t, 0, h.screen.Len())
	assert.Empty(t, h.view.calls)
	assert.Contains(t, h.logs.String(), "fetch tasks: fetch: read failed")
}

func TestOnAddRequested_AppendsRow(t *testing.T) {
	store := testutil.NewFakeStore()
	store.AddTask("1", "first")
	h := newHarness(store)
	h.screen.OnStart(context.Background())

	h.screen.OnAddRequested(context.Background())
	d := h.prompter.dialog
	require.NotNil(t, d)
	assert.Equal(t, "New Task", d.Title)
	assert.Equal(t, "What do you want to do?", d.Message)
	assert.Equal(t, "", d.Initial)
	assert.Equal(t, screen.Placeholder, d.Placeholder)

	require.NoError(t, d.Confirm("second"))

	assert.Equal(t, []string{"first", "second"}, localTitles(h.screen))
	assert.Equal(t, []string{"reload all", "insert 1"}, h.view.calls)
	assert.NotEmpty(t, h.screen.Tasks()[1].ID)
}

func TestOnRowSelected_EditsInPlace(t *testing.T) {
	store := testutil.NewFakeStore()
	store.AddTask("1", "first")
	store.AddTask("2", "second")
	h := newHarness(store)
	h.screen.OnStart(context.Background())

	require.NoError(t, h.screen.OnRowSelected(context.Background(), 1))
	d := h.prompter.dialog
	assert.Equal(t, "Change task name", d.Title)
	assert.Equal(t, "write your task here", d.Message)
	assert.Equal(t, "second", d.Initial)

	require.NoError(t, d.Confirm("2nd"))

	assert.Equal(t, []string{"first", "2nd"}, localTitles(h.screen))
	assert.Equal(t, "2", h.screen.Tasks()[1].ID)
	assert.Equal(t, []string{"reload all", "reload 1"}, h.view.calls)
}

func TestOnRowDeleteRequested_RemovesRow(t *testing.T) {
	store := testutil.NewFakeStore()
	store.AddTask("1", "a")
	store.AddTask("2", "b")
	store.AddTask("3", "c")
	h := newHarness(store)
	h.screen.OnStart(context.Background())

	require.NoError(t, h.screen.OnRowDeleteRequested(context.Background(), 1))

	assert.Equal(t, []string{"a", "c"}, localTitles(h.screen))
	assert.Equal(t, []string{"a", "c"}, store.Titles())
	assert.Equal(t, []string{"reload all", "delete 1"}, h.view.calls)
}

func TestRowOutOfRange(t *testing.T) {
	store := testutil.NewFakeStore()
	h := newHarness(store)
	h.screen.OnStart(context.Background())

	assert.ErrorIs(t, h.screen.OnRowSelected(context.Background(), 0), screen.ErrRowOutOfRange)
	assert.ErrorIs(t, h.screen.OnRowDeleteRequested(context.Background(), -1), screen.ErrRowOutOfRange)
	assert.Nil(t, h.prompter.dialog)
	assert.Equal(t, 0, store.DeleteCalls)
}

func TestEmptyInputIsNoOp(t *testing.T) {
	store := testutil.NewFakeStore()
	store.AddTask("1", "keep")
	h := newHarness(store)
	h.screen.OnStart(context.Background())

	h.screen.OnAddRequested(context.Background())
	require.NoError(t, h.prompter.dialog.Confirm(""))
	require.NoError(t, h.screen.OnRowSelected(context.Background(), 0))
	require.NoError(t, h.prompter.dialog.Confirm(""))

	assert.Equal(t, 0, store.CreateCalls)
	assert.Equal(t, 0, store.EditCalls)
	assert.Equal(t, []string{"keep"}, localTitles(h.screen))
	assert.Equal(t, []string{"reload all"}, h.view.calls)
}

func TestCancelIsNoOp(t *testing.T) {
	store := testutil.NewFakeStore()
	h := newHarness(store)
	h.screen.OnStart(context.Background())

	h.screen.OnAddRequested(context.Background())
	d := h.prompter.dialog
	d.Cancel()
	assert.True(t, d.Done())

	// A cancelled dialog cannot be confirmed afterwards.
	require.NoError(t, d.Confirm("late"))
	assert.Equal(t, 0, store.CreateCalls)
	assert.Equal(t, 0, h.screen.Len())
}

func TestFatalCommitLeavesLocalListAlone(t *testing.T) {
	store := testutil.NewFakeStore()
	store.AddTask("1", "a")
	h := newHarness(store)
	h.screen.OnStart(context.Background())
	store.FailCommits()

	h.screen.OnAddRequested(context.Background())
	err := h.prompter.dialog.Confirm("b")
	assert.True(t, service.IsFatal(err))

	require.NoError(t, h.screen.OnRowSelected(context.Background(), 0))
	err = h.prompter.dialog.Confirm("renamed")
	assert.True(t, service.IsFatal(err))

	err = h.screen.OnRowDeleteRequested(context.Background(), 0)
	assert.True(t, service.IsFatal(err))

	assert.Equal(t, []string{"a"}, localTitles(h.screen))
	assert.Equal(t, []string{"reload all"}, h.view.calls)
}

func TestEditAfterRowVanished(t *testing.T) {
	store := testutil.NewFakeStore()
	store.AddTask("1", "a")
	store.AddTask("2", "b")
	h := newHarness(store)
	h.screen.OnStart(context.Background())

	require.NoError(t, h.screen.OnRowSelected(context.Background(), 1))
	pending := h.prompter.dialog
	require.NoError(t, h.screen.OnRowDeleteRequested(context.Background(), 1))

	assert.ErrorIs(t, pending.Confirm("b2"), screen.ErrRowOutOfRange)
	assert.Equal(t, 0, store.EditCalls)
}

// The local sequence matches a fresh fetch after every operation,
// against the real SQLite store.
func TestLocalMatchesStore(t *testing.T) {
	store, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "TaskListApp.sqlite"))
	require.NoError(t, err)
	defer store.Close()

	h := newHarness(store)
	h.screen.OnStart(context.Background())
	assert.Equal(t, storedTitles(t, store), localTitles(h.screen))

	steps := []func(){
		func() { h.add(t, "one") },
		func() { h.add(t, "two") },
		func() { h.add(t, "three") },
		func() { h.rename(t, 1, "TWO") },
		func() { require.NoError(t, h.screen.OnRowDeleteRequested(context.Background(), 0)) },
		func() { h.rename(t, 1, "3") },
		func() { require.NoError(t, h.screen.OnRowDeleteRequested(context.Background(), 1)) },
	}
	for i, step := range steps {
		step()
		assert.Equal(t, storedTitles(t, store), localTitles(h.screen), "after step %d", i)
	}
	assert.Equal(t, []string{"TWO"}, localTitles(h.screen))
}

func TestScenario(t *testing.T) {
	store, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "TaskListApp.sqlite"))
	require.NoError(t, err)
	defer store.Close()

	h := newHarness(store)
	h.screen.OnStart(context.Background())

	h.add(t, "Buy milk")
	assert.Equal(t, []string{"Buy milk"}, storedTitles(t, store))

	h.rename(t, 0, "Buy oat milk")
	assert.Equal(t, []string{"Buy oat milk"}, storedTitles(t, store))

	require.NoError(t, h.screen.OnRowDeleteRequested(context.Background(), 0))
	assert.Equal(t, []string{}, storedTitles(t, store))
	assert.Equal(t, 0, h.screen.Len())
}
