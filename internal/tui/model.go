// Package tui renders the task list screen in the terminal with Bubble Tea.
package tui

import (
	"context"
	"log"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tasklist/internal/screen"
	"tasklist/internal/service"
)

// item is one row of the list.
type item string

func (i item) Title() string       { return string(i) }
func (i item) Description() string { return "" }
func (i item) FilterValue() string { return string(i) }

// Model is the Bubble Tea model. It is the screen's View and Prompter.
type Model struct {
	ctx    context.Context
	screen *screen.Screen
	keys   keyMap

	list   list.Model
	input  textinput.Model
	dialog *screen.Dialog

	width  int
	status string
	err    error
}

// New builds a Model backed by store. Nothing is loaded until Start.
func New(ctx context.Context, store service.Store, title string, logger *log.Logger) *Model {
	m := &Model{ctx: ctx, keys: defaultKeyMap()}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	m.list = list.New(nil, delegate, 0, 0)
	m.list.Title = title
	m.list.Styles.Title = titleStyle
	m.list.SetFilteringEnabled(false)
	m.list.SetStatusBarItemName("task", "tasks")
	m.list.DisableQuitKeybindings()
	// "d" deletes here, so it can't also page.
	m.list.KeyMap.NextPage = key.NewBinding(
		key.WithKeys("right", "l", "pgdown", "f"),
		key.WithHelp("→/l/pgdn", "next page"),
	)
	m.list.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{m.keys.Add, m.keys.Edit, m.keys.Delete}
	}

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40
	m.input = ti

	m.screen = screen.New(store, m, m, logger)
	return m
}

// Run loads the tasks and runs the screen until the user quits.
// It returns the fatal storage error that stopped it, if any.
func Run(ctx context.Context, store service.Store, title string, logger *log.Logger) error {
	m := New(ctx, store, title, logger)
	m.Start()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return err
	}
	return m.Err()
}

// Start loads the task list from the store.
func (m *Model) Start() { m.screen.OnStart(m.ctx) }

// Err returns the fatal error that ended the program.
func (m *Model) Err() error { return m.err }

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.list.SetSize(msg.Width, msg.Height-1)
		m.input.Width = max(10, msg.Width-16)
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if m.dialog != nil {
			return m.updateDialog(msg)
		}
		return m.updateList(msg)
	}

	var cmd tea.Cmd
	if m.dialog != nil {
		m.input, cmd = m.input.Update(msg)
	} else {
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Add):
		m.screen.OnAddRequested(m.ctx)
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Edit):
		if m.screen.Len() == 0 {
			return m, nil
		}
		if err := m.screen.OnRowSelected(m.ctx, m.list.Index()); err != nil {
			return m, m.handle(err)
		}
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Delete):
		if m.screen.Len() == 0 {
			return m, nil
		}
		return m, m.handle(m.screen.OnRowDeleteRequested(m.ctx, m.list.Index()))
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Save):
		d, text := m.dialog, m.input.Value()
		m.closeDialog()
		return m, m.handle(d.Confirm(text))
	case key.Matches(msg, m.keys.Cancel):
		m.dialog.Cancel()
		m.closeDialog()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handle shows a recoverable error on the status line and stops on a fatal one.
func (m *Model) handle(err error) tea.Cmd {
	if err == nil {
		m.status = ""
		return nil
	}
	if service.IsFatal(err) {
		m.err = err
		return tea.Quit
	}
	m.status = err.Error()
	return nil
}

// Present implements screen.Prompter.
func (m *Model) Present(d *screen.Dialog) {
	m.dialog = d
	m.input.Placeholder = d.Placeholder
	m.input.SetValue(d.Initial)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *Model) closeDialog() {
	m.dialog = nil
	m.input.Blur()
	m.input.SetValue("")
}

// ReloadAll implements screen.View.
func (m *Model) ReloadAll() {
	items := make([]list.Item, m.screen.Len())
	for i := range items {
		items[i] = item(m.screen.Title(i))
	}
	m.list.SetItems(items)
}

// InsertRow implements screen.View.
func (m *Model) InsertRow(index int) {
	m.list.InsertItem(index, item(m.screen.Title(index)))
	m.list.Select(index)
}

// ReloadRow implements screen.View.
func (m *Model) ReloadRow(index int) {
	m.list.SetItem(index, item(m.screen.Title(index)))
}

// DeleteRow implements screen.View.
func (m *Model) DeleteRow(index int) {
	m.list.RemoveItem(index)
	if n := len(m.list.Items()); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}
}

func (m *Model) View() string {
	if m.dialog != nil {
		return m.dialogView()
	}
	v := m.list.View()
	if m.status != "" {
		v += "\n" + statusStyle.Render(m.status)
	}
	return v
}

func (m *Model) dialogView() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		dialogTitleStyle.Render(m.dialog.Title),
		m.dialog.Message,
		"",
		m.input.View(),
		"",
		helpStyle.Render("enter: "+screen.SaveLabel+" • esc: "+screen.CancelLabel),
	)
	box := dialogStyle.Render(body)
	if m.width > 0 {
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, box)
	}
	return box
}
