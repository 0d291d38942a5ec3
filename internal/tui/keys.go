package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add       key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Quit      key.Binding
	ForceQuit key.Binding

	Save   key.Binding
	Cancel key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Add:       key.NewBinding(key.WithKeys("a", "+"), key.WithHelp("a", "add")),
		Edit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		Delete:    key.NewBinding(key.WithKeys("d", "x", "delete"), key.WithHelp("d", "delete")),
		Quit:      key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
		Save:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save task")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}
