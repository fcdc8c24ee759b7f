package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Up, Down         key.Binding
	Toggle, Edit     key.Binding
	Delete, Add      key.Binding
	MoveUp, MoveDown key.Binding
	Cancel, Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		Edit:   key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Delete: key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Add:    key.NewBinding(key.WithKeys("a", "tab"), key.WithHelp("a", "add")),
		// Some terminals report shift+arrows as plain arrows; ctrl+k/j always work.
		MoveUp:   key.NewBinding(key.WithKeys("shift+up", "ctrl+k"), key.WithHelp("shift+↑", "move up")),
		MoveDown: key.NewBinding(key.WithKeys("shift+down", "ctrl+j"), key.WithHelp("shift+↓", "move down")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel/quit")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Edit, k.Delete, k.MoveUp, k.MoveDown, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.MoveUp, k.MoveDown},
		{k.Add, k.Toggle, k.Edit, k.Delete},
		{k.Cancel, k.Quit},
	}
}
