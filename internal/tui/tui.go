// Package tui is the interactive list: a Bubble Tea program rendering the
// collection and turning keys, clicks and mouse drags into controller intents.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/todo"
)

// Run starts the interactive list. Every change is persisted as it happens,
// so there is nothing left to save on quit.
func Run(ctrl *todo.Controller, logger *log.Logger) error {
	m := newModel(ctrl, logger)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
