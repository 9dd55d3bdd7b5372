// Package modal is the container that owns whether the goal dialog is open.
// Views inside it ask for changes through OpenMsg and CloseMsg.
package modal

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// OpenMsg asks the modal root to open
type OpenMsg struct{}

// CloseMsg asks the modal root to close
type CloseMsg struct{}

// Trigger returns a command that opens the modal
func Trigger() tea.Cmd {
	return func() tea.Msg { return OpenMsg{} }
}

// Dismiss returns a command that closes the modal
func Dismiss() tea.Cmd {
	return func() tea.Msg { return CloseMsg{} }
}

var frameStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("62")).
	Padding(1, 2)

// Model tracks the open/closed state
type Model struct {
	open bool
}

// Open shows the modal. It reports false when it was already open.
func (m *Model) Open() bool {
	if m.open {
		return false
	}
	m.open = true
	return true
}

// Close hides the modal. It reports false when it was already closed.
func (m *Model) Close() bool {
	if !m.open {
		return false
	}
	m.open = false
	return true
}

// IsOpen reports whether the modal is showing
func (m Model) IsOpen() bool {
	return m.open
}

// View frames body in a bordered box centered in width x height
func (m Model) View(body string, width, height int) string {
	box := frameStyle.Render(body)
	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
