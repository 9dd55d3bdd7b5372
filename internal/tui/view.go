package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/keepmoving/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateLoading:
		content = m.viewLoading()
	case constants.StateEmpty:
		content = m.emptyState.View()
	case constants.StateSummary:
		content = m.viewSummary()
	case constants.StateError:
		content = m.viewError()
	}

	if m.modal.IsOpen() {
		content = m.modal.View(m.createGoal.View(), m.width, m.height-4)
	}

	sections := []string{headerStyle.Render(constants.AppName), content}
	if toasts := m.toasts.View(); toasts != "" {
		sections = append(sections, toasts)
	}
	sections = append(sections, m.help.View(m))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewSummary() string {
	body := m.summary.View()
	if updated := m.cache.UpdatedAt(constants.QueryKeySummary); !updated.IsZero() {
		body = lipgloss.JoinVertical(lipgloss.Left, body, "", mutedStyle.Render("Updated "+updated.Format("15:04:05")))
	}
	return docStyle.Render(body)
}

func (m Model) viewLoading() string {
	return lipgloss.Place(m.width, max(m.height-4, 1),
		lipgloss.Center, lipgloss.Center,
		m.spinner.View()+" Loading...",
	)
}

func (m Model) viewError() string {
	return lipgloss.Place(m.width, max(m.height-4, 1),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Could not reach the goals API"),
			mutedStyle.Render(fmt.Sprint(m.err)),
			"",
			"[r] Retry",
			"[q] Quit",
		),
	)
}
