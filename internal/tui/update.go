package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/keepmoving/internal/constants"
	"github.com/julianstephens/keepmoving/internal/logger"
	"github.com/julianstephens/keepmoving/internal/tui/components/creategoal"
	"github.com/julianstephens/keepmoving/internal/tui/components/toast"
	"github.com/julianstephens/keepmoving/internal/tui/modal"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.emptyState.SetSize(msg.Width, msg.Height-4)
		m.summary.SetSize(msg.Width-4, msg.Height-8)
		m.createGoal.SetWidth(min(msg.Width-8, 56))
		return m, nil

	case summaryLoadedMsg:
		if msg.err != nil {
			logger.Error("failed to load summary", "error", msg.err)
			m.err = msg.err
			m.state = constants.StateError
			return m, nil
		}
		m.err = nil
		m.summary.SetSummary(msg.summary)
		if msg.summary.IsEmpty() {
			m.state = constants.StateEmpty
		} else {
			m.state = constants.StateSummary
		}
		return m, nil

	case pendingGoalsLoadedMsg:
		if msg.err != nil {
			logger.Warn("failed to load pending goals", "error", msg.err)
			return m, nil
		}
		m.summary.SetPendingGoals(msg.goals)
		return m, nil

	case invalidatedMsg:
		var fetch tea.Cmd
		switch msg.key {
		case constants.QueryKeySummary:
			fetch = m.fetchSummary()
		case constants.QueryKeyPendingGoals:
			fetch = m.fetchPendingGoals()
		}
		return m, tea.Batch(fetch, m.waitForInvalidation())

	case modal.OpenMsg:
		if !m.modal.Open() {
			return m, nil
		}
		return m, m.createGoal.Open()

	case modal.CloseMsg:
		m.modal.Close()
		return m, nil

	case creategoal.ResultMsg:
		// Applied even when the modal was closed before the call returned
		var cmd tea.Cmd
		m.createGoal, cmd = m.createGoal.Update(msg)
		return m, tea.Batch(cmd, m.toasts.Cmd())

	case toast.ExpireMsg:
		m.toasts.Update(msg)
		return m, nil

	case spinner.TickMsg:
		var cmds []tea.Cmd
		if m.state == constants.StateLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		var cmd tea.Cmd
		m.createGoal, cmd = m.createGoal.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.modal.IsOpen() {
			var cmd tea.Cmd
			m.createGoal, cmd = m.createGoal.Update(msg)
			return m, cmd
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.DismissToast):
			m.toasts.Dismiss()
			return m, nil
		case key.Matches(msg, m.keys.Retry) && m.state == constants.StateError:
			m.state = constants.StateLoading
			m.cache.Invalidate(constants.QueryKeySummary)
			m.cache.Invalidate(constants.QueryKeyPendingGoals)
			return m, m.spinner.Tick
		}
	}

	if m.modal.IsOpen() {
		var cmd tea.Cmd
		m.createGoal, cmd = m.createGoal.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateEmpty:
		m.emptyState, cmd = m.emptyState.Update(msg)
	case constants.StateSummary:
		m.summary, cmd = m.summary.Update(msg)
	}
	return m, cmd
}
