package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/message"

	"github.com/julianstephens/keepmoving/internal/constants"
	"github.com/julianstephens/keepmoving/internal/goalform"
	"github.com/julianstephens/keepmoving/internal/logger"
	"github.com/julianstephens/keepmoving/internal/models"
	"github.com/julianstephens/keepmoving/internal/query"
	"github.com/julianstephens/keepmoving/internal/tui/components/creategoal"
	"github.com/julianstephens/keepmoving/internal/tui/components/emptystate"
	"github.com/julianstephens/keepmoving/internal/tui/components/summary"
	"github.com/julianstephens/keepmoving/internal/tui/components/toast"
	"github.com/julianstephens/keepmoving/internal/tui/modal"
)

// GoalsAPI is the part of the goals API the program talks to
type GoalsAPI interface {
	goalform.Creator
	PendingGoals(ctx context.Context) ([]models.PendingGoal, error)
	Summary(ctx context.Context) (models.Summary, error)
}

type summaryLoadedMsg struct {
	summary models.Summary
	err     error
}

type pendingGoalsLoadedMsg struct {
	goals []models.PendingGoal
	err   error
}

// invalidatedMsg is sent when a cached query is marked stale
type invalidatedMsg struct {
	key query.Key
}

type Model struct {
	ctx         context.Context
	api         GoalsAPI
	cache       *query.Client
	events      <-chan query.Key
	unsubscribe func()

	state      constants.SessionState
	keys       KeyMap
	help       help.Model
	spinner    spinner.Model
	toasts     *toast.Stack
	form       *goalform.Form
	modal      modal.Model
	emptyState emptystate.Model
	createGoal creategoal.Model
	summary    summary.Model

	err      error
	quitting bool
	width    int
	height   int
}

func NewModel(ctx context.Context, client GoalsAPI, cache *query.Client, printer *message.Printer) Model {
	toasts := toast.New()
	form := goalform.New(client, cache, toasts)
	events, unsubscribe := cache.Subscribe()

	s := spinner.New()
	s.Spinner = spinner.Dot

	return Model{
		ctx:         ctx,
		api:         client,
		cache:       cache,
		events:      events,
		unsubscribe: unsubscribe,
		state:       constants.StateLoading,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		spinner:     s,
		toasts:      toasts,
		form:        form,
		emptyState:  emptystate.New(emptystate.CopyFor(printer), 0, 0),
		createGoal:  creategoal.New(ctx, form),
		summary:     summary.New(0, 0),
	}
}

// Close stops listening for cache invalidations
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

func (m Model) ShortHelp() []key.Binding {
	if m.modal.IsOpen() {
		return append(m.createGoal.Keys(), m.keys.ForceQuit)
	}

	keys := []key.Binding{m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateEmpty:
		keys = append(keys, m.emptyState.Keys()...)
	case constants.StateSummary:
		keys = append(keys, m.summary.Keys()...)
	case constants.StateError:
		keys = append(keys, m.keys.Retry)
	}
	if len(m.toasts.Toasts()) > 0 {
		keys = append(keys, m.keys.DismissToast)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Quit, m.keys.ForceQuit, m.keys.Help, m.keys.Retry, m.keys.DismissToast}
	var actions []key.Binding
	switch m.state {
	case constants.StateEmpty:
		actions = m.emptyState.Keys()
	case constants.StateSummary:
		actions = m.summary.Keys()
	}
	return [][]key.Binding{global, actions}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.fetchSummary(),
		m.fetchPendingGoals(),
		m.waitForInvalidation(),
	)
}

func (m Model) fetchSummary() tea.Cmd {
	ctx, client, cache := m.ctx, m.api, m.cache
	return func() tea.Msg {
		s, err := query.Fetch(ctx, cache, constants.QueryKeySummary, client.Summary)
		return summaryLoadedMsg{summary: s, err: err}
	}
}

func (m Model) fetchPendingGoals() tea.Cmd {
	ctx, client, cache := m.ctx, m.api, m.cache
	return func() tea.Msg {
		goals, err := query.Fetch(ctx, cache, constants.QueryKeyPendingGoals, client.PendingGoals)
		return pendingGoalsLoadedMsg{goals: goals, err: err}
	}
}

// waitForInvalidation blocks until the cache reports a stale key
func (m Model) waitForInvalidation() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		key, ok := <-events
		if !ok {
			return nil
		}
		logger.Debug("query invalidated", "key", key)
		return invalidatedMsg{key: key}
	}
}
