package summary

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/keepmoving/internal/models"
	"github.com/julianstephens/keepmoving/internal/tui/modal"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	countStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	dayStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true)
)

type Item struct {
	Goal models.PendingGoal
}

func (i Item) Title() string {
	return fmt.Sprintf("%s (%d/%d)", i.Goal.Title, i.Goal.CompletionCount, i.Goal.DesiredWeeklyFrequency)
}

func (i Item) Description() string {
	return fmt.Sprintf("%d left this week", i.Goal.Remaining())
}

func (i Item) FilterValue() string { return i.Goal.Title }

type KeyMap struct {
	New key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new goal"),
		),
	}
}

// Model shows the week's progress and the goals still pending
type Model struct {
	summary  models.Summary
	list     list.Model
	progress progress.Model
	keys     KeyMap
	width    int
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Pending goals"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	p := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	if width > 0 {
		p.Width = width
	}

	return Model{
		list:     l,
		progress: p,
		keys:     DefaultKeyMap(),
		width:    width,
	}
}

func (m *Model) SetSummary(s models.Summary) {
	m.summary = s
}

func (m *Model) SetPendingGoals(goals []models.PendingGoal) {
	items := make([]list.Item, len(goals))
	for i, g := range goals {
		items[i] = Item{Goal: g}
	}
	m.list.SetItems(items)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.New) {
		return m, modal.Trigger()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		headerStyle.Render("This week"),
		"  ",
		countStyle.Render(fmt.Sprintf("%d/%d", m.summary.Completed, m.summary.Total)),
	)

	sections := []string{
		header,
		m.progress.ViewAs(m.summary.Progress()),
		"",
	}

	if len(m.list.Items()) == 0 {
		sections = append(sections, countStyle.Render("All goals done for this week."))
	} else {
		sections = append(sections, m.list.View())
	}

	for _, day := range m.summary.Days() {
		sections = append(sections, "", dayStyle.Render(models.DayLabel(day)))
		for _, c := range m.summary.GoalsPerDay[day] {
			sections = append(sections, fmt.Sprintf("  ✓ %s  %s", c.Title, c.CompletedAt.Local().Format("15:04")))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.progress.Width = width
	m.list.SetSize(width, height)
}

// Keys exposes the bindings for the help bar
func (m Model) Keys() []key.Binding {
	return []key.Binding{m.keys.New}
}
