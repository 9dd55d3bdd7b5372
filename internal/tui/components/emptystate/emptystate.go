package emptystate

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/message"

	"github.com/julianstephens/keepmoving/internal/locale"
	"github.com/julianstephens/keepmoving/internal/tui/modal"
)

const logo = "▲ keep moving"

var (
	logoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true)
	taglineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Italic(true)
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Width(40).Align(lipgloss.Center)
	buttonStyle  = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)
)

// Copy is the text shown by the view
type Copy struct {
	Tagline string
	Message string
	Button  string
}

// CopyFor looks up the view's text in the locale catalog
func CopyFor(p *message.Printer) Copy {
	return Copy{
		Tagline: p.Sprintf(locale.EmptyTagline),
		Message: p.Sprintf(locale.EmptyMessage),
		Button:  p.Sprintf(locale.EmptyButton),
	}
}

type KeyMap struct {
	Open key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open: key.NewBinding(
			key.WithKeys("enter", "n"),
			key.WithHelp("enter/n", "new goal"),
		),
	}
}

// Model has no state of its own beyond copy and layout
type Model struct {
	copy   Copy
	keys   KeyMap
	width  int
	height int
}

func New(c Copy, width, height int) Model {
	return Model{
		copy:   c,
		keys:   DefaultKeyMap(),
		width:  width,
		height: height,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Update only reacts to the trigger, asking the modal root to open
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Open) {
		return m, modal.Trigger()
	}
	return m, nil
}

func (m Model) View() string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		logoStyle.Render(logo),
		"",
		taglineStyle.Render(m.copy.Tagline),
		"",
		messageStyle.Render(m.copy.Message),
		"",
		buttonStyle.Render("+ "+m.copy.Button),
	)
	if m.width <= 0 || m.height <= 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Keys exposes the bindings for the help bar
func (m Model) Keys() []key.Binding {
	return []key.Binding{m.keys.Open}
}
