package creategoal

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/keepmoving/internal/constants"
	"github.com/julianstephens/keepmoving/internal/goalform"
	"github.com/julianstephens/keepmoving/internal/tui/modal"
	"github.com/julianstephens/keepmoving/internal/validation"
)

// ResultMsg carries the outcome of the remote call back to the event loop
type ResultMsg struct {
	Submission goalform.Submission
	Err        error
}

var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	descriptionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(48)
	fieldErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	hintStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// fields is bound to the huh inputs. It lives behind a pointer so the
// bindings survive Model being copied by value.
type fields struct {
	Title     string
	Frequency int
}

type KeyMap struct {
	Close key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
	}
}

// Model renders the goal form inside the modal
type Model struct {
	ctx     context.Context
	form    *goalform.Form
	fields  *fields
	huhForm *huh.Form
	spinner spinner.Model
	keys    KeyMap
	width   int
}

func New(ctx context.Context, form *goalform.Form) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	m := Model{
		ctx:     ctx,
		form:    form,
		fields:  &fields{},
		spinner: s,
		keys:    DefaultKeyMap(),
	}
	m.rebuild()
	return m
}

// Open starts a fresh draft each time the modal opens
func (m *Model) Open() tea.Cmd {
	if !m.form.Submitting() {
		m.form.Reset()
	}
	m.rebuild()
	return m.huhForm.Init()
}

// rebuild recreates the huh form from the view-model's current values
func (m *Model) rebuild() {
	m.fields.Title = m.form.Title()
	m.fields.Frequency = m.form.FrequencyValue()
	m.huhForm = newForm(m.fields, m.width)
}

func newForm(f *fields, width int) *huh.Form {
	options := make([]huh.Option[int], 0, constants.MaxWeeklyFrequency)
	for n := constants.MinWeeklyFrequency; n <= constants.MaxWeeklyFrequency; n++ {
		options = append(options, huh.NewOption(fmt.Sprintf(constants.GoalFormFrequencyOption, n), n))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key(validation.FieldTitle).
				Title(constants.GoalFormTitleLabel).
				Placeholder(constants.GoalFormTitlePlaceholder).
				Value(&f.Title),
			huh.NewSelect[int]().
				Key(validation.FieldDesiredWeeklyFrequency).
				Title(constants.GoalFormFrequencyLabel).
				Options(options...).
				Value(&f.Frequency),
		),
	).WithTheme(huh.ThemeDracula()).WithShowHelp(false)

	if width > 0 {
		form = form.WithWidth(width)
	}
	return form
}

func (m Model) Init() tea.Cmd {
	return m.huhForm.Init()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ResultMsg:
		// Results are applied even if the modal was closed meanwhile
		m.form.Complete(msg.Submission, msg.Err)
		m.rebuild()
		return m, m.huhForm.Init()

	case spinner.TickMsg:
		if !m.form.Submitting() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Close) {
			m.form.Dismiss()
			return m, modal.Dismiss()
		}
		if m.form.Submitting() {
			return m, nil
		}
	}

	if m.form.Submitting() {
		return m, nil
	}

	form, cmd := m.huhForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.huhForm = f
	}
	m.form.SetTitle(m.fields.Title)
	m.form.SetFrequencyValue(m.fields.Frequency)

	switch m.huhForm.State {
	case huh.StateCompleted:
		return m.Submit()
	case huh.StateAborted:
		m.form.Dismiss()
		return m, modal.Dismiss()
	}
	return m, cmd
}

// Submit validates the draft and starts the remote call when it is valid
func (m Model) Submit() (Model, tea.Cmd) {
	sub, outcome := m.form.Begin()
	switch outcome {
	case goalform.OutcomePending:
		return m, tea.Batch(m.spinner.Tick, m.send(sub))
	case goalform.OutcomeBusy:
		return m, nil
	default:
		// Invalid: keep what the user typed and show the field errors
		m.rebuild()
		return m, m.huhForm.Init()
	}
}

func (m Model) send(sub goalform.Submission) tea.Cmd {
	ctx := m.ctx
	form := m.form
	return func() tea.Msg {
		return ResultMsg{Submission: sub, Err: form.Send(ctx, sub)}
	}
}

func (m Model) View() string {
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render(constants.GoalFormTitle),
		"  ",
		hintStyle.Render("[esc] ✕"),
	)

	var body string
	if m.form.Submitting() {
		body = m.spinner.View() + " " + constants.GoalFormSubmittingMessage
	} else {
		body = m.huhForm.View()
	}

	sections := []string{
		header,
		descriptionStyle.Render(constants.GoalFormDescription),
		"",
		body,
	}

	for _, field := range []string{validation.FieldTitle, validation.FieldDesiredWeeklyFrequency} {
		if msg := m.form.FieldError(field); msg != "" {
			sections = append(sections, fieldErrorStyle.Render(msg))
		}
	}

	sections = append(sections, "", hintStyle.Render("[esc] Close   [enter] Save"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) SetWidth(width int) {
	if width <= 0 {
		return
	}
	m.width = width
	m.huhForm = m.huhForm.WithWidth(width)
}

// Keys exposes the bindings for the help bar
func (m Model) Keys() []key.Binding {
	return []key.Binding{m.keys.Close}
}
