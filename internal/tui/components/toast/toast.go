package toast

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/keepmoving/internal/constants"
	"github.com/julianstephens/keepmoving/internal/logger"
)

type Variant int

const (
	VariantSuccess Variant = iota
	VariantError
)

// Toast is one transient notification
type Toast struct {
	ID      int
	Variant Variant
	Message string
}

// ExpireMsg removes a toast once its duration elapses
type ExpireMsg struct {
	ID int
}

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("42")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("160")).
			Padding(0, 1)
)

// Stack holds visible toasts, newest last
type Stack struct {
	toasts   []Toast
	pending  []int
	nextID   int
	duration time.Duration
	max      int
}

func New() *Stack {
	return &Stack{
		duration: constants.ToastDuration,
		max:      constants.MaxToasts,
	}
}

// Success shows a success toast
func (s *Stack) Success(msg string) {
	logger.Info("notify success", "message", msg)
	s.push(VariantSuccess, msg)
}

// Error shows an error toast
func (s *Stack) Error(msg string) {
	logger.Warn("notify error", "message", msg)
	s.push(VariantError, msg)
}

func (s *Stack) push(v Variant, msg string) {
	s.nextID++
	s.toasts = append(s.toasts, Toast{ID: s.nextID, Variant: v, Message: msg})
	s.pending = append(s.pending, s.nextID)
	if len(s.toasts) > s.max {
		s.toasts = s.toasts[len(s.toasts)-s.max:]
	}
}

// Cmd schedules expiry for toasts pushed since the last call
func (s *Stack) Cmd() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(s.pending))
	for _, id := range s.pending {
		cmds = append(cmds, tea.Tick(s.duration, func(time.Time) tea.Msg {
			return ExpireMsg{ID: id}
		}))
	}
	s.pending = nil
	return tea.Batch(cmds...)
}

// Update handles expiry messages and reports whether msg was consumed
func (s *Stack) Update(msg tea.Msg) bool {
	if msg, ok := msg.(ExpireMsg); ok {
		s.remove(msg.ID)
		return true
	}
	return false
}

// Dismiss removes the newest toast
func (s *Stack) Dismiss() {
	if len(s.toasts) == 0 {
		return
	}
	s.toasts = s.toasts[:len(s.toasts)-1]
}

// Toasts returns the visible toasts, oldest first
func (s *Stack) Toasts() []Toast {
	return append([]Toast(nil), s.toasts...)
}

func (s *Stack) remove(id int) {
	for i, t := range s.toasts {
		if t.ID == id {
			s.toasts = append(s.toasts[:i], s.toasts[i+1:]...)
			return
		}
	}
}

func (s *Stack) View() string {
	if len(s.toasts) == 0 {
		return ""
	}
	lines := make([]string, 0, len(s.toasts))
	for _, t := range s.toasts {
		switch t.Variant {
		case VariantError:
			lines = append(lines, errorStyle.Render("✗ "+t.Message))
		default:
			lines = append(lines, successStyle.Render("✓ "+t.Message))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Right, lines...)
}
