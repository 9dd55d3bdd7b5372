package emptystate

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"

	"github.com/julianstephens/keepmoving/internal/locale"
	"github.com/julianstephens/keepmoving/internal/tui/modal"
)

func TestViewShowsLocalizedCopy(t *testing.T) {
	tests := []struct {
		tag    language.Tag
		button string
	}{
		{language.English, "Register goal"},
		{language.BrazilianPortuguese, "Cadastrar Meta"},
	}

	for _, tt := range tests {
		t.Run(tt.tag.String(), func(t *testing.T) {
			m := New(CopyFor(locale.Printer(tt.tag)), 0, 0)
			view := m.View()
			if !strings.Contains(view, tt.button) {
				t.Errorf("View() = %q, want button %q", view, tt.button)
			}
			if !strings.Contains(view, logo) {
				t.Errorf("View() should include the logo")
			}
		})
	}
}

func TestTriggerOpensModal(t *testing.T) {
	m := New(Copy{Button: "Register goal"}, 80, 24)

	for _, k := range []tea.KeyMsg{
		{Type: tea.KeyEnter},
		{Type: tea.KeyRunes, Runes: []rune("n")},
	} {
		_, cmd := m.Update(k)
		if cmd == nil {
			t.Fatalf("key %q produced no command", k.String())
		}
		if _, ok := cmd().(modal.OpenMsg); !ok {
			t.Errorf("key %q did not request the modal", k.String())
		}
	}
}

func TestOtherInputIsIgnored(t *testing.T) {
	m := New(Copy{}, 80, 24)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")})
	if cmd != nil {
		t.Error("unbound keys should not produce commands")
	}
	_, cmd = m.Update(tea.WindowSizeMsg{Width: 10, Height: 10})
	if cmd != nil {
		t.Error("non-key messages should not produce commands")
	}
}
