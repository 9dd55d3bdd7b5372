package creategoal

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/keepmoving/internal/constants"
	"github.com/julianstephens/keepmoving/internal/goalform"
	"github.com/julianstephens/keepmoving/internal/models"
	"github.com/julianstephens/keepmoving/internal/query"
	"github.com/julianstephens/keepmoving/internal/tui/modal"
)

type fakeCreator struct {
	mu    sync.Mutex
	calls []models.CreateGoalInput
	err   error
}

func (c *fakeCreator) CreateGoal(ctx context.Context, input models.CreateGoalInput) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, input)
	return c.err
}

type fakeNotifier struct {
	successes []string
	errors    []string
}

func (n *fakeNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *fakeNotifier) Error(msg string)   { n.errors = append(n.errors, msg) }

func setup(t *testing.T, createErr error) (Model, *goalform.Form, *fakeCreator, *fakeNotifier, *query.Client) {
	t.Helper()
	creator := &fakeCreator{err: createErr}
	notifier := &fakeNotifier{}
	cache := query.NewClient()
	form := goalform.New(creator, cache, notifier)
	return New(context.Background(), form), form, creator, notifier, cache
}

// collect runs cmd and flattens batches into the messages they produce
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, collect(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

var cmdType = reflect.TypeOf((*tea.Cmd)(nil)).Elem()

// runQuick runs cmd and returns the messages it produces right away.
// Timer-driven commands such as cursor blinks never return in time and are dropped.
func runQuick(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-ch:
	case <-time.After(20 * time.Millisecond):
		return nil
	}
	if msg == nil {
		return nil
	}

	// Batches and sequences are both slices of commands
	if v := reflect.ValueOf(msg); v.Kind() == reflect.Slice && v.Type().Elem() == cmdType {
		var msgs []tea.Msg
		for i := 0; i < v.Len(); i++ {
			c, _ := v.Index(i).Interface().(tea.Cmd)
			msgs = append(msgs, runQuick(c)...)
		}
		return msgs
	}
	if _, ok := msg.(spinner.TickMsg); ok {
		return nil
	}
	return []tea.Msg{msg}
}

// drive feeds msgs to m along with every follow-up message their commands produce
func drive(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	queue := append([]tea.Msg(nil), msgs...)
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 500 {
			t.Fatal("update loop did not settle")
		}
		msg := queue[0]
		queue = queue[1:]

		var cmd tea.Cmd
		m, cmd = m.Update(msg)
		queue = append(queue, runQuick(cmd)...)
	}
	return m
}

func findResult(t *testing.T, cmd tea.Cmd) ResultMsg {
	t.Helper()
	for _, msg := range collect(cmd) {
		if res, ok := msg.(ResultMsg); ok {
			return res
		}
	}
	t.Fatal("command did not produce a ResultMsg")
	return ResultMsg{}
}

func TestOpen_RendersDraftDefaults(t *testing.T) {
	m, _, _, _, _ := setup(t, nil)
	m.Open()

	if m.fields.Title != "" {
		t.Errorf("title = %q, want empty", m.fields.Title)
	}
	if m.fields.Frequency != constants.DefaultWeeklyFrequency {
		t.Errorf("frequency = %d, want %d", m.fields.Frequency, constants.DefaultWeeklyFrequency)
	}

	view := m.View()
	for _, want := range []string{constants.GoalFormTitle, constants.GoalFormTitleLabel, constants.GoalFormFrequencyLabel} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSubmit_ValidDraftSendsAndCompletes(t *testing.T) {
	m, form, creator, notifier, cache := setup(t, nil)
	form.SetTitle("Meditate")
	form.SetFrequencyValue(3)

	m, cmd := m.Submit()
	if !form.Submitting() {
		t.Fatal("form should be submitting after a valid submit")
	}
	if !strings.Contains(m.View(), constants.GoalFormSubmittingMessage) {
		t.Error("view should show the saving indicator while in flight")
	}

	res := findResult(t, cmd)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if len(creator.calls) != 1 {
		t.Fatalf("creator called %d times, want 1", len(creator.calls))
	}
	if got := creator.calls[0]; got.Title != "Meditate" || got.DesiredWeeklyFrequency != 3 {
		t.Errorf("creator got %+v", got)
	}

	m, _ = m.Update(res)
	if form.Submitting() {
		t.Error("form should be idle after the result is applied")
	}
	if m.fields.Title != "" || m.fields.Frequency != constants.DefaultWeeklyFrequency {
		t.Errorf("fields not reset: %+v", *m.fields)
	}
	if len(notifier.successes) != 1 || notifier.successes[0] != constants.MsgGoalCreated {
		t.Errorf("successes = %v", notifier.successes)
	}
	for _, key := range []query.Key{constants.QueryKeyPendingGoals, constants.QueryKeySummary} {
		if n := cache.Invalidations(key); n != 1 {
			t.Errorf("%s invalidated %d times, want 1", key, n)
		}
	}
}

func TestSubmit_InvalidDraftShowsErrors(t *testing.T) {
	m, form, creator, _, _ := setup(t, nil)

	m, _ = m.Submit()

	if form.Submitting() {
		t.Error("invalid draft must not start a submission")
	}
	if len(creator.calls) != 0 {
		t.Errorf("creator called %d times, want 0", len(creator.calls))
	}
	if !strings.Contains(m.View(), constants.MsgTitleRequired) {
		t.Errorf("view should show %q", constants.MsgTitleRequired)
	}
}

func TestSubmit_IgnoredWhileInFlight(t *testing.T) {
	m, form, creator, _, _ := setup(t, nil)
	form.SetTitle("Read")

	m, _ = m.Submit()
	m, cmd := m.Submit()
	if cmd != nil {
		t.Error("second submit while in flight should not produce a command")
	}

	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if cmd != nil {
		t.Error("input while in flight should be ignored")
	}
	if len(creator.calls) != 0 {
		t.Errorf("creator called %d times before any command ran", len(creator.calls))
	}
}

func TestResult_FailureKeepsDraft(t *testing.T) {
	m, form, _, notifier, cache := setup(t, errors.New("boom"))
	form.SetTitle("Run")
	form.SetFrequencyValue(2)

	m, cmd := m.Submit()
	res := findResult(t, cmd)
	if res.Err == nil {
		t.Fatal("expected an error from the creator")
	}

	m, _ = m.Update(res)
	if m.fields.Title != "Run" || m.fields.Frequency != 2 {
		t.Errorf("draft not kept: %+v", *m.fields)
	}
	if len(notifier.errors) != 1 || notifier.errors[0] != constants.MsgGoalCreationError {
		t.Errorf("errors = %v", notifier.errors)
	}
	if n := cache.Invalidations(constants.QueryKeySummary); n != 0 {
		t.Errorf("summary invalidated %d times on failure", n)
	}
}

func TestEsc_DismissesAndClosesModal(t *testing.T) {
	m, form, creator, notifier, _ := setup(t, nil)
	form.SetTitle("Swim")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc should return a command")
	}
	if _, ok := cmd().(modal.CloseMsg); !ok {
		t.Error("esc should close the modal")
	}
	if form.Title() != "" {
		t.Errorf("title = %q, want draft discarded", form.Title())
	}
	if len(creator.calls) != 0 || len(notifier.successes)+len(notifier.errors) != 0 {
		t.Error("dismiss must not call the API or notify")
	}
}

func TestOpen_StartsFreshDraft(t *testing.T) {
	m, form, _, _, _ := setup(t, nil)
	form.SetTitle("Old")
	form.SetFrequencyValue(7)

	m.Open()

	if m.fields.Title != "" || m.fields.Frequency != constants.DefaultWeeklyFrequency {
		t.Errorf("fields = %+v, want fresh draft", *m.fields)
	}
}

func TestKeystrokes_TypeTitlePickFrequencyAndSave(t *testing.T) {
	m, form, creator, notifier, cache := setup(t, nil)
	m = drive(t, m, runQuick(m.Open())...)

	m = drive(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Meditate")})
	if form.Title() != "Meditate" {
		t.Fatalf("typed title = %q, want Meditate", form.Title())
	}

	m = drive(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = drive(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = drive(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if len(creator.calls) != 1 {
		t.Fatalf("creator called %d times, want 1", len(creator.calls))
	}
	if got := creator.calls[0]; got.Title != "Meditate" || got.DesiredWeeklyFrequency != constants.DefaultWeeklyFrequency-1 {
		t.Errorf("creator got %+v", got)
	}
	if form.Submitting() {
		t.Error("form should be idle once the result is applied")
	}
	if form.Title() != "" || m.fields.Title != "" {
		t.Error("draft should be reset after a successful save")
	}
	if len(notifier.successes) != 1 {
		t.Errorf("successes = %v", notifier.successes)
	}
	for _, key := range []query.Key{constants.QueryKeyPendingGoals, constants.QueryKeySummary} {
		if n := cache.Invalidations(key); n != 1 {
			t.Errorf("%s invalidated %d times, want 1", key, n)
		}
	}
}

func TestKeystrokes_EmptyTitleShowsErrorWithoutCall(t *testing.T) {
	m, form, creator, _, _ := setup(t, nil)
	m = drive(t, m, runQuick(m.Open())...)

	m = drive(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = drive(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if len(creator.calls) != 0 {
		t.Errorf("creator called %d times, want 0", len(creator.calls))
	}
	if form.Submitting() {
		t.Error("an empty title must not start a submission")
	}
	if !strings.Contains(m.View(), constants.MsgTitleRequired) {
		t.Errorf("view should show %q", constants.MsgTitleRequired)
	}
}
