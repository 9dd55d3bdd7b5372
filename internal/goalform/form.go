// Package goalform holds the state of the goal creation dialog.
//
// The Form is a view-model: UI code feeds it edits and submit attempts and
// renders whatever it reports back. Submission is split into Begin, Send and
// Complete so an event loop can run the network call off its own goroutine
// while all state changes stay on the loop.
package goalform

import (
	"context"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/julianstephens/keepmoving/internal/constants"
	"github.com/julianstephens/keepmoving/internal/logger"
	"github.com/julianstephens/keepmoving/internal/models"
	"github.com/julianstephens/keepmoving/internal/query"
	"github.com/julianstephens/keepmoving/internal/validation"
)

// Creator performs the remote goal creation
type Creator interface {
	CreateGoal(ctx context.Context, input models.CreateGoalInput) error
}

// Invalidator marks cached query results as stale
type Invalidator interface {
	Invalidate(key query.Key)
}

// Notifier shows transient messages to the user
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Outcome describes what a submit attempt did
type Outcome int

const (
	// OutcomeInvalid means validation failed and nothing left the client
	OutcomeInvalid Outcome = iota
	// OutcomeBusy means another submission is still outstanding
	OutcomeBusy
	// OutcomePending means the draft is valid and the submission has started
	OutcomePending
	// OutcomeCreated means the goal was created
	OutcomeCreated
	// OutcomeFailed means the remote call failed and the draft was kept
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInvalid:
		return "invalid"
	case OutcomeBusy:
		return "busy"
	case OutcomePending:
		return "pending"
	case OutcomeCreated:
		return "created"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Submission is one validated attempt to create a goal
type Submission struct {
	ID    string
	Input models.CreateGoalInput
}

// Form is the goal draft plus its validation and submission state
type Form struct {
	creator   Creator
	cache     Invalidator
	notifier  Notifier
	validator *validation.Validator

	mu         sync.Mutex
	title      string
	frequency  string
	result     validation.ValidationResult
	attempted  bool
	submitting string // ID of the outstanding submission, "" when idle
}

// New creates a Form with a fresh draft
func New(creator Creator, cache Invalidator, notifier Notifier) *Form {
	f := &Form{
		creator:   creator,
		cache:     cache,
		notifier:  notifier,
		validator: validation.New(),
	}
	f.resetLocked()
	return f
}

// Title returns the current title input
func (f *Form) Title() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.title
}

// Frequency returns the current raw frequency input
func (f *Form) Frequency() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frequency
}

// FrequencyValue returns the frequency as an integer, or the default when the input is invalid
func (f *Form) FrequencyValue() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n, msg := f.validator.CoerceFrequency(f.frequency); msg == "" {
		return n
	}
	return constants.DefaultWeeklyFrequency
}

// FieldError returns the message to show under a field, or ""
func (f *Form) FieldError(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result.Message(field)
}

// Submitting reports whether a submission is outstanding
func (f *Form) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting != ""
}

// SetTitle updates the title input
func (f *Form) SetTitle(title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.title = title
	f.revalidateLocked()
}

// SetFrequency updates the raw frequency input
func (f *Form) SetFrequency(frequency string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frequency = frequency
	f.revalidateLocked()
}

// SetFrequencyValue selects one of the frequency options
func (f *Form) SetFrequencyValue(n int) {
	f.SetFrequency(strconv.Itoa(n))
}

// Reset discards the draft and any errors
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetLocked()
}

// Dismiss closes the dialog without submitting
func (f *Form) Dismiss() {
	f.mu.Lock()
	defer f.mu.Unlock()
	logger.Debug("goal form dismissed", "submitting", f.submitting != "")
	f.resetLocked()
}

// Begin validates the draft and, when it is valid and no other submission is
// outstanding, marks the form as submitting.
func (f *Form) Begin() (Submission, Outcome) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.submitting != "" {
		return Submission{}, OutcomeBusy
	}

	f.attempted = true
	input, result := f.validator.ValidateGoalDraft(f.title, f.frequency)
	f.result = result
	if result.HasErrors() {
		logger.Debug("goal draft rejected", "errors", result.Error())
		return Submission{}, OutcomeInvalid
	}

	sub := Submission{ID: uuid.New().String(), Input: input}
	f.submitting = sub.ID
	logger.Info("submitting goal", "submission_id", sub.ID, "title", input.Title,
		"desired_weekly_frequency", input.DesiredWeeklyFrequency)
	return sub, OutcomePending
}

// Send performs the remote call for a submission. It does not touch form state.
func (f *Form) Send(ctx context.Context, sub Submission) error {
	return f.creator.CreateGoal(ctx, sub.Input)
}

// Complete applies the result of Send. Errors never escape: they become a notification.
func (f *Form) Complete(sub Submission, err error) Outcome {
	f.mu.Lock()
	if f.submitting == sub.ID {
		f.submitting = ""
	}

	if err != nil {
		f.mu.Unlock()
		logger.Error("failed to create goal", "submission_id", sub.ID, "error", err)
		f.notifier.Error(constants.MsgGoalCreationError)
		return OutcomeFailed
	}

	f.resetLocked()
	f.mu.Unlock()

	logger.Info("goal created", "submission_id", sub.ID, "title", sub.Input.Title)
	f.cache.Invalidate(constants.QueryKeyPendingGoals)
	f.cache.Invalidate(constants.QueryKeySummary)
	f.notifier.Success(constants.MsgGoalCreated)
	return OutcomeCreated
}

// Submit runs a whole submission synchronously
func (f *Form) Submit(ctx context.Context) Outcome {
	sub, outcome := f.Begin()
	if outcome != OutcomePending {
		return outcome
	}
	return f.Complete(sub, f.Send(ctx, sub))
}

func (f *Form) resetLocked() {
	f.title = ""
	f.frequency = strconv.Itoa(constants.DefaultWeeklyFrequency)
	f.result = validation.ValidationResult{}
	f.attempted = false
}

// revalidateLocked keeps inline errors in step with edits once the user has tried to submit
func (f *Form) revalidateLocked() {
	if !f.attempted {
		return
	}
	_, f.result = f.validator.ValidateGoalDraft(f.title, f.frequency)
}
