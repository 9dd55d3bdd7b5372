package validation

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/julianstephens/keepmoving/internal/constants"
	"github.com/julianstephens/keepmoving/internal/models"
)

// Field names used to attribute errors to form inputs
const (
	FieldTitle                  = "title"
	FieldDesiredWeeklyFrequency = "desiredWeeklyFrequency"
)

// FieldError is a validation failure attributed to a single form field
type FieldError struct {
	Field   string
	Message string
}

// ValidationResult contains every field error found in a goal draft
type ValidationResult struct {
	Errors []FieldError
}

// HasErrors returns true if the draft must not be submitted
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// Message returns the first error message for the field, or "" when the field is valid
func (vr *ValidationResult) Message(field string) string {
	for _, fe := range vr.Errors {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// Error joins all messages so a result can be reported as an error
func (vr *ValidationResult) Error() string {
	msgs := make([]string, 0, len(vr.Errors))
	for _, fe := range vr.Errors {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return strings.Join(msgs, "; ")
}

// Validator checks goal drafts before anything leaves the client
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateGoalDraft validates raw form input and returns the coerced payload.
// The payload is only meaningful when the result has no errors.
func (v *Validator) ValidateGoalDraft(title, frequency string) (models.CreateGoalInput, ValidationResult) {
	result := ValidationResult{Errors: []FieldError{}}

	if msg := v.ValidateTitle(title); msg != "" {
		result.Errors = append(result.Errors, FieldError{Field: FieldTitle, Message: msg})
	}

	freq, msg := v.CoerceFrequency(frequency)
	if msg != "" {
		result.Errors = append(result.Errors, FieldError{Field: FieldDesiredWeeklyFrequency, Message: msg})
	}

	return models.CreateGoalInput{
		Title:                  title,
		DesiredWeeklyFrequency: freq,
	}, result
}

// ValidateTitle returns the error message for an invalid title, or "".
// Titles are not trimmed: any non-empty text names an activity.
func (v *Validator) ValidateTitle(title string) string {
	if len(title) < 1 {
		return constants.MsgTitleRequired
	}
	return ""
}

// CoerceFrequency converts form input into a weekly frequency.
// Blank input coerces to 0 and is rejected by the lower bound.
func (v *Validator) CoerceFrequency(s string) (int, string) {
	n := coerceNumber(s)
	if math.IsNaN(n) {
		return 0, constants.MsgFrequencyNotNumber
	}

	if n < constants.MinWeeklyFrequency {
		return 0, constants.MsgFrequencyTooSmall
	}
	if n > constants.MaxWeeklyFrequency {
		return 0, constants.MsgFrequencyTooLarge
	}
	if n != math.Trunc(n) {
		return 0, constants.MsgFrequencyNotInteger
	}

	return int(n), ""
}

var decimalLiteral = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// coerceNumber reads s the way a browser number input coerces text:
// unsigned 0x/0o/0b literals, signed decimals with exponents, and
// Infinity. Out of range decimals become infinite. Anything else is NaN.
func coerceNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}

	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			n, err := strconv.ParseUint(s[2:], base, 64)
			if errors.Is(err, strconv.ErrRange) {
				return math.Inf(1)
			}
			if err != nil {
				return math.NaN()
			}
			return float64(n)
		}
	}

	if !decimalLiteral.MatchString(s) {
		return math.NaN()
	}
	// ParseFloat reports ErrRange with ±Inf or 0, which is the value wanted
	n, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return n
}
