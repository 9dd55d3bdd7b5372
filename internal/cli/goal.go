package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/julianstephens/keepmoving/internal/goalform"
	"github.com/julianstephens/keepmoving/internal/validation"
)

// ErrGoalNotCreated is returned when the API rejected or never received the goal
var ErrGoalNotCreated = errors.New("goal was not created")

type GoalCreateCmd struct {
	Title     string `arg:"" help:"Activity to practice."`
	Frequency string `short:"f" help:"Times per week, 1 to 7." default:"5"`
}

func (c *GoalCreateCmd) Run(ctx *Context) error {
	form := goalform.New(ctx.API, ctx.Cache, &printNotifier{out: ctx.Out})
	form.SetTitle(c.Title)
	form.SetFrequency(c.Frequency)

	switch form.Submit(ctx.Ctx) {
	case goalform.OutcomeCreated:
		return nil
	case goalform.OutcomeInvalid:
		var msgs []string
		for _, field := range []string{validation.FieldTitle, validation.FieldDesiredWeeklyFrequency} {
			if msg := form.FieldError(field); msg != "" {
				msgs = append(msgs, field+": "+msg)
			}
		}
		return fmt.Errorf("invalid goal: %s", strings.Join(msgs, "; "))
	default:
		return ErrGoalNotCreated
	}
}

// printNotifier writes notifications as plain lines
type printNotifier struct {
	out io.Writer
}

func (n *printNotifier) Success(msg string) {
	fmt.Fprintf(n.out, "✓ %s\n", msg)
}

func (n *printNotifier) Error(msg string) {
	fmt.Fprintf(n.out, "✗ %s\n", msg)
}
