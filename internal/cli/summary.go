package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/julianstephens/keepmoving/internal/constants"
	"github.com/julianstephens/keepmoving/internal/locale"
	"github.com/julianstephens/keepmoving/internal/models"
	"github.com/julianstephens/keepmoving/internal/query"
)

type SummaryCmd struct {
	JSON bool `help:"Print the summary as JSON."`
}

func (c *SummaryCmd) Run(ctx *Context) error {
	var (
		summary models.Summary
		pending []models.PendingGoal
	)

	err := query.RefetchAll(ctx.Ctx,
		func(qctx context.Context) error {
			s, err := query.Fetch(qctx, ctx.Cache, constants.QueryKeySummary, ctx.API.Summary)
			summary = s
			return err
		},
		func(qctx context.Context) error {
			p, err := query.Fetch(qctx, ctx.Cache, constants.QueryKeyPendingGoals, ctx.API.PendingGoals)
			pending = p
			return err
		},
	)
	if err != nil {
		return err
	}

	if c.JSON {
		out := struct {
			Summary      models.Summary       `json:"summary"`
			PendingGoals []models.PendingGoal `json:"pendingGoals"`
		}{summary, pending}
		jsonBytes, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		fmt.Fprintln(ctx.Out, string(jsonBytes))
		return nil
	}

	if summary.IsEmpty() {
		fmt.Fprintln(ctx.Out, ctx.Printer.Sprintf(locale.EmptyMessage))
		return nil
	}

	fmt.Fprintf(ctx.Out, "This week: %d/%d (%.0f%%)\n", summary.Completed, summary.Total, summary.Progress()*100)

	if len(pending) > 0 {
		fmt.Fprintln(ctx.Out, "\nPending:")
		for _, g := range pending {
			fmt.Fprintf(ctx.Out, "  %s (%d/%d)\n", g.Title, g.CompletionCount, g.DesiredWeeklyFrequency)
		}
	}

	for _, day := range summary.Days() {
		fmt.Fprintf(ctx.Out, "\n%s\n", models.DayLabel(day))
		for _, done := range summary.GoalsPerDay[day] {
			fmt.Fprintf(ctx.Out, "  ✓ %s at %s\n", done.Title, done.CompletedAt.Local().Format("15:04"))
		}
	}
	return nil
}
