package cli

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/keepmoving/internal/constants"
	"github.com/julianstephens/keepmoving/internal/query"
)

type PendingCmd struct {
	JSON bool `help:"Print the goals as JSON."`
}

func (c *PendingCmd) Run(ctx *Context) error {
	goals, err := query.Fetch(ctx.Ctx, ctx.Cache, constants.QueryKeyPendingGoals, ctx.API.PendingGoals)
	if err != nil {
		return err
	}

	if c.JSON {
		jsonBytes, err := json.MarshalIndent(goals, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		fmt.Fprintln(ctx.Out, string(jsonBytes))
		return nil
	}

	if len(goals) == 0 {
		fmt.Fprintln(ctx.Out, "No pending goals.")
		return nil
	}

	for _, g := range goals {
		fmt.Fprintf(ctx.Out, "%s (%d/%d)\n", g.Title, g.CompletionCount, g.DesiredWeeklyFrequency)
	}
	return nil
}
