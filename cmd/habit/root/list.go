package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"habitexe/internal/dates"
	"habitexe/internal/engine"
	"habitexe/internal/ui"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List directives with their 14-day heatmap",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			habits, err := svc.ListHabits(ctx)
			if err != nil {
				return err
			}
			today := svc.Today()
			window := dates.Window(today, engine.HeatmapCompactDays)

			out := cmd.OutOrStdout()
			for _, h := range habits {
				cells := engine.HeatmapCells(h.History, window)
				trend, marks := engine.TrendFor(h.History, today)
				fmt.Fprintf(out, "%s  %s\n", ui.Text.Render(h.Name),
					ui.Muted.Render(fmt.Sprintf("streak %d", h.Streak)))
				fmt.Fprintf(out, "  %s %s\n", ui.TrendLabel(trend), ui.Sparkline(marks))
				fmt.Fprintf(out, "  %s\n", ui.Heatmap(cells))
			}
			if len(habits) == 0 {
				fmt.Fprintln(out, ui.Dim.Render("no active directives"))
			}
			return nil
		},
	}
}
