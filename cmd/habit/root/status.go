package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"habitexe/internal/engine"
	"habitexe/internal/storage"
	"habitexe/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show operator stats and directive state",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			stats, err := svc.Stats(ctx)
			if err != nil {
				return err
			}
			name, err := svc.OperatorName(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Title.Render("Habit.exe"))
			fmt.Fprintln(out, ui.LabelValue("operator", name))
			fmt.Fprintln(out, ui.LabelValue("rank", stats.RankTitle))
			fmt.Fprintln(out, ui.LabelValue("level", stats.Level))

			r := engine.RankFor(stats.XP)
			if r.MaxLevel {
				fmt.Fprintln(out, ui.LabelValue("xp", fmt.Sprintf("%d (%s)", stats.XP, engine.MaxLevelTitle)))
			} else {
				toNext := stats.NextRankXP - stats.XP
				fmt.Fprintln(out, ui.LabelValue("xp", fmt.Sprintf("%d (next %s at %d, %d to go)",
					stats.XP, r.NextTitle, stats.NextRankXP, toNext)))
			}
			fmt.Fprintln(out)

			habits, err := svc.ListHabits(ctx)
			if err != nil {
				return err
			}
			today := svc.Today()

			fmt.Fprintln(out, ui.Header.Render("active directives"))
			for _, h := range habits {
				done := false
				for _, l := range h.History {
					if l.Day == today && l.Status == storage.StatusCompleted {
						done = true
						break
					}
				}
				status := "pending"
				if done {
					status = "complete"
				}
				trend, _ := engine.TrendFor(h.History, today)
				fmt.Fprintf(out, "%s %s  %s\n",
					ui.StatusDot(done),
					ui.Text.Render(h.Name),
					ui.Muted.Render(fmt.Sprintf("streak: %d  status: %s", h.Streak, status)))
				fmt.Fprintf(out, "   %s\n", ui.TrendLabel(trend))
			}
			if len(habits) == 0 {
				fmt.Fprintln(out, ui.Dim.Render("  no active directives"))
			}
			return nil
		},
	}
	return cmd
}
