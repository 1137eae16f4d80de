package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"habitexe/internal/engine"
	"habitexe/internal/ui"
)

func newRanksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ranks",
		Short: "Show the career ladder with your position",
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
			current := engine.RankFor(stats.XP)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Header.Render("rank_progression"))
			fmt.Fprintf(out, "%s %s\n", ui.Muted.Render("designation"), ui.Muted.Render("req_xp"))
			for i, r := range engine.Ranks {
				line := fmt.Sprintf("%-16s %6d", r.Title, r.MinXP)
				switch {
				case i == current.Index:
					fmt.Fprintln(out, ui.Good.Render("> "+line+"  <- current"))
				case stats.XP >= r.MinXP:
					fmt.Fprintln(out, ui.Text.Render("  "+line))
				default:
					fmt.Fprintln(out, ui.Dim.Render("  "+line))
				}
			}
			return nil
		},
	}
}
