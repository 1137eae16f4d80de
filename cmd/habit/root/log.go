package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"habitexe/internal/ui"
)

func newLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log <directive>",
		Short: "Toggle today's entry for a directive (log/unlog)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("directive name or id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			h, err := svc.FindHabit(ctx, args[0])
			if err != nil {
				return err
			}
			if h == nil {
				return fmt.Errorf("directive %q not found", args[0])
			}

			res, err := svc.Toggle(ctx, h.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if res.Logged {
				line := fmt.Sprintf("logged: %s // +%d xp", res.Habit.Name, res.XPDelta)
				if res.Bonus {
					line += " [streak bonus active]"
				}
				fmt.Fprintln(out, ui.Good.Render(line))
			} else {
				fmt.Fprintln(out, ui.Bad.Render(fmt.Sprintf("action reversed: %s // %d xp", res.Habit.Name, res.XPDelta)))
			}
			fmt.Fprintln(out, ui.LabelValue("streak", res.Habit.Streak))
			fmt.Fprintln(out, ui.LabelValue("rank", fmt.Sprintf("%s (%d xp)", res.Stats.RankTitle, res.Stats.XP)))
			return nil
		},
	}
}
