package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"habitexe/internal/storage"
	"habitexe/internal/ui"
	"habitexe/internal/uplink"
)

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Request a tactical analysis brief from the uplink",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cfg, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			stats, err := svc.Stats(ctx)
			if err != nil {
				return err
			}
			habits, err := svc.ListHabits(ctx)
			if err != nil {
				return err
			}

			svc.AppendSystemLog(ctx, storage.LogInfo, "establishing uplink... requesting tactical brief.")

			briefs := make([]uplink.HabitBrief, 0, len(habits))
			for _, h := range habits {
				briefs = append(briefs, uplink.HabitBrief{Name: h.Name, Streak: h.Streak})
			}

			client := newUplink(cfg)
			text, err := client.TacticalAnalysis(ctx,
				uplink.StatsBrief{RankTitle: stats.RankTitle, XP: stats.XP}, briefs)
			if err != nil {
				return err
			}

			kind := storage.LogAI
			style := ui.AI
			if uplink.IsSentinel(text) {
				kind = storage.LogError
				style = ui.Bad
			}
			svc.AppendSystemLog(ctx, kind, text)
			fmt.Fprintln(cmd.OutOrStdout(), style.Render(text))
			return nil
		},
	}
}
