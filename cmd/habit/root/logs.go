package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"habitexe/internal/ui"
)

func newLogsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logs",
		Short: "Show the retained system log",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			logs, err := svc.SystemLogs(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, l := range logs {
				fmt.Fprintln(out, ui.LogLine(l))
			}
			if len(logs) == 0 {
				fmt.Fprintln(out, ui.Dim.Render("(empty)"))
			}
			return nil
		},
	}
}
