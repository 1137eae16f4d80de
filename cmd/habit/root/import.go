package root

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"habitexe/internal/ui"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a JSON snapshot, replacing current state",
		Long: `Import a snapshot previously produced by export.

Habits, XP and the operator designation are replaced wholesale when
present in the file. A corrupt file aborts the import and leaves the
database untouched.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("snapshot file is required")
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

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read snapshot: %w", err)
			}
			if err := svc.Import(ctx, data); err != nil {
				return err
			}

			// The outcome (success or corrupt-file abort) lands in the
			// system log; surface the final line.
			logs, err := svc.SystemLogs(ctx)
			if err != nil {
				return err
			}
			if len(logs) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.LogLine(logs[len(logs)-1]))
			}
			return nil
		},
	}
}
