package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"habitexe/internal/ui"
)

func newRmCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <directive>",
		Short: "Terminate a directive and its entire history",
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
			if !yes {
				return fmt.Errorf("confirm termination of %q with --yes", h.Name)
			}
			if err := svc.DeleteHabit(ctx, h.ID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(),
				ui.Bad.Render(fmt.Sprintf("directive terminated: %s", h.Name)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation")
	return cmd
}
