package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"habitexe/internal/ui"
)

func newEditCmd() *cobra.Command {
	var name string
	var freq int

	cmd := &cobra.Command{
		Use:   "edit <directive>",
		Short: "Reconfigure a directive's name and frequency",
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

			newName := h.Name
			if cmd.Flags().Changed("name") {
				newName = name
			}
			newFreq := h.Frequency
			if cmd.Flags().Changed("freq") {
				newFreq = freq
			}

			updated, err := svc.UpdateHabit(ctx, h.ID, newName, newFreq)
			if err != nil {
				return err
			}
			if updated == nil {
				// Blank name: silent no-op.
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(),
				ui.Muted.Render(fmt.Sprintf("directive config updated: %s (freq %dd)", updated.Name, updated.Frequency)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "New directive name")
	cmd.Flags().IntVarP(&freq, "freq", "f", 1, "Expected execution interval in days (1-365)")
	return cmd
}
