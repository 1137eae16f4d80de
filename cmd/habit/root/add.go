package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"habitexe/internal/ui"
)

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Initialize a new directive",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("name is required")
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

			h, err := svc.CreateHabit(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			if h == nil {
				// Blank names are a silent no-op.
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(),
				ui.Good.Render(fmt.Sprintf("new directive initialized: %s", h.Name)))
			return nil
		},
	}
}
