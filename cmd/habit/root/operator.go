package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"habitexe/internal/ui"
)

func newOperatorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "operator [new-name]",
		Short: "Show or update the operator designation",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.New("at most one name")
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

			if len(args) == 1 {
				if err := svc.RenameOperator(ctx, args[0]); err != nil {
					return err
				}
			}
			name, err := svc.OperatorName(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("operator", name))
			return nil
		},
	}
}
