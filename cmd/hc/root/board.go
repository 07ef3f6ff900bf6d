package root

import (
	"github.com/spf13/cobra"

	"habitchart/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Browse weekly scores in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, cleanup, err := openService(ctx, false)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.RunBoard(ctx, e.svc, cmd.OutOrStdout())
		},
	}

	return cmd
}
