package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"habitchart/internal/ui"
)

func newSyncCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch both Notion databases and replace the local snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, cleanup, err := openService(ctx, true)
			if err != nil {
				return err
			}
			defer cleanup()

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconSync, "Syncing from Notion"))
			res, err := e.svc.Sync(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.LabelValue("Task rows", fmt.Sprintf("%d → %d day records", res.Run.TaskRows, res.Run.TaskRecords)))
			fmt.Fprintln(out, ui.LabelValue("Measure rows", fmt.Sprintf("%d → %d measures", res.Run.MeasureRows, res.Run.MeasureRecords)))
			if len(res.Drops) > 0 {
				fmt.Fprintln(out, ui.Warn.Render(fmt.Sprintf("%s %d rows skipped", ui.IconWarn, len(res.Drops))))
				if verbose {
					for _, d := range res.Drops {
						fmt.Fprintf(out, "  - %s row %d: %s\n", d.Kind, d.Row, ui.Muted.Render(d.Reason))
					}
				}
			}
			fmt.Fprintln(out, ui.Good.Render(ui.IconCheck+" Snapshot updated"))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "list skipped rows")
	return cmd
}
