package root

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"habitchart/internal/engine"
	"habitchart/internal/ui"
)

func newReportCmd() *cobra.Command {
	var week int
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print weekly category scores and measures",
		RunE: func(cmd *cobra.Command, args []string) error {
			if week < 0 {
				return fmt.Errorf("--week must be positive, got %d", week)
			}
			ctx := cmd.Context()
			e, cleanup, err := openService(ctx, false)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			last, err := e.svc.LastSync(ctx)
			if err != nil {
				return err
			}
			if last == nil {
				fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" No snapshot yet. Run `hc sync` first."))
				return nil
			}
			fmt.Fprintln(out, ui.Heading(ui.IconTarget, "Weekly report"))
			count, err := e.svc.RecordCount(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.LabelValue("Last sync", last.FinishedAt.Local().Format("2006-01-02 15:04")))
			fmt.Fprintln(out, ui.LabelValue("Records", count))
			fmt.Fprintln(out, "")

			reports, err := e.svc.Report(ctx, week)
			if err != nil {
				return err
			}
			if len(reports) == 0 {
				if week > 0 {
					fmt.Fprintln(out, ui.Muted.Render("No scores for "+engine.WeekLabel(week)+"."))
				} else {
					fmt.Fprintln(out, ui.Muted.Render("No scores yet."))
				}
				return nil
			}
			for _, r := range reports {
				printWeek(out, r)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&week, "week", "w", 0, "only this week number")
	return cmd
}

func printWeek(out io.Writer, r engine.WeekReport) {
	fmt.Fprintln(out, ui.H2.Render(ui.IconCalendar+" "+engine.WeekLabel(r.WeekNumber)))
	fmt.Fprintf(out, "  %s %s %s\n", ui.Muted.Render(pad("Category", 16)), ui.Muted.Render(pad("Tasks", 7)), ui.Muted.Render("Measure"))
	for _, row := range r.Rows {
		fmt.Fprintf(out, "  %s %s %s\n", ui.Key.Render(pad(row.Category, 16)), ui.ScoreText(row.TaskScore), ui.ScoreText(row.MeasureScore))
	}
	fmt.Fprintln(out, "")
}

func pad(s string, width int) string {
	return fmt.Sprintf("%-*s", width, s)
}
