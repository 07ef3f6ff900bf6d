package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"habitchart/internal/storage"
	"habitchart/internal/ui"
)

func newBuildCmd() *cobra.Command {
	var (
		live      bool
		outputDir string
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compute scores and write the chart JSON documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, cleanup, err := openService(ctx, live)
			if err != nil {
				return err
			}
			defer cleanup()

			charts, err := e.svc.Build(ctx, live)
			if err != nil {
				return err
			}
			dir := e.cfg.OutputDir
			if outputDir != "" {
				dir = outputDir
			}
			paths, err := e.svc.Export(charts, storage.NewChartWriter(dir))
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Created(p))
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&live, "live", false, "fetch from Notion instead of the stored snapshot")
	cmd.Flags().StringVarP(&outputDir, "out", "o", "", "output directory (overrides config)")
	return cmd
}
