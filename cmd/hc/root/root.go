package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"habitchart/internal/config"
	"habitchart/internal/ui"
)

const Version = "0.1.0"

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
	dev        bool
}

var flags globalFlags

var rootCmd = &cobra.Command{
	Use:           "hc",
	Short:         "habitchart: habit completion scores from Notion",
	Long:          "habitchart turns weekly Notion task checkboxes and self-rated measures into chart data.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", config.DefaultPath(), "config file (YAML or JSON)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	pf.BoolVar(&flags.dev, "dev", false, "human-readable console logs")

	rootCmd.AddCommand(
		newInitCmd(),
		newSyncCmd(),
		newBuildCmd(),
		newReportCmd(),
		newBoardCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
