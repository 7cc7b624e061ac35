package main

import (
	"github.com/spf13/cobra"

	"github.com/wkb8s/sched-experiment/internal/config"
	"github.com/wkb8s/sched-experiment/internal/organize"
)

var organizeLogDir string

var organizeCmd = &cobra.Command{
	Use:   "organize RESULTS_DIR",
	Short: "Ingest externally collected result files into the log layout",
	Long: `Copies <stamp>-<kernel>-<benchmark>-<threads>-result.txt captures (and their
-usage.csv companions) from RESULTS_DIR into per-date directories under the
log directory, renamed to the <kernel>--<benchmark> convention. Entries with
a non-empty -err.txt are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runOrganize,
}

func init() {
	rootCmd.AddCommand(organizeCmd)
	organizeCmd.Flags().StringVar(&organizeLogDir, "log-dir", "", "Target log directory (default: configured log_path)")
}

func runOrganize(cmd *cobra.Command, args []string) error {
	logDir := organizeLogDir
	if logDir == "" {
		logDir = config.LogPath()
	}
	return organize.Organize(args[0], logDir)
}
