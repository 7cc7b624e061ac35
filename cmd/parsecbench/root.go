package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wkb8s/sched-experiment/internal/config"
)

var exit = os.Exit
var cfgFile string

var (
	flagRepeat   int
	flagThreads  int
	flagMode     string
	flagInputSet string
)

// rootCmd is the runner/analyzer. Benchmarks are positional; execution mode
// decides whether they are run, analyzed from existing logs, or both.
var rootCmd = &cobra.Command{
	Use:   "parsecbench [flags] BENCHMARK...",
	Short: "Run PARSEC benchmarks and log elapsed times to CSV",
	Long: `parsecbench runs the named PARSEC benchmarks through parsecmgmt, parses
the elapsed-time figures out of the captured output, and appends one record
per run to the benchmark's runtime CSV log. In analyze mode it reads those
logs back and reports per-kernel summary statistics.

Individual benchmark failures are reported and skipped; the remaining
benchmarks and iterations still run.`,
	Args:          cobra.MinimumNArgs(1),
	RunE:          runBenchmarks,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.Flags().IntVarP(&flagRepeat, "repeat", "r", 1, "Number of repetitions per benchmark")
	rootCmd.Flags().IntVarP(&flagThreads, "threads", "t", 1, "Number of threads")
	rootCmd.Flags().StringVarP(&flagMode, "mode", "m", "both", "Execution mode: run, analyze or both")
	rootCmd.Flags().StringVarP(&flagInputSet, "inputset", "i", "native", "PARSEC input set (test, simdev, simsmall, simmedium, simlarge, native)")
}

// initConfig reads the config file and environment, then sets up logging.
func initConfig() {
	config.Load(cfgFile)

	level := slog.LevelInfo
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
