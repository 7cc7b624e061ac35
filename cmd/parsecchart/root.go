package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wkb8s/sched-experiment/internal/chart"
	"github.com/wkb8s/sched-experiment/internal/config"
	"github.com/wkb8s/sched-experiment/internal/parsec"
	"github.com/wkb8s/sched-experiment/internal/results"
)

var exit = os.Exit
var cfgFile string

var (
	flagRelative  bool
	flagCategory  string
	flagOutputDir string
)

var rootCmd = &cobra.Command{
	Use:   "parsecchart [flags] BENCHMARK...",
	Short: "Render kernel-comparison charts from benchmark CSV logs",
	Long: `parsecchart reads the runtime CSV logs written by parsecbench and renders
one grouped bar chart PNG per timing category, comparing kernel versions
across the named benchmarks. With --relative every kernel's mean is divided
by the lowest kernel mean for that benchmark, so the fastest kernel plots at
exactly 1.0. The CSV inputs are never modified.`,
	Args:          cobra.MinimumNArgs(1),
	RunE:          runChart,
	SilenceErrors: true,
}

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

	rootCmd.Flags().BoolVarP(&flagRelative, "relative", "r", false, "Normalize against the best (lowest) kernel mean")
	rootCmd.Flags().StringVarP(&flagCategory, "category", "c", "", "Chart a single timing category (total, real, user or sys)")
	rootCmd.Flags().StringVarP(&flagOutputDir, "output-dir", "o", "", "Directory for PNG output (default: log directory)")
}

func initConfig() {
	config.Load(cfgFile)

	level := slog.LevelInfo
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func runChart(cmd *cobra.Command, args []string) error {
	if err := parsec.ValidateNames(args); err != nil {
		return err
	}

	categories := results.Categories
	if flagCategory != "" {
		if !slices.Contains(results.Categories, flagCategory) {
			return fmt.Errorf("invalid category %q: want one of %v", flagCategory, results.Categories)
		}
		categories = []string{flagCategory}
	}

	store, err := results.NewStore(config.LogPath())
	if err != nil {
		return err
	}

	outputDir := flagOutputDir
	if outputDir == "" {
		outputDir = store.Dir()
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	// Every log must load before anything is drawn; a missing benchmark
	// CSV fails the whole invocation.
	logs := make(map[string][]results.Record, len(args))
	for _, benchmark := range args {
		records, err := store.Load(benchmark)
		if err != nil {
			return err
		}
		logs[benchmark] = records
	}

	suffix := ".png"
	if flagRelative {
		suffix = "-relative.png"
	}

	for _, category := range categories {
		table, err := chart.Compute(logs, category, flagRelative)
		if err != nil {
			return err
		}

		outPath := filepath.Join(outputDir, strings.Join(args, "-")+"-"+category+suffix)
		if err := chart.Render(table, category, args, flagRelative, outPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Chart saved to %s\n", outPath)
	}
	return nil
}
