package main

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wkb8s/sched-experiment/internal/config"
	"github.com/wkb8s/sched-experiment/internal/parsec"
	"github.com/wkb8s/sched-experiment/internal/results"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Re-analyze every raw log under the log directory",
	Long: `Walks the log directory recursively, re-parses each <kernel>--<benchmark>-raw.txt
file and rewrites its summary CSV. Useful after raw logs were ingested with
'organize' or when a parser fix should be applied to old captures. The
append-only runtime CSVs are never touched.`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	logPath := config.LogPath()

	var rawFiles []string
	err := filepath.WalkDir(logPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), "-raw.txt") {
			rawFiles = append(rawFiles, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk %s: %w", logPath, err)
	}
	if len(rawFiles) == 0 {
		return fmt.Errorf("no raw logs found under %s", logPath)
	}

	for _, rawFile := range rawFiles {
		if err := scanRawFile(cmd, rawFile); err != nil {
			// Keep scanning the rest; one broken capture is not fatal.
			slog.Error("failed to scan raw log", "file", rawFile, "err", err)
		}
	}
	return nil
}

func scanRawFile(cmd *cobra.Command, rawFile string) error {
	kernel, benchmark, err := splitRawName(rawFile)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(rawFile)
	if err != nil {
		return err
	}

	timings := parsec.ParseRawLog(string(content))
	if len(timings) == 0 {
		return fmt.Errorf("no parsable run sections in %s", rawFile)
	}

	records := make([]results.Record, len(timings))
	for i, t := range timings {
		records[i] = results.Record{
			Kernel:    kernel,
			Benchmark: benchmark,
			Iteration: i + 1,
			Timing:    t,
		}
	}

	summary := results.Summarize(records)
	summaryFile := strings.TrimSuffix(rawFile, "-raw.txt") + "-summary.csv"
	if err := results.WriteSummary(summaryFile, summary); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d runs\n", rawFile, len(timings))
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMEAN\tMIN\tMAX\tSTDDEV")
	for _, category := range results.Categories {
		st := summary[kernel][category]
		fmt.Fprintf(w, "%s\t%.3f\t%.3f\t%.3f\t%.3f\n", category, st.Mean, st.Min, st.Max, st.Stddev)
	}
	w.Flush()
	fmt.Fprintf(cmd.OutOrStdout(), "Summary written to %s\n\n", summaryFile)
	return nil
}

// splitRawName extracts kernel and benchmark from a
// <kernel>--<benchmark>-raw.txt path. Kernel releases contain single dashes,
// so the double dash is the only safe separator.
func splitRawName(path string) (kernel, benchmark string, err error) {
	name := strings.TrimSuffix(filepath.Base(path), "-raw.txt")
	kernel, benchmark, ok := strings.Cut(name, "--")
	if !ok || kernel == "" || benchmark == "" {
		return "", "", fmt.Errorf("raw log name %q does not match <kernel>--<benchmark>-raw.txt", filepath.Base(path))
	}
	return kernel, benchmark, nil
}
