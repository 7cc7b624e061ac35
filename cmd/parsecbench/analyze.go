package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wkb8s/sched-experiment/internal/results"
)

// analyzeBenchmark loads a benchmark's runtime log, prints per-kernel
// statistics and rewrites the derived summary CSV. A missing or empty log is
// fatal: analysis never fabricates data.
func analyzeBenchmark(cmd *cobra.Command, store *results.Store, benchmark string) error {
	records, err := store.Load(benchmark)
	if err != nil {
		return err
	}

	summary := results.Summarize(records)
	printSummary(cmd, benchmark, summary)

	if err := results.WriteSummary(store.SummaryPath(benchmark), summary); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Summary written to %s\n\n", store.SummaryPath(benchmark))
	return nil
}

func printSummary(cmd *cobra.Command, benchmark string, summary results.Summary) {
	fmt.Fprintf(cmd.OutOrStdout(), "== %s ==\n", benchmark)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "KERNEL\tMETRIC\tMEAN\tMIN\tMAX\tSTDDEV\tRUNS")
	for _, kernel := range summary.Kernels() {
		for _, category := range results.Categories {
			st := summary[kernel][category]
			fmt.Fprintf(w, "%s\t%s\t%.3f\t%.3f\t%.3f\t%.3f\t%d\n",
				kernel, category, st.Mean, st.Min, st.Max, st.Stddev, st.Count)
		}
	}
	w.Flush()
}
