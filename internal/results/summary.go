package results

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes one kernel's samples for one timing category.
type Stats struct {
	Mean   float64
	Min    float64
	Max    float64
	Stddev float64
	Count  int
}

// Summary holds per-kernel, per-category statistics for one benchmark.
type Summary map[string]map[string]Stats

// Kernels returns the summarized kernel labels in sorted order.
func (s Summary) Kernels() []string {
	kernels := make([]string, 0, len(s))
	for k := range s {
		kernels = append(kernels, k)
	}
	sort.Strings(kernels)
	return kernels
}

// Summarize groups records by kernel label and computes the statistics for
// every timing category. Stddev is 0 for single-sample groups.
func Summarize(records []Record) Summary {
	grouped := make(map[string][]Record)
	for _, rec := range records {
		grouped[rec.Kernel] = append(grouped[rec.Kernel], rec)
	}

	summary := make(Summary, len(grouped))
	for kernel, recs := range grouped {
		byCategory := make(map[string]Stats, len(Categories))
		for _, category := range Categories {
			xs := make([]float64, len(recs))
			for i, rec := range recs {
				xs[i] = rec.Value(category)
			}
			st := Stats{
				Mean:  stat.Mean(xs, nil),
				Min:   floats.Min(xs),
				Max:   floats.Max(xs),
				Count: len(xs),
			}
			if len(xs) > 1 {
				st.Stddev = stat.StdDev(xs, nil)
			}
			byCategory[category] = st
		}
		summary[kernel] = byCategory
	}
	return summary
}

// GroupMeans returns the per-kernel mean of one timing category.
func GroupMeans(records []Record, category string) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, rec := range records {
		sums[rec.Kernel] += rec.Value(category)
		counts[rec.Kernel]++
	}

	means := make(map[string]float64, len(sums))
	for kernel, sum := range sums {
		means[kernel] = sum / float64(counts[kernel])
	}
	return means
}

// WriteSummary rewrites the derived summary CSV. Unlike runtime logs this is
// a derived artifact and is regenerated whole on every analyze.
func WriteSummary(path string, summary Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create summary %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"kernel", "metric", "mean", "min", "max", "stddev", "count"}); err != nil {
		return fmt.Errorf("failed to write summary header: %w", err)
	}

	for _, kernel := range summary.Kernels() {
		for _, category := range Categories {
			st := summary[kernel][category]
			row := []string{
				kernel,
				category,
				formatSeconds(st.Mean),
				formatSeconds(st.Min),
				formatSeconds(st.Max),
				formatSeconds(st.Stddev),
				strconv.Itoa(st.Count),
			}
			if err := w.Write(row); err != nil {
				return fmt.Errorf("failed to write summary row: %w", err)
			}
		}
	}
	w.Flush()
	return w.Error()
}
