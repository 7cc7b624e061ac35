// Package chart renders grouped bar charts comparing kernel versions across
// benchmarks, one PNG per timing category.
package chart

import (
	"fmt"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/wkb8s/sched-experiment/internal/results"
)

// Table is chart-ready data: kernel label -> benchmark -> value. In absolute
// mode values are mean seconds; in relative mode they are means divided by
// the benchmark's best (lowest) kernel mean, so the best kernel is 1.0.
type Table map[string]map[string]float64

// Compute builds the chart table for one timing category from the loaded
// runtime logs of every requested benchmark.
func Compute(logs map[string][]results.Record, category string, relative bool) (Table, error) {
	table := make(Table)
	for benchmark, records := range logs {
		means := results.GroupMeans(records, category)
		if len(means) == 0 {
			return nil, fmt.Errorf("no records for benchmark %s", benchmark)
		}
		if relative {
			means = Relative(means)
		}
		for kernel, v := range means {
			if table[kernel] == nil {
				table[kernel] = make(map[string]float64)
			}
			table[kernel][benchmark] = v
		}
	}
	return table, nil
}

// Relative normalizes group means against the lowest mean, putting the
// best-performing kernel at exactly 1.0 and everything else above it.
func Relative(means map[string]float64) map[string]float64 {
	var min float64
	first := true
	for _, v := range means {
		if first || v < min {
			min = v
			first = false
		}
	}
	if first || min == 0 {
		return means
	}

	normalized := make(map[string]float64, len(means))
	for kernel, v := range means {
		normalized[kernel] = v / min
	}
	return normalized
}

// Kernels returns the table's kernel labels in sorted order, so bar series
// keep a stable color and position across categories.
func (t Table) Kernels() []string {
	kernels := make([]string, 0, len(t))
	for k := range t {
		kernels = append(kernels, k)
	}
	sort.Strings(kernels)
	return kernels
}

// Render draws one grouped bar chart for a timing category and saves it as a
// PNG. Benchmarks run along the X axis with one bar series per kernel.
func Render(table Table, category string, benchmarks []string, relative bool, outPath string) error {
	kernels := table.Kernels()
	if len(kernels) == 0 {
		return fmt.Errorf("no data to plot for category %s", category)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("PARSEC %s time by kernel", category)
	p.X.Label.Text = "Benchmark"
	if relative {
		p.Y.Label.Text = "Relative to best kernel (1.0 = fastest)"
	} else {
		p.Y.Label.Text = "Seconds"
	}

	barWidth := vg.Points(20)
	for i, kernel := range kernels {
		values := make(plotter.Values, len(benchmarks))
		for j, benchmark := range benchmarks {
			values[j] = table[kernel][benchmark]
		}

		bars, err := plotter.NewBarChart(values, barWidth)
		if err != nil {
			return fmt.Errorf("failed to build bars for %s: %w", kernel, err)
		}
		bars.LineStyle.Width = 0
		bars.Color = plotutil.Color(i)
		// Center the group of series on each benchmark tick.
		bars.Offset = barWidth * vg.Length(float64(i)-float64(len(kernels)-1)/2)

		p.Add(bars)
		p.Legend.Add(kernel, bars)
	}

	p.Legend.Top = true
	p.NominalX(benchmarks...)

	if err := p.Save(8*vg.Inch, 4*vg.Inch, outPath); err != nil {
		return fmt.Errorf("failed to save chart %s: %w", outPath, err)
	}
	return nil
}
