package results

import (
	"fmt"
	"strconv"
	"time"

	"github.com/wkb8s/sched-experiment/internal/parsec"
)

// Record is one benchmark run: who ran (benchmark), under which kernel, and
// the measured seconds. Records are append-only; reruns add rows.
type Record struct {
	Kernel    string
	Benchmark string
	Iteration int
	Timestamp time.Time
	Timing    parsec.Timing
}

// Categories are the timing columns of a runtime log, in schema order.
var Categories = []string{"total", "real", "user", "sys"}

// header is the runtime CSV schema. Every row of a given log has exactly
// these columns, all times in seconds.
var header = []string{"kernel", "benchmark", "iteration", "timestamp", "total", "real", "user", "sys"}

// Value returns the timing figure for one category name.
func (r Record) Value(category string) float64 {
	switch category {
	case "total":
		return r.Timing.Total
	case "real":
		return r.Timing.Real
	case "user":
		return r.Timing.User
	case "sys":
		return r.Timing.Sys
	}
	return 0
}

func (r Record) row() []string {
	return []string{
		r.Kernel,
		r.Benchmark,
		strconv.Itoa(r.Iteration),
		r.Timestamp.Format(time.RFC3339),
		formatSeconds(r.Timing.Total),
		formatSeconds(r.Timing.Real),
		formatSeconds(r.Timing.User),
		formatSeconds(r.Timing.Sys),
	}
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func recordFromRow(row []string) (Record, error) {
	if len(row) != len(header) {
		return Record{}, fmt.Errorf("expected %d columns, got %d", len(header), len(row))
	}

	iter, err := strconv.Atoi(row[2])
	if err != nil {
		return Record{}, fmt.Errorf("bad iteration %q: %w", row[2], err)
	}
	ts, err := time.Parse(time.RFC3339, row[3])
	if err != nil {
		return Record{}, fmt.Errorf("bad timestamp %q: %w", row[3], err)
	}

	var times [4]float64
	for i, raw := range row[4:] {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Record{}, fmt.Errorf("bad %s value %q: %w", Categories[i], raw, err)
		}
		times[i] = v
	}

	return Record{
		Kernel:    row[0],
		Benchmark: row[1],
		Iteration: iter,
		Timestamp: ts,
		Timing: parsec.Timing{
			Total: times[0],
			Real:  times[1],
			User:  times[2],
			Sys:   times[3],
		},
	}, nil
}
