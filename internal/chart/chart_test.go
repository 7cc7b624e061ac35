package chart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wkb8s/sched-experiment/internal/parsec"
	"github.com/wkb8s/sched-experiment/internal/results"
)

func fixtureLogs() map[string][]results.Record {
	mk := func(kernel string, totals ...float64) []results.Record {
		var recs []results.Record
		for i, total := range totals {
			recs = append(recs, results.Record{
				Kernel:    kernel,
				Benchmark: "canneal",
				Iteration: i + 1,
				Timing:    parsec.Timing{Total: total},
			})
		}
		return recs
	}
	return map[string][]results.Record{
		"canneal": append(mk("A", 2, 4), mk("B", 1, 3)...),
	}
}

func TestCompute_Absolute(t *testing.T) {
	table, err := Compute(fixtureLogs(), "total", false)
	require.NoError(t, err)

	// Absolute mode reproduces the raw per-kernel means unmodified.
	assert.InDelta(t, 3.0, table["A"]["canneal"], 1e-9)
	assert.InDelta(t, 2.0, table["B"]["canneal"], 1e-9)
}

func TestCompute_Relative(t *testing.T) {
	table, err := Compute(fixtureLogs(), "total", true)
	require.NoError(t, err)

	// The best kernel normalizes to exactly 1.0 and nothing dips below it.
	assert.InDelta(t, 1.0, table["B"]["canneal"], 1e-9)
	assert.InDelta(t, 1.5, table["A"]["canneal"], 1e-9)
	for _, kernel := range table.Kernels() {
		assert.GreaterOrEqual(t, table[kernel]["canneal"], 1.0)
	}
}

func TestRelative(t *testing.T) {
	normalized := Relative(map[string]float64{"A": 3.0, "B": 2.0, "C": 5.0})

	assert.InDelta(t, 1.5, normalized["A"], 1e-9)
	assert.InDelta(t, 1.0, normalized["B"], 1e-9)
	assert.InDelta(t, 2.5, normalized["C"], 1e-9)
}

func TestRelative_Degenerate(t *testing.T) {
	assert.Empty(t, Relative(nil))

	// A zero minimum cannot be normalized against; values pass through.
	means := map[string]float64{"A": 0.0, "B": 2.0}
	assert.Equal(t, means, Relative(means))
}

func TestCompute_NoRecords(t *testing.T) {
	_, err := Compute(map[string][]results.Record{"canneal": nil}, "total", false)
	assert.ErrorContains(t, err, "canneal")
}

func TestRender(t *testing.T) {
	table, err := Compute(fixtureLogs(), "total", false)
	require.NoError(t, err)

	outPath := filepath.Join(t.TempDir(), "canneal-total.png")
	require.NoError(t, Render(table, "total", []string{"canneal"}, false, outPath))

	info, err := os.Stat(outPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRender_Empty(t *testing.T) {
	err := Render(Table{}, "total", []string{"canneal"}, false, filepath.Join(t.TempDir(), "x.png"))
	assert.Error(t, err)
}
