package results

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wkb8s/sched-experiment/internal/parsec"
)

func testRecord(kernel string, iteration int, total float64) Record {
	return Record{
		Kernel:    kernel,
		Benchmark: "blackscholes",
		Iteration: iteration,
		Timestamp: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Timing:    parsec.Timing{Total: total, Real: total + 1, User: total * 2, Sys: 0.5},
	}
}

func TestStore_AppendAndLoad(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Append(testRecord("6.1.0", 1, 10)))
	require.NoError(t, store.Append(testRecord("6.1.0", 2, 12)))

	records, err := store.Load("blackscholes")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "6.1.0", records[0].Kernel)
	assert.Equal(t, "blackscholes", records[0].Benchmark)
	assert.Equal(t, 1, records[0].Iteration)
	assert.InDelta(t, 10.0, records[0].Timing.Total, 1e-9)
	assert.InDelta(t, 11.0, records[0].Timing.Real, 1e-9)
	assert.InDelta(t, 20.0, records[0].Timing.User, 1e-9)
	assert.InDelta(t, 0.5, records[0].Timing.Sys, 1e-9)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), records[0].Timestamp.UTC())
}

func TestStore_HeaderWrittenOnce(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Append(testRecord("6.1.0", 1, 10)))
	require.NoError(t, store.Append(testRecord("6.2.0", 1, 11)))

	data, err := os.ReadFile(store.Path("blackscholes"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "kernel,benchmark,iteration,timestamp,total,real,user,sys", lines[0])
}

func TestStore_AppendOnlyAcrossStores(t *testing.T) {
	dir := t.TempDir()

	// Two separate invocations with one run each yield two rows total.
	for i := 1; i <= 2; i++ {
		store, err := NewStore(dir)
		require.NoError(t, err)
		require.NoError(t, store.Append(testRecord("6.1.0", 1, float64(i))))
	}

	store, err := NewStore(dir)
	require.NoError(t, err)
	records, err := store.Load("blackscholes")
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestStore_LoadMissing(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load("blackscholes")
	require.Error(t, err)
	assert.ErrorContains(t, err, store.Path("blackscholes"))
}

func TestStore_LoadEmpty(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(store.Path("blackscholes"), []byte("kernel,benchmark,iteration,timestamp,total,real,user,sys\n"), 0644))

	_, err = store.Load("blackscholes")
	assert.ErrorContains(t, err, "empty")
}

func TestStore_Paths(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "ferret-runtime.csv"), store.Path("ferret"))
	assert.Equal(t, filepath.Join(dir, "6.1.0--ferret-raw.txt"), store.RawPath("6.1.0", "ferret"))
	assert.Equal(t, filepath.Join(dir, "ferret-summary.csv"), store.SummaryPath("ferret"))
}

func TestStore_AppendRaw(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.AppendRaw("6.1.0", "ferret", "first run"))
	require.NoError(t, store.AppendRaw("6.1.0", "ferret", "second run"))

	data, err := os.ReadFile(store.RawPath("6.1.0", "ferret"))
	require.NoError(t, err)
	assert.Equal(t, "first run\nsecond run\n", string(data))
}
