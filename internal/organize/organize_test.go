package organize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHead(t *testing.T) {
	ent, err := parseHead("/results/20240131-0930-6.1.0-rc1-blackscholes-4-1")
	require.NoError(t, err)

	assert.Equal(t, "2024-01-31", ent.Date)
	assert.Equal(t, "0930", ent.Time)
	assert.Equal(t, "6.1.0-rc1", ent.Kernel)
	assert.Equal(t, "blackscholes", ent.Benchmark)
	assert.Equal(t, "4", ent.Threads)
}

func TestParseHead_Malformed(t *testing.T) {
	_, err := parseHead("/results/short-name")
	assert.Error(t, err)

	_, err = parseHead("/results/2024-0930-6.1.0-rc1-blackscholes-4-1")
	assert.ErrorContains(t, err, "malformed date")
}

func TestOrganize(t *testing.T) {
	resultsDir := t.TempDir()
	logDir := t.TempDir()

	head := filepath.Join(resultsDir, "20240131-0930-6.1.0-rc1-blackscholes-4-1")
	require.NoError(t, os.WriteFile(head+"-result.txt", []byte("raw output"), 0644))
	require.NoError(t, os.WriteFile(head+"-err.txt", nil, 0644))
	usage := filepath.Join(resultsDir, "20240131-0930-6.1.0-rc1-blackscholes-4-usage.csv")
	require.NoError(t, os.WriteFile(usage, []byte("timestamp,cpu0\n"), 0644))

	require.NoError(t, Organize(resultsDir, logDir))

	targetDir := filepath.Join(logDir, "2024-01-31-t4")
	data, err := os.ReadFile(filepath.Join(targetDir, "6.1.0-rc1--blackscholes-raw.txt"))
	require.NoError(t, err)
	assert.Equal(t, "raw output", string(data))

	_, err = os.Stat(filepath.Join(targetDir, "6.1.0-rc1--blackscholes-cpuusage.csv"))
	assert.NoError(t, err)
}

func TestOrganize_SkipsFailedRuns(t *testing.T) {
	resultsDir := t.TempDir()
	logDir := t.TempDir()

	head := filepath.Join(resultsDir, "20240131-0930-6.1.0-rc1-blackscholes-4-1")
	require.NoError(t, os.WriteFile(head+"-result.txt", []byte("raw output"), 0644))
	require.NoError(t, os.WriteFile(head+"-err.txt", []byte("oom-killed"), 0644))

	require.NoError(t, Organize(resultsDir, logDir))

	_, err := os.Stat(filepath.Join(logDir, "2024-01-31-t4"))
	assert.True(t, os.IsNotExist(err))
}

func TestOrganize_MissingResultsDir(t *testing.T) {
	err := Organize(filepath.Join(t.TempDir(), "nope"), t.TempDir())
	assert.Error(t, err)
}
