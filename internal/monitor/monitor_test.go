package monitor

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindProcess_NotRunning(t *testing.T) {
	pid, err := FindProcess("definitely-not-a-real-process-name")
	require.NoError(t, err)
	assert.Zero(t, pid)
}

func TestSampler_RunUntilCanceled(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "cpu_usage.csv")
	sampler := &Sampler{
		Interval: 10 * time.Millisecond,
		LogFile:  logFile,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	// Watch our own PID: it exists for the whole test, so only the context
	// stops the sampler.
	err := sampler.Run(ctx, int32(os.Getpid()))
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	f, err := os.Open(logFile)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, "timestamp", rows[0][0])
	assert.Greater(t, len(rows[0]), 1)
}

func TestWaitForProcess_Canceled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := WaitForProcess(ctx, "definitely-not-a-real-process-name")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
