// Package monitor samples per-CPU utilization while a parsecmgmt process is
// alive and logs the samples to CSV. It runs as its own process next to the
// benchmark runner, which stays strictly sequential.
package monitor

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"
)

// Sampler writes one CSV row of per-CPU percentages every Interval for as
// long as the watched PID exists.
type Sampler struct {
	Interval time.Duration
	LogFile  string
}

// FindProcess returns the PID of the first process with the given name, or 0
// when none is running.
func FindProcess(name string) (int32, error) {
	procs, err := process.Processes()
	if err != nil {
		return 0, fmt.Errorf("failed to list processes: %w", err)
	}
	for _, p := range procs {
		pname, err := p.Name()
		if err != nil {
			continue
		}
		if pname == name {
			slog.Debug("found process", "name", name, "pid", p.Pid)
			return p.Pid, nil
		}
	}
	return 0, nil
}

// WaitForProcess polls until a process with the given name appears.
func WaitForProcess(ctx context.Context, name string) (int32, error) {
	slog.Info("waiting for process to start", "name", name)
	for {
		pid, err := FindProcess(name)
		if err != nil {
			return 0, err
		}
		if pid != 0 {
			return pid, nil
		}

		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(time.Second):
		}
	}
}

// Run samples system-wide per-CPU utilization until the PID disappears or
// the context is canceled. The first row is a header naming every CPU.
func (s *Sampler) Run(ctx context.Context, pid int32) error {
	counts, err := cpu.Counts(true)
	if err != nil {
		return fmt.Errorf("failed to count CPUs: %w", err)
	}

	f, err := os.Create(s.LogFile)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", s.LogFile, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := make([]string, 0, counts+1)
	header = append(header, "timestamp")
	for i := 0; i < counts; i++ {
		header = append(header, fmt.Sprintf("cpu%d", i))
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header to %s: %w", s.LogFile, err)
	}
	w.Flush()

	for {
		exists, err := process.PidExists(pid)
		if err != nil {
			return fmt.Errorf("failed to check pid %d: %w", pid, err)
		}
		if !exists {
			slog.Info("watched process exited", "pid", pid)
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		// cpu.Percent blocks for the sampling interval and reports the
		// utilization over that window.
		percents, err := cpu.Percent(s.Interval, true)
		if err != nil {
			return fmt.Errorf("failed to sample CPU usage: %w", err)
		}

		row := make([]string, 0, len(percents)+1)
		row = append(row, time.Now().Format(time.RFC3339))
		for _, p := range percents {
			row = append(row, strconv.FormatFloat(p, 'f', 1, 64))
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write sample to %s: %w", s.LogFile, err)
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return err
		}
		slog.Debug("sampled CPU usage", "cpus", len(percents))
	}
}
