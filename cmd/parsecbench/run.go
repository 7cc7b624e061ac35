package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wkb8s/sched-experiment/internal/config"
	"github.com/wkb8s/sched-experiment/internal/parsec"
	"github.com/wkb8s/sched-experiment/internal/results"
	"github.com/wkb8s/sched-experiment/internal/sysinfo"
)

// newInvoker builds the parsecmgmt invoker; tests replace it with a fake.
var newInvoker = func(threads int, inputSet string) parsec.Invoker {
	return parsec.NewMgmtInvoker(
		viper.GetString("parsec.command"),
		viper.GetString("parsec.build_config"),
		threads,
		inputSet,
	)
}

// kernelVersion labels every appended record; tests pin it.
var kernelVersion = sysinfo.KernelVersion

func runBenchmarks(cmd *cobra.Command, args []string) error {
	if flagRepeat < 1 {
		return fmt.Errorf("repeat must be at least 1, got %d", flagRepeat)
	}
	if flagThreads < 1 {
		return fmt.Errorf("threads must be at least 1, got %d", flagThreads)
	}
	switch flagMode {
	case "run", "analyze", "both":
	default:
		return fmt.Errorf("invalid mode %q: want run, analyze or both", flagMode)
	}
	if !parsec.ValidInputSet(flagInputSet) {
		return fmt.Errorf("invalid input set %q", flagInputSet)
	}

	// Every name is checked before any subprocess starts: one unknown
	// benchmark rejects the whole invocation.
	if err := parsec.ValidateNames(args); err != nil {
		return err
	}

	kernel, err := kernelVersion()
	if err != nil {
		return err
	}
	slog.Debug("detected kernel", "version", kernel)

	store, err := results.NewStore(config.LogPath())
	if err != nil {
		return err
	}

	for _, benchmark := range args {
		if flagMode == "run" || flagMode == "both" {
			repeatBenchmark(cmd.Context(), store, kernel, benchmark)
		}
		if flagMode == "analyze" || flagMode == "both" {
			if err := analyzeBenchmark(cmd, store, benchmark); err != nil {
				return err
			}
		}
	}
	return nil
}

// repeatBenchmark runs one benchmark the configured number of times. A failed
// or unparsable run is reported and skipped; it never aborts the remaining
// iterations or benchmarks. Only a broken log write is fatal, and that is
// surfaced as a per-run error too so the other benchmarks still execute.
func repeatBenchmark(ctx context.Context, store *results.Store, kernel, benchmark string) {
	invoker := newInvoker(flagThreads, flagInputSet)

	for i := 1; i <= flagRepeat; i++ {
		output, err := invoker.Run(ctx, benchmark)
		if err != nil {
			slog.Error("benchmark run failed", "benchmark", benchmark, "iteration", i, "err", err)
			continue
		}

		if err := store.AppendRaw(kernel, benchmark, output); err != nil {
			slog.Error("failed to append raw output", "benchmark", benchmark, "err", err)
		}

		timing, err := parsec.ParseOutput(output)
		if err != nil {
			slog.Error("failed to parse benchmark output", "benchmark", benchmark, "iteration", i, "err", err)
			continue
		}

		rec := results.Record{
			Kernel:    kernel,
			Benchmark: benchmark,
			Iteration: i,
			Timestamp: time.Now(),
			Timing:    timing,
		}
		if err := store.Append(rec); err != nil {
			slog.Error("failed to append record", "benchmark", benchmark, "err", err)
			continue
		}
		slog.Info("recorded run", "benchmark", benchmark, "iteration", i, "total", timing.Total, "real", timing.Real)
	}
}
