package main

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wkb8s/sched-experiment/internal/config"
	"github.com/wkb8s/sched-experiment/internal/monitor"
)

var (
	monitorLogFile  string
	monitorInterval float64
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Sample per-CPU usage while a parsecmgmt process runs",
	Long: `Waits for a parsecmgmt process to appear, then samples system-wide per-CPU
utilization at a fixed interval into a CSV file until the process exits.
Run it in a separate terminal next to 'parsecbench BENCHMARK...'.`,
	Args: cobra.NoArgs,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
	monitorCmd.Flags().StringVarP(&monitorLogFile, "log-file", "l", "", "CSV output file (default: <log_path>/cpu_usage.csv)")
	monitorCmd.Flags().Float64Var(&monitorInterval, "interval", 0, "Seconds between samples (default: configured monitor.interval)")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	logFile := monitorLogFile
	if logFile == "" {
		logFile = filepath.Join(config.LogPath(), "cpu_usage.csv")
	}
	interval := monitorInterval
	if interval <= 0 {
		interval = viper.GetFloat64("monitor.interval")
	}
	processName := viper.GetString("monitor.process_name")

	pid, err := monitor.WaitForProcess(cmd.Context(), processName)
	if err != nil {
		return err
	}
	slog.Info("monitoring process", "name", processName, "pid", pid, "log", logFile)

	sampler := &monitor.Sampler{
		Interval: time.Duration(interval * float64(time.Second)),
		LogFile:  logFile,
	}
	return sampler.Run(cmd.Context(), pid)
}
