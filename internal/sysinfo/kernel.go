// Package sysinfo identifies the configuration a run executes under.
package sysinfo

import (
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
)

// KernelVersion returns the running kernel release (what `uname -r` prints).
// It labels every record a run appends, so a failure here is fatal to the
// whole invocation.
func KernelVersion() (string, error) {
	version, err := host.KernelVersion()
	if err != nil {
		return "", fmt.Errorf("failed to detect kernel version: %w", err)
	}
	version = strings.TrimSpace(version)
	if version == "" {
		return "", fmt.Errorf("empty kernel version reported")
	}
	return version, nil
}
