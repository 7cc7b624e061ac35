package parsec

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
)

// Invoker runs one benchmark once and returns the captured output.
type Invoker interface {
	Run(ctx context.Context, benchmark string) (string, error)
}

// MgmtInvoker implements Invoker by shelling out to parsecmgmt.
type MgmtInvoker struct {
	// Command is the parsecmgmt executable name or path.
	Command string
	// BuildConfig is the PARSEC build configuration (-c), e.g. gcc-hooks.
	BuildConfig string
	Threads     int
	InputSet    string
}

func NewMgmtInvoker(command, buildConfig string, threads int, inputSet string) *MgmtInvoker {
	return &MgmtInvoker{
		Command:     command,
		BuildConfig: buildConfig,
		Threads:     threads,
		InputSet:    inputSet,
	}
}

func (m *MgmtInvoker) args(benchmark string) []string {
	// parsecmgmt -a run -x pre -p <bench> -n <threads> -c <config> -i <inputset>
	return []string{
		"-a", "run",
		"-x", "pre",
		"-p", benchmark,
		"-n", strconv.Itoa(m.Threads),
		"-c", m.BuildConfig,
		"-i", m.InputSet,
	}
}

// Run invokes parsecmgmt for one benchmark run, blocking until it exits.
// Stdout and stderr are captured together; the timing lines the parser needs
// come from the PARSEC run hooks on stdout.
func (m *MgmtInvoker) Run(ctx context.Context, benchmark string) (string, error) {
	args := m.args(benchmark)
	slog.Debug("executing benchmark", "cmd", m.Command+" "+strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, m.Command, args...)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return out.String(), fmt.Errorf("%s %s failed: %w", m.Command, benchmark, err)
	}
	return out.String(), nil
}
