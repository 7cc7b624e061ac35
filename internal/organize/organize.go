// Package organize ingests externally collected benchmark result files into
// the log directory layout the analyzer and chart maker read.
package organize

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// entry describes one parsed result-file name:
// <YYYYMMDD>-<HHMM>-<kernel>-<benchmark>-<threads>-<seq>
// where the kernel release itself may contain dashes.
type entry struct {
	Date      string
	Time      string
	Kernel    string
	Benchmark string
	Threads   string
}

// parseHead splits a filename head into its components. The trailing
// sequence number is present but unused.
func parseHead(head string) (entry, error) {
	parts := strings.Split(filepath.Base(head), "-")
	if len(parts) < 6 {
		return entry{}, fmt.Errorf("malformed result name %q: want at least 6 dash-separated parts", head)
	}

	stamp := parts[0]
	if len(stamp) != 8 {
		return entry{}, fmt.Errorf("malformed date %q in %q", stamp, head)
	}

	return entry{
		Date:      stamp[:4] + "-" + stamp[4:6] + "-" + stamp[6:],
		Time:      parts[1],
		Kernel:    strings.Join(parts[2:len(parts)-3], "-"),
		Benchmark: parts[len(parts)-3],
		Threads:   parts[len(parts)-2],
	}, nil
}

// filenameHeads lists result-file prefixes (paths minus "-result.txt") in a
// directory.
func filenameHeads(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read results directory %s: %w", dir, err)
	}

	var heads []string
	for _, e := range entries {
		if name := e.Name(); strings.HasSuffix(name, "-result.txt") {
			heads = append(heads, filepath.Join(dir, strings.TrimSuffix(name, "-result.txt")))
		}
	}
	return heads, nil
}

func isEmptyFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		// A missing err file means nothing was reported.
		return true
	}
	return info.Size() == 0
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// Organize copies every result/usage file pair from resultsDir into
// per-date target directories under logDir, renamed to the
// <kernel>--<benchmark> convention. Entries whose -err.txt is non-empty are
// skipped, and one broken entry never aborts the rest.
func Organize(resultsDir, logDir string) error {
	resultsDir, err := filepath.Abs(resultsDir)
	if err != nil {
		return err
	}
	logDir, err = filepath.Abs(logDir)
	if err != nil {
		return err
	}

	heads, err := filenameHeads(resultsDir)
	if err != nil {
		return err
	}

	for _, head := range heads {
		if !isEmptyFile(head + "-err.txt") {
			slog.Error("skipping entry with non-empty error file", "head", head)
			continue
		}

		ent, err := parseHead(head)
		if err != nil {
			slog.Error("skipping unparsable result name", "head", head, "err", err)
			continue
		}

		targetDir := filepath.Join(logDir, ent.Date+"-t"+ent.Threads)
		if err := os.MkdirAll(targetDir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", targetDir, err)
		}

		dst := filepath.Join(targetDir, ent.Kernel+"--"+ent.Benchmark+"-raw.txt")
		slog.Debug("copying result file", "src", head+"-result.txt", "dst", dst)
		if err := copyFile(head+"-result.txt", dst); err != nil {
			slog.Error("failed to copy result file", "head", head, "err", err)
			continue
		}

		// The usage CSV drops the trailing sequence number from its head.
		usageHead := head
		if i := strings.LastIndex(usageHead, "-"); i >= 0 {
			usageHead = usageHead[:i]
		}
		usageSrc := usageHead + "-usage.csv"
		if _, err := os.Stat(usageSrc); err == nil {
			usageDst := filepath.Join(targetDir, ent.Kernel+"--"+ent.Benchmark+"-cpuusage.csv")
			if err := copyFile(usageSrc, usageDst); err != nil {
				slog.Error("failed to copy usage file", "head", head, "err", err)
			}
		}
	}
	return nil
}
