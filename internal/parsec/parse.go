package parsec

import (
	"fmt"
	"strconv"
	"strings"
)

// Timing holds the four elapsed-time figures of one benchmark run, in seconds.
// Total is the time spent in PARSEC's region of interest; Real, User and Sys
// come from the time(1) block parsecmgmt prints after the run.
type Timing struct {
	Total float64
	Real  float64
	User  float64
	Sys   float64
}

const (
	outputBegin = "[PARSEC] [---------- Beginning of output ----------]"
	outputEnd   = "[PARSEC] [----------    End of output    ----------]"

	roiMarker = "Total time spent in ROI"
)

// ParseDuration converts a time(1) duration like "1m23.456s" to seconds.
func ParseDuration(s string) (float64, error) {
	minutes, seconds, ok := strings.Cut(s, "m")
	if !ok {
		return 0, fmt.Errorf("malformed duration %q: missing minute separator", s)
	}
	m, err := strconv.ParseFloat(minutes, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed duration %q: %w", s, err)
	}
	sec, err := strconv.ParseFloat(strings.TrimSuffix(seconds, "s"), 64)
	if err != nil {
		return 0, fmt.Errorf("malformed duration %q: %w", s, err)
	}
	return m*60 + sec, nil
}

// ParseOutput extracts the timing block from one parsecmgmt run's output.
// It returns an error when no timing line is present, which covers crashed
// benchmarks whose output never reached the time(1) summary.
func ParseOutput(output string) (Timing, error) {
	var t Timing
	found := false

	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		switch {
		case strings.HasPrefix(line, "real") && len(fields) >= 2:
			v, err := ParseDuration(fields[1])
			if err != nil {
				return Timing{}, err
			}
			t.Real = v
			found = true
		case strings.HasPrefix(line, "user") && len(fields) >= 2:
			v, err := ParseDuration(fields[1])
			if err != nil {
				return Timing{}, err
			}
			t.User = v
			found = true
		case strings.HasPrefix(line, "sys") && len(fields) >= 2:
			v, err := ParseDuration(fields[1])
			if err != nil {
				return Timing{}, err
			}
			t.Sys = v
			found = true
		case strings.Contains(line, roiMarker) && len(fields) >= 1:
			raw := strings.TrimSuffix(fields[len(fields)-1], "s")
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return Timing{}, fmt.Errorf("malformed ROI time in %q: %w", line, err)
			}
			t.Total = v
			found = true
		}
	}

	if !found {
		return Timing{}, fmt.Errorf("no timing information in benchmark output")
	}
	return t, nil
}

// SplitRawOutput cuts a raw log (possibly holding many appended runs) into
// the per-run output sections framed by the PARSEC begin/end markers.
func SplitRawOutput(content string) []string {
	var sections []string
	for _, section := range strings.Split(content, outputEnd) {
		_, after, ok := strings.Cut(section, outputBegin)
		if !ok {
			continue
		}
		sections = append(sections, strings.TrimSpace(after))
	}
	return sections
}

// ParseRawLog parses every run section of a raw log, silently dropping
// sections without timing lines the way a failed run leaves them.
func ParseRawLog(content string) []Timing {
	var timings []Timing
	for _, section := range SplitRawOutput(content) {
		t, err := ParseOutput(section)
		if err != nil {
			continue
		}
		timings = append(timings, t)
	}
	return timings
}
