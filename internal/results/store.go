package results

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// Store maps benchmarks to their CSV logs under one log directory and
// provides append-only writes plus full reads. A runtime log is created with
// its header row on first append and only ever grows after that.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the log directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the runtime log path for a benchmark.
func (s *Store) Path(benchmark string) string {
	return filepath.Join(s.dir, benchmark+"-runtime.csv")
}

// RawPath returns the raw parsecmgmt output log for a kernel/benchmark pair.
func (s *Store) RawPath(kernel, benchmark string) string {
	return filepath.Join(s.dir, kernel+"--"+benchmark+"-raw.txt")
}

// SummaryPath returns the derived summary CSV path for a benchmark.
func (s *Store) SummaryPath(benchmark string) string {
	return filepath.Join(s.dir, benchmark+"-summary.csv")
}

// Append adds one record to the benchmark's runtime log, writing the header
// first when the log does not exist yet.
func (s *Store) Append(rec Record) error {
	path := s.Path(rec.Benchmark)

	writeHeader := false
	if info, err := os.Stat(path); os.IsNotExist(err) || (err == nil && info.Size() == 0) {
		writeHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open runtime log %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("failed to write header to %s: %w", path, err)
		}
	}
	if err := w.Write(rec.row()); err != nil {
		return fmt.Errorf("failed to write record to %s: %w", path, err)
	}
	w.Flush()
	return w.Error()
}

// Load reads a benchmark's full runtime log. A missing or empty log is an
// error naming the file; analysis and charting never fabricate data.
func (s *Store) Load(benchmark string) ([]Record, error) {
	path := s.Path(benchmark)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no runtime log for %s: %s does not exist", benchmark, path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(rows) <= 1 {
		return nil, fmt.Errorf("runtime log %s is empty", path)
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := recordFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// AppendRaw appends one run's verbatim parsecmgmt output to the raw log.
func (s *Store) AppendRaw(kernel, benchmark, output string) error {
	path := s.RawPath(kernel, benchmark)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open raw log %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(output + "\n"); err != nil {
		return fmt.Errorf("failed to append raw output to %s: %w", path, err)
	}
	return nil
}
