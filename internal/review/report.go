package review

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"
)

// reportHeader is the column layout of the attempt log.
var reportHeader = []string{
	"timestamp", "level", "source", "mode",
	"total", "correct", "percent", "passed", "elapsed_seconds",
}

// ReportEntry is one finished exam attempt.
type ReportEntry struct {
	Timestamp time.Time
	Level     string
	Source    string
	Mode      string // "real" or "practice"
	Total     int
	Correct   int
	Percent   int
	Passed    bool
	Elapsed   time.Duration
}

// AppendReport appends one attempt to the log file at path, creating it
// with a header row when missing.
func AppendReport(path string, e ReportEntry) error {
	_, statErr := os.Stat(path)
	fresh := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open report log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write(reportHeader); err != nil {
			return err
		}
	}
	row := []string{
		e.Timestamp.Format(time.RFC3339),
		e.Level,
		e.Source,
		e.Mode,
		strconv.Itoa(e.Total),
		strconv.Itoa(e.Correct),
		strconv.Itoa(e.Percent),
		strconv.FormatBool(e.Passed),
		strconv.Itoa(int(e.Elapsed.Seconds())),
	}
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// LoadReports reads every attempt from the log file at path, oldest
// first. A missing file yields an empty history.
func LoadReports(path string) ([]ReportEntry, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open report log: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = len(reportHeader)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading report log: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	entries := make([]ReportEntry, 0, len(records)-1)
	for i, rec := range records[1:] {
		ts, err := time.Parse(time.RFC3339, rec[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad timestamp %q", i+2, rec[0])
		}
		total, _ := strconv.Atoi(rec[4])
		correct, _ := strconv.Atoi(rec[5])
		percent, _ := strconv.Atoi(rec[6])
		passed, _ := strconv.ParseBool(rec[7])
		elapsed, _ := strconv.Atoi(rec[8])
		entries = append(entries, ReportEntry{
			Timestamp: ts,
			Level:     rec[1],
			Source:    rec[2],
			Mode:      rec[3],
			Total:     total,
			Correct:   correct,
			Percent:   percent,
			Passed:    passed,
			Elapsed:   time.Duration(elapsed) * time.Second,
		})
	}
	return entries, nil
}
