package review

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"
)

// flagHeader is the column layout of the flagged-question log.
var flagHeader = []string{
	"timestamp", "reason", "source", "level", "chapter", "id", "question",
}

// FlagEntry marks one stored question as needing human attention.
type FlagEntry struct {
	Timestamp time.Time
	Reason    string
	Source    string
	Level     string
	Chapter   string
	ID        int
	Text      string
}

// AppendFlag appends one flagged question to the log file at path,
// creating it with a header row when missing. The log is the input to
// the CSV review workflow; duplicates are allowed and left to the
// reviewer.
func AppendFlag(path string, e FlagEntry) error {
	_, statErr := os.Stat(path)
	fresh := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open flag log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write(flagHeader); err != nil {
			return err
		}
	}
	row := []string{
		e.Timestamp.Format(time.RFC3339),
		e.Reason,
		e.Source,
		e.Level,
		e.Chapter,
		strconv.Itoa(e.ID),
		flatten(e.Text),
	}
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// LoadFlags reads every flagged question from the log file at path,
// oldest first. A missing file yields an empty log.
func LoadFlags(path string) ([]FlagEntry, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open flag log: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = len(flagHeader)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading flag log: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	entries := make([]FlagEntry, 0, len(records)-1)
	for i, rec := range records[1:] {
		ts, err := time.Parse(time.RFC3339, rec[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad timestamp %q", i+2, rec[0])
		}
		id, _ := strconv.Atoi(rec[5])
		entries = append(entries, FlagEntry{
			Timestamp: ts,
			Reason:    rec[1],
			Source:    rec[2],
			Level:     rec[3],
			Chapter:   rec[4],
			ID:        id,
			Text:      rec[6],
		})
	}
	return entries, nil
}
