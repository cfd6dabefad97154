// Package review handles the human review round trip: exporting stored
// questions to CSV for editing in a spreadsheet, and importing the
// edited rows back into the bank.
package review

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/dronecbt/internal/bank"
	"github.com/abhisek/dronecbt/internal/exam"
)

// csvHeader is the column layout of the review sheet. Option columns
// follow the option key order.
var csvHeader = []string{
	"source", "id", "level", "chapter", "question",
	"option1", "option2", "option3",
	"answer", "explanation",
}

// Export writes all questions for the given level and source as CSV.
// An empty source exports every collection of the level. Returns the
// number of rows written.
func Export(store *bank.Store, level, source string, w io.Writer) (int, error) {
	qs, err := store.LoadQuestions(level, source)
	if err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return 0, err
	}
	for _, q := range qs {
		// Multi-line cells confuse spreadsheet row filters; flatten.
		row := []string{
			q.Source,
			strconv.Itoa(q.ID),
			q.Level,
			q.Chapter,
			flatten(q.Text),
			flatten(q.Options["1"]),
			flatten(q.Options["2"]),
			flatten(q.Options["3"]),
			q.Answer,
			flatten(q.Explanation),
		}
		if err := cw.Write(row); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, err
	}
	return len(qs), nil
}

// ImportResult summarizes an import.
type ImportResult struct {
	Updated   int // rows that matched a stored question and were applied
	Unmatched int // rows whose source/level/chapter/id had no stored question
	Files     int // collection files rewritten
}

// Import reads edited review rows and applies them to the bank. For
// each matching stored question the editable fields (question text,
// options, answer, explanation) are overwritten; id, level, chapter and
// source are identity and never change. Every touched file is backed up
// next to the original before it is rewritten.
func Import(store *bank.Store, r io.Reader, logger *slog.Logger) (ImportResult, error) {
	if logger == nil {
		logger = slog.Default()
	}

	rows, err := readRows(r)
	if err != nil {
		return ImportResult{}, err
	}

	// Group rows by collection file so each file is rewritten once.
	groups := make(map[bank.Key][]row)
	var keys []bank.Key
	for _, rw := range rows {
		k := bank.Key{Source: rw.source, Level: rw.level, ChapterID: exam.ChapterNum(rw.chapter)}
		if _, seen := groups[k]; !seen {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], rw)
	}

	var result ImportResult
	for _, k := range keys {
		updated, unmatched, err := applyGroup(store, k, groups[k], logger)
		if err != nil {
			return result, err
		}
		result.Updated += updated
		result.Unmatched += unmatched
		if updated > 0 {
			result.Files++
		}
	}
	return result, nil
}

type row struct {
	source      string
	id          int
	level       string
	chapter     string
	options     map[string]string
	text        string
	answer      string
	explanation string
}

func readRows(r io.Reader) ([]row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV is empty")
	}
	for i, name := range csvHeader {
		if records[0][i] != name {
			return nil, fmt.Errorf("unexpected CSV header: column %d is %q, want %q", i+1, records[0][i], name)
		}
	}

	rows := make([]row, 0, len(records)-1)
	for i, rec := range records[1:] {
		id, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad id %q", i+2, rec[1])
		}
		rows = append(rows, row{
			source:  rec[0],
			id:      id,
			level:   rec[2],
			chapter: rec[3],
			text:    rec[4],
			options: map[string]string{
				"1": rec[5],
				"2": rec[6],
				"3": rec[7],
			},
			answer:      rec[8],
			explanation: rec[9],
		})
	}
	return rows, nil
}

func applyGroup(store *bank.Store, k bank.Key, rows []row, logger *slog.Logger) (updated, unmatched int, err error) {
	qs, err := store.LoadFile(k)
	if os.IsNotExist(err) {
		logger.Warn("import rows reference a missing collection",
			"file", k.Filename(), "rows", len(rows))
		return 0, len(rows), nil
	}
	if err != nil {
		return 0, 0, fmt.Errorf("loading %s: %w", k, err)
	}

	byID := make(map[int]int, len(qs))
	for i, q := range qs {
		byID[q.ID] = i
	}

	for _, rw := range rows {
		i, ok := byID[rw.id]
		if !ok {
			unmatched++
			logger.Warn("import row has no stored question",
				"file", k.Filename(), "id", rw.id)
			continue
		}
		qs[i].Text = rw.text
		qs[i].Options = rw.options
		qs[i].Answer = rw.answer
		qs[i].Explanation = rw.explanation
		updated++
	}
	if updated == 0 {
		return 0, unmatched, nil
	}

	if err := backupFile(store, k); err != nil {
		return 0, unmatched, err
	}
	if err := store.SaveFile(k, qs); err != nil {
		return 0, unmatched, fmt.Errorf("saving %s: %w", k, err)
	}
	return updated, unmatched, nil
}

func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// backupFile copies the current collection file to <name>.<timestamp>.bak
// before it gets rewritten. Missing originals are not an error.
func backupFile(store *bank.Store, k bank.Key) error {
	src := filepath.Join(store.Dir(), k.Filename())
	data, err := os.ReadFile(src)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	dst := fmt.Sprintf("%s.%s.bak", src, time.Now().Format("20060102-150405"))
	return os.WriteFile(dst, data, 0o644)
}
