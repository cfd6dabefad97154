package review

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abhisek/dronecbt/internal/bank"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testStore(t *testing.T) *bank.Store {
	t.Helper()
	s, err := bank.NewStore(t.TempDir(), discardLogger())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func seedQuestions(t *testing.T, s *bank.Store, k bank.Key, texts ...string) {
	t.Helper()
	var qs []bank.Question
	for _, text := range texts {
		qs = append(qs, bank.Question{
			Chapter:     fmt.Sprintf("第%d章", k.ChapterID),
			Text:        text,
			Options:     map[string]string{"1": "あ", "2": "い", "3": "う"},
			Answer:      "1",
			Explanation: "解説。",
		})
	}
	if _, err := s.AppendQuestions(k, qs); err != nil {
		t.Fatalf("AppendQuestions: %v", err)
	}
}

func TestExport_WritesHeaderAndRows(t *testing.T) {
	s := testStore(t)
	k := bank.Key{Source: "gemini", Level: "二等", ChapterID: 2}
	seedQuestions(t, s, k, "問題1", "問題2")

	var buf bytes.Buffer
	n, err := Export(s, "二等", "gemini", &buf)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if n != 2 {
		t.Errorf("rows = %d, want 2", n)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	// The column order is the sheet contract; editors built against it
	// break if it drifts.
	wantHeader := "source,id,level,chapter,question,option1,option2,option3,answer,explanation"
	if lines[0] != wantHeader {
		t.Errorf("header = %q, want %q", lines[0], wantHeader)
	}
	if !strings.Contains(lines[1], "問題1") {
		t.Errorf("first row missing question text: %q", lines[1])
	}
}

func TestExport_EmptySourceExportsAllCollections(t *testing.T) {
	s := testStore(t)
	seedQuestions(t, s, bank.Key{Source: "gemini", Level: "二等", ChapterID: 2}, "問題A")
	seedQuestions(t, s, bank.Key{Source: "claude", Level: "二等", ChapterID: 2}, "問題B")
	seedQuestions(t, s, bank.Key{Source: "gemini", Level: "一等", ChapterID: 2}, "問題C")

	var buf bytes.Buffer
	n, err := Export(s, "二等", "", &buf)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if n != 2 {
		t.Errorf("rows = %d, want 2 (一等 must be excluded)", n)
	}
}

func TestImport_OverwritesEditableFields(t *testing.T) {
	s := testStore(t)
	k := bank.Key{Source: "gemini", Level: "二等", ChapterID: 2}
	seedQuestions(t, s, k, "元の問題")

	csvData := strings.Join([]string{
		"source,id,level,chapter,question,option1,option2,option3,answer,explanation",
		"gemini,1,二等,第2章,直した問題,新あ,新い,新う,2,直した解説",
	}, "\n")

	res, err := Import(s, strings.NewReader(csvData), discardLogger())
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.Updated != 1 || res.Unmatched != 0 || res.Files != 1 {
		t.Fatalf("result = %+v, want 1 updated, 0 unmatched, 1 file", res)
	}

	qs, err := s.LoadFile(k)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	q := qs[0]
	if q.Text != "直した問題" {
		t.Errorf("Text = %q, want 直した問題", q.Text)
	}
	if q.Answer != "2" {
		t.Errorf("Answer = %q, want 2", q.Answer)
	}
	if q.Options["1"] != "新あ" {
		t.Errorf("option 1 = %q, want 新あ", q.Options["1"])
	}
	if q.ID != 1 {
		t.Errorf("ID = %d, identity fields must not change", q.ID)
	}
}

func TestImport_CreatesBackup(t *testing.T) {
	s := testStore(t)
	k := bank.Key{Source: "gemini", Level: "二等", ChapterID: 2}
	seedQuestions(t, s, k, "元の問題")

	csvData := strings.Join([]string{
		"source,id,level,chapter,question,option1,option2,option3,answer,explanation",
		"gemini,1,二等,第2章,直した問題,あ,い,う,1,解説",
	}, "\n")
	if _, err := Import(s, strings.NewReader(csvData), discardLogger()); err != nil {
		t.Fatalf("Import: %v", err)
	}

	backups, err := filepath.Glob(filepath.Join(s.Dir(), k.Filename()+".*.bak"))
	if err != nil {
		t.Fatalf("Glob: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("got %d backups, want 1", len(backups))
	}
	data, err := os.ReadFile(backups[0])
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "元の問題") {
		t.Error("backup should hold the pre-import content")
	}
}

func TestImport_UnmatchedIDCounted(t *testing.T) {
	s := testStore(t)
	k := bank.Key{Source: "gemini", Level: "二等", ChapterID: 2}
	seedQuestions(t, s, k, "元の問題")

	csvData := strings.Join([]string{
		"source,id,level,chapter,question,option1,option2,option3,answer,explanation",
		"gemini,99,二等,第2章,未知のID,あ,い,う,1,解説",
	}, "\n")
	res, err := Import(s, strings.NewReader(csvData), discardLogger())
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.Updated != 0 || res.Unmatched != 1 {
		t.Errorf("result = %+v, want 0 updated, 1 unmatched", res)
	}

	// No edit, no backup.
	backups, _ := filepath.Glob(filepath.Join(s.Dir(), "*.bak"))
	if len(backups) != 0 {
		t.Errorf("got %d backups, want none", len(backups))
	}
}

func TestImport_MissingCollectionAllUnmatched(t *testing.T) {
	s := testStore(t)
	csvData := strings.Join([]string{
		"source,id,level,chapter,question,option1,option2,option3,answer,explanation",
		"nobody,1,二等,第2章,問題,あ,い,う,1,解説",
	}, "\n")
	res, err := Import(s, strings.NewReader(csvData), discardLogger())
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.Unmatched != 1 {
		t.Errorf("Unmatched = %d, want 1", res.Unmatched)
	}
}

func TestImport_RejectsBadHeader(t *testing.T) {
	s := testStore(t)
	csvData := "id,source,level\n1,gemini,二等"
	if _, err := Import(s, strings.NewReader(csvData), discardLogger()); err == nil {
		t.Fatal("expected error for wrong header")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	s := testStore(t)
	k := bank.Key{Source: "gemini", Level: "二等", ChapterID: 3}
	seedQuestions(t, s, k, "往復する問題")

	var buf bytes.Buffer
	if _, err := Export(s, "二等", "gemini", &buf); err != nil {
		t.Fatalf("Export: %v", err)
	}
	res, err := Import(s, &buf, discardLogger())
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.Updated != 1 {
		t.Errorf("Updated = %d, want 1", res.Updated)
	}

	qs, err := s.LoadFile(k)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if qs[0].Text != "往復する問題" {
		t.Errorf("Text = %q after round trip", qs[0].Text)
	}
}
