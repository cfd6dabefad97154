package bank

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// Store reads and writes question collections under a single bank directory.
// Every read path isolates failures per file: one corrupt collection never
// aborts a scan of the others.
type Store struct {
	dir    string
	logger *slog.Logger
}

// NewStore creates a Store rooted at dir. The directory is created if it
// does not exist yet.
func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create bank directory: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Dir returns the bank directory path.
func (s *Store) Dir() string { return s.dir }

// Keys lists the keys of all recognizable collections, sorted by filename.
// Files that do not match the naming convention are ignored.
func (s *Store) Keys() ([]Key, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read bank directory: %w", err)
	}
	var keys []Key
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if k, ok := ParseFilename(e.Name()); ok {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Filename() < keys[j].Filename() })
	return keys, nil
}

// Stock summarizes available records for one source.
type Stock struct {
	Total   int
	ByLevel map[string]int
}

// ListSources scans every collection and groups record counts by source.
// Malformed files are skipped; the scan itself never fails once the
// directory is readable.
func (s *Store) ListSources() (map[string]Stock, error) {
	keys, err := s.Keys()
	if err != nil {
		return nil, err
	}
	out := make(map[string]Stock)
	for _, k := range keys {
		qs, err := s.LoadFile(k)
		if err != nil {
			s.logger.Warn("skipping unreadable collection", "file", k.Filename(), "error", err)
			continue
		}
		st, ok := out[k.Source]
		if !ok {
			st = Stock{ByLevel: make(map[string]int)}
		}
		st.Total += len(qs)
		st.ByLevel[k.Level] += len(qs)
		out[k.Source] = st
	}
	return out, nil
}

// LoadQuestions returns every usable record for the given level across all
// collections, each tagged with its originating source. An empty source
// filter matches every source. Unreadable files are logged and skipped;
// records failing validation are diverted from the pool (the integrity
// scan reports them separately).
func (s *Store) LoadQuestions(level, source string) ([]Question, error) {
	keys, err := s.Keys()
	if err != nil {
		return nil, err
	}
	var pool []Question
	for _, k := range keys {
		if k.Level != level {
			continue
		}
		if source != "" && k.Source != source {
			continue
		}
		qs, err := s.LoadFile(k)
		if err != nil {
			s.logger.Warn("skipping unreadable collection", "file", k.Filename(), "error", err)
			continue
		}
		for _, q := range qs {
			if verr := q.Validate(); verr != nil {
				s.logger.Warn("excluding malformed record",
					"file", k.Filename(), "id", q.ID, "error", verr)
				continue
			}
			pool = append(pool, q)
		}
	}
	return pool, nil
}

// LoadFile reads one collection. Records are tagged with the key's source
// but are not validated; callers that feed an exam pool go through
// LoadQuestions instead.
func (s *Store) LoadFile(k Key) ([]Question, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, k.Filename()))
	if err != nil {
		return nil, err
	}
	var qs []Question
	if err := json.Unmarshal(data, &qs); err != nil {
		return nil, fmt.Errorf("parse %s: %w", k.Filename(), err)
	}
	for i := range qs {
		qs[i].Source = k.Source
	}
	return qs, nil
}

// SaveFile writes a whole collection as an atomic replacement: the new
// content goes to a temp file in the same directory, then renames over
// the target so a crash never leaves a half-written collection.
func (s *Store) SaveFile(k Key, qs []Question) error {
	data, err := json.MarshalIndent(qs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", k.Filename(), err)
	}
	target := filepath.Join(s.dir, k.Filename())
	tmp, err := os.CreateTemp(s.dir, k.Filename()+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", k.Filename(), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", k.Filename(), err)
	}
	return nil
}

// AppendResult reports what AppendQuestions did with a batch.
type AppendResult struct {
	Added   int
	Skipped int // dropped as duplicates of existing or in-batch question text
}

// AppendQuestions merges a batch into the collection for k. New records get
// the next unused id (max existing + 1, counting up); records whose question
// text exactly matches an existing or earlier in-batch record are skipped.
// A missing collection file starts empty.
func (s *Store) AppendQuestions(k Key, batch []Question) (AppendResult, error) {
	existing, err := s.LoadFile(k)
	if err != nil && !os.IsNotExist(err) {
		return AppendResult{}, err
	}

	seen := make(map[string]bool, len(existing))
	for _, q := range existing {
		seen[q.Text] = true
	}

	var res AppendResult
	nextID := NextID(existing)
	for _, q := range batch {
		if q.Text == "" || seen[q.Text] {
			res.Skipped++
			continue
		}
		seen[q.Text] = true
		q.ID = nextID
		q.Level = k.Level
		q.Source = k.Source
		nextID++
		existing = append(existing, q)
		res.Added++
	}

	if res.Added == 0 {
		return res, nil
	}
	if err := s.SaveFile(k, existing); err != nil {
		return AppendResult{}, err
	}
	return res, nil
}
