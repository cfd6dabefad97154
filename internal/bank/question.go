package bank

import (
	"fmt"
	"sort"
	"strings"
)

// Certification levels. Collections on disk use the Japanese tier names.
const (
	LevelBasic    = "二等"
	LevelAdvanced = "一等"
)

// OptionKeys are the three choice keys every question must carry.
var OptionKeys = []string{"1", "2", "3"}

// Question is a single multiple-choice record as persisted in a collection.
// Source is attached at load time from the owning collection's key and is
// not written back to disk.
type Question struct {
	ID          int               `json:"id"`
	Level       string            `json:"level"`
	Chapter     string            `json:"chapter"`
	Text        string            `json:"question"`
	Options     map[string]string `json:"options"`
	Answer      string            `json:"answer"`
	Explanation string            `json:"explanation"`

	Source string `json:"-"`
}

// Validate reports why a record is unusable, or nil if it is well-formed:
// all core fields present, exactly the three option keys, and the answer
// key present among the options.
func (q Question) Validate() error {
	if missing := q.MissingFields(); len(missing) > 0 {
		return fmt.Errorf("missing fields: %s", strings.Join(missing, ", "))
	}
	if len(q.Options) != len(OptionKeys) {
		return fmt.Errorf("expected %d options, got %d", len(OptionKeys), len(q.Options))
	}
	for _, k := range OptionKeys {
		if v, ok := q.Options[k]; !ok || v == "" {
			return fmt.Errorf("option %q is missing or empty", k)
		}
	}
	if _, ok := q.Options[q.Answer]; !ok {
		return fmt.Errorf("answer %q is not an option key", q.Answer)
	}
	return nil
}

// MissingFields lists the names of required fields that are empty.
func (q Question) MissingFields() []string {
	var missing []string
	if q.Text == "" {
		missing = append(missing, "question")
	}
	if q.Level == "" {
		missing = append(missing, "level")
	}
	if q.Chapter == "" {
		missing = append(missing, "chapter")
	}
	if len(q.Options) == 0 {
		missing = append(missing, "options")
	}
	if q.Answer == "" {
		missing = append(missing, "answer")
	}
	if q.Explanation == "" {
		missing = append(missing, "explanation")
	}
	return missing
}

// OptionList returns the option texts in key order ("1", "2", "3").
func (q Question) OptionList() []string {
	out := make([]string, 0, len(OptionKeys))
	for _, k := range OptionKeys {
		out = append(out, q.Options[k])
	}
	return out
}

// NextID returns the smallest id strictly greater than every id in qs.
// An empty slice yields 1.
func NextID(qs []Question) int {
	max := 0
	for _, q := range qs {
		if q.ID > max {
			max = q.ID
		}
	}
	return max + 1
}

// SortByID orders records ascending by id, in place.
func SortByID(qs []Question) {
	sort.Slice(qs, func(i, j int) bool { return qs[i].ID < qs[j].ID })
}
