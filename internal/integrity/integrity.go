// Package integrity scans the question bank for records an exam cannot
// use: missing fields, duplicate or unset ids, unreadable collection
// files. Findings are written to a status artifact so the next check
// run (or the user) can see what needs attention.
package integrity

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/abhisek/dronecbt/internal/bank"
)

// Issue states.
const (
	StateMissingFields = "missing_fields"
	StateInvalid       = "invalid"
	StateDuplicateID   = "duplicate_id"
	StateUnsetID       = "unset_id"
	StateUnreadable    = "unreadable"
)

// Issue is one finding from a bank scan.
type Issue struct {
	File          string   `json:"file"`
	ID            int      `json:"id,omitempty"`
	State         string   `json:"state"`
	MissingFields []string `json:"missing_fields,omitempty"`
	Detail        string   `json:"detail,omitempty"`
}

// Scan checks every collection in the store and returns all findings,
// ordered by filename then id. A clean bank yields an empty slice.
func Scan(store *bank.Store) ([]Issue, error) {
	keys, err := store.Keys()
	if err != nil {
		return nil, err
	}

	var issues []Issue
	for _, k := range keys {
		qs, err := store.LoadFile(k)
		if err != nil {
			issues = append(issues, Issue{
				File:  k.Filename(),
				State: StateUnreadable,
			})
			continue
		}
		seen := make(map[int]bool, len(qs))
		for _, q := range qs {
			switch {
			case q.ID == 0:
				issues = append(issues, Issue{
					File:  k.Filename(),
					State: StateUnsetID,
				})
			case seen[q.ID]:
				issues = append(issues, Issue{
					File:  k.Filename(),
					ID:    q.ID,
					State: StateDuplicateID,
				})
			default:
				seen[q.ID] = true
			}
			if missing := q.MissingFields(); len(missing) > 0 {
				issues = append(issues, Issue{
					File:          k.Filename(),
					ID:            q.ID,
					State:         StateMissingFields,
					MissingFields: missing,
				})
			} else if err := q.Validate(); err != nil {
				// Complete records can still be unusable, e.g. the
				// answer does not name any option key.
				issues = append(issues, Issue{
					File:   k.Filename(),
					ID:     q.ID,
					State:  StateInvalid,
					Detail: err.Error(),
				})
			}
		}
	}
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].File != issues[j].File {
			return issues[i].File < issues[j].File
		}
		return issues[i].ID < issues[j].ID
	})
	return issues, nil
}

// WriteStatus persists the scan result as a JSON artifact at path. A
// clean scan removes the artifact so its presence alone signals that
// the bank needs attention.
func WriteStatus(path string, issues []Issue) error {
	if len(issues) == 0 {
		err := os.Remove(path)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("clearing status file: %w", err)
		}
		return nil
	}
	data, err := json.MarshalIndent(issues, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadStatus reads a previously written status artifact. A missing file
// means the last scan was clean.
func LoadStatus(path string) ([]Issue, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var issues []Issue
	if err := json.Unmarshal(data, &issues); err != nil {
		return nil, fmt.Errorf("parse status file: %w", err)
	}
	return issues, nil
}

// Repair rewrites one collection with ids reassigned sequentially from
// 1, fixing duplicate and unset ids while keeping record order. Returns
// the number of records whose id changed. Missing field issues are left
// for the review workflow; an id rewrite cannot invent content.
func Repair(store *bank.Store, k bank.Key) (int, error) {
	qs, err := store.LoadFile(k)
	if err != nil {
		return 0, fmt.Errorf("loading %s: %w", k, err)
	}

	changed := 0
	for i := range qs {
		if qs[i].ID != i+1 {
			qs[i].ID = i + 1
			changed++
		}
	}
	if changed == 0 {
		return 0, nil
	}
	if err := store.SaveFile(k, qs); err != nil {
		return 0, fmt.Errorf("saving %s: %w", k, err)
	}
	return changed, nil
}
