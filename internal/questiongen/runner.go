package questiongen

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/abhisek/dronecbt/internal/bank"
)

// MaxConsecutiveFailures is how many generation attempts may fail in a
// row for one chapter before the runner gives up on that chapter and
// moves on.
const MaxConsecutiveFailures = 5

// Runner drives generation across chapters and stores accepted
// questions in the bank as it goes, so an interrupted run keeps what
// it produced.
type Runner struct {
	gen    Generator
	store  *bank.Store
	logger *slog.Logger
}

// NewRunner creates a Runner writing into the given store.
func NewRunner(gen Generator, store *bank.Store, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{gen: gen, store: store, logger: logger}
}

// RunInput describes one generation run.
type RunInput struct {
	// Level is the license level to generate for.
	Level string

	// Source names the collection the questions are stored under,
	// typically the sanitized model ID.
	Source string

	// Targets maps chapter number to how many new questions to add.
	Targets map[int]int

	// Scopes maps chapter number to its subject description for the
	// prompt. Missing chapters get an empty scope.
	Scopes map[int]string

	// Attachment is an optional reference document forwarded to the
	// generator on every call.
	Attachment *Attachment
}

// Progress reports the state of one chapter after each batch.
type Progress struct {
	Chapter int
	Added   int
	Target  int
	Err     error
}

// RunResult summarizes a completed run.
type RunResult struct {
	Added           int
	Skipped         int
	SkippedChapters []int
}

// Run generates questions chapter by chapter until every target is met,
// the chapter is skipped after repeated failures, or ctx is cancelled.
// onProgress may be nil.
func (r *Runner) Run(ctx context.Context, in RunInput, onProgress func(Progress)) (*RunResult, error) {
	if in.Source == "" {
		return nil, fmt.Errorf("source is required")
	}

	chapters := make([]int, 0, len(in.Targets))
	for ch := range in.Targets {
		chapters = append(chapters, ch)
	}
	sort.Ints(chapters)

	var result RunResult
	for _, ch := range chapters {
		target := in.Targets[ch]
		if target <= 0 {
			continue
		}
		added, skipped, err := r.runChapter(ctx, in, ch, target, onProgress)
		result.Added += added
		result.Skipped += skipped
		if err != nil {
			if ctx.Err() != nil {
				return &result, ctx.Err()
			}
			result.SkippedChapters = append(result.SkippedChapters, ch)
			r.logger.Warn("chapter skipped after repeated failures",
				"chapter", ch, "level", in.Level, "error", err)
		}
	}
	return &result, nil
}

func (r *Runner) runChapter(ctx context.Context, in RunInput, chapter, target int, onProgress func(Progress)) (added, skipped int, err error) {
	key := bank.Key{Source: in.Source, Level: in.Level, ChapterID: chapter}

	existing, err := r.store.LoadFile(key)
	if err != nil && !os.IsNotExist(err) {
		return 0, 0, fmt.Errorf("loading %s: %w", key, err)
	}
	texts := make([]string, 0, len(existing))
	for _, q := range existing {
		texts = append(texts, q.Text)
	}

	failures := 0
	for added < target {
		if err := ctx.Err(); err != nil {
			return added, skipped, err
		}

		batch, err := r.gen.Generate(ctx, GenerateInput{
			Level:      in.Level,
			Chapter:    chapter,
			Scope:      in.Scopes[chapter],
			Existing:   texts,
			Attachment: in.Attachment,
		})
		if err != nil {
			failures++
			r.logger.Warn("generation attempt failed",
				"chapter", chapter, "attempt", failures, "error", err)
			if failures >= MaxConsecutiveFailures {
				return added, skipped, fmt.Errorf("giving up after %d consecutive failures: %w", failures, err)
			}
			continue
		}

		res, err := r.store.AppendQuestions(key, batch.Questions)
		if err != nil {
			return added, skipped, fmt.Errorf("saving %s: %w", key, err)
		}
		skipped += res.Skipped
		if res.Added == 0 {
			// Everything was a duplicate of stored questions.
			failures++
			if failures >= MaxConsecutiveFailures {
				return added, skipped, fmt.Errorf("giving up after %d consecutive failures: all duplicates", failures)
			}
			continue
		}
		failures = 0
		added += res.Added
		for _, q := range batch.Questions {
			texts = append(texts, q.Text)
		}

		if onProgress != nil {
			onProgress(Progress{Chapter: chapter, Added: added, Target: target})
		}
	}
	return added, skipped, nil
}
