package exam

import (
	"math/rand/v2"

	"github.com/abhisek/dronecbt/internal/bank"
)

// SelectExamSet draws an exam question set from pool, honoring the
// per-chapter weights when stock allows and degrading to a best-effort
// total when it does not.
//
// The pool must already be filtered to the requested level and source.
// The result is at most total records, shuffled; it is shorter than total
// only when the pool itself runs short. An empty result means the bank
// has nothing usable for this request — callers treat that as a hard
// stop, not a retryable condition.
func SelectExamSet(pool []bank.Question, total int, weights map[int]int, rng *rand.Rand) []bank.Question {
	if total <= 0 || len(pool) == 0 {
		return nil
	}

	// No curriculum: uniform sample, or everything when the pool is small.
	if len(weights) == 0 {
		if len(pool) <= total {
			out := append([]bank.Question(nil), pool...)
			shuffle(out, rng)
			return out
		}
		return sampleN(pool, total, rng)
	}

	groups := make(map[int][]bank.Question)
	for _, q := range pool {
		ch := ChapterNum(q.Chapter)
		groups[ch] = append(groups[ch], q)
	}

	var picked []bank.Question
	for _, ch := range sortedChapters(weights) {
		want := weights[ch]
		group := groups[ch]
		if want <= 0 || len(group) == 0 {
			continue
		}
		n := min(len(group), want)
		shuffle(group, rng)
		picked = append(picked, group[:n]...)
		groups[ch] = group[n:] // drawn records cannot be redrawn by the shortfall pass
	}

	if shortfall := total - len(picked); shortfall > 0 {
		var rest []bank.Question
		for _, g := range groups {
			rest = append(rest, g...)
		}
		if len(rest) > 0 {
			picked = append(picked, sampleN(rest, min(len(rest), shortfall), rng)...)
		}
	}

	shuffle(picked, rng)
	return picked
}

// sampleN draws n records uniformly without replacement.
func sampleN(pool []bank.Question, n int, rng *rand.Rand) []bank.Question {
	cp := append([]bank.Question(nil), pool...)
	shuffle(cp, rng)
	return cp[:n]
}

func shuffle(qs []bank.Question, rng *rand.Rand) {
	rng.Shuffle(len(qs), func(i, j int) {
		qs[i], qs[j] = qs[j], qs[i]
	})
}

// sortedChapters returns weight keys in ascending chapter order so the
// draw order is deterministic for a given rng seed.
func sortedChapters(weights map[int]int) []int {
	out := make([]int, 0, len(weights))
	for ch := range weights {
		out = append(out, ch)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
