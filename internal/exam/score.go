package exam

import (
	"sort"
	"time"

	"github.com/abhisek/dronecbt/internal/bank"
)

// PassPercent is the pass line for both certification tiers.
const PassPercent = 80

// ReviewSecondsPerQuestion is the default time budget per question when
// replaying wrong answers.
const ReviewSecondsPerQuestion = 60

// FinalScore returns the correct count and the number of answered
// questions. Questions cut off by a timeout are not counted.
func (s *Session) FinalScore() (correct, answered int) {
	return s.Score, len(s.Log)
}

// Percentage computes the score percentage, floored. Zero answered is
// defined as 0%.
func Percentage(correct, answered int) int {
	if answered == 0 {
		return 0
	}
	return 100 * correct / answered
}

// Passed reports whether the score clears the pass line.
func Passed(correct, answered int) bool {
	return Percentage(correct, answered) >= PassPercent
}

// ChapterStat is one row of the per-chapter breakdown.
type ChapterStat struct {
	Chapter string
	Correct int
	Total   int
}

// BreakdownByChapter groups the answer log by chapter tag. Rows come back
// in lexicographic chapter order for display.
func BreakdownByChapter(log []Answer) []ChapterStat {
	byChapter := make(map[string]*ChapterStat)
	for _, a := range log {
		st, ok := byChapter[a.Question.Chapter]
		if !ok {
			st = &ChapterStat{Chapter: a.Question.Chapter}
			byChapter[a.Question.Chapter] = st
		}
		st.Total++
		if a.Correct {
			st.Correct++
		}
	}
	out := make([]ChapterStat, 0, len(byChapter))
	for _, st := range byChapter {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Chapter < out[j].Chapter })
	return out
}

// WrongQuestions returns the questions answered incorrectly, preserving
// the original encounter order.
func WrongQuestions(log []Answer) []bank.Question {
	var out []bank.Question
	for _, a := range log {
		if !a.Correct {
			out = append(out, a.Question)
		}
	}
	return out
}

// NewReviewSession builds a replay session over the prior session's wrong
// answers: one minute per question (or untimed), always practice mode so
// explanations show. Returns ErrEmptySet when everything was correct.
func NewReviewSession(prior *Session, untimed bool) (*Session, error) {
	wrong := WrongQuestions(prior.Log)
	limit := time.Duration(len(wrong)*ReviewSecondsPerQuestion) * time.Second
	if untimed {
		limit = NoTimeLimit
	}
	return Start(wrong, Options{
		Level:    prior.Level,
		Source:   prior.Source,
		Limit:    limit,
		RealMode: false,
		Now:      prior.now,
	})
}
