package exam

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/dronecbt/internal/bank"
)

// Phase is the session state machine phase.
type Phase int

const (
	// PhaseAnswering is the timed phase: the candidate is looking at a
	// question and the segment clock is running.
	PhaseAnswering Phase = iota

	// PhaseExplaining shows the explanation after an answer. Practice
	// mode only; the clock is frozen for its whole duration.
	PhaseExplaining

	// PhaseFinished is terminal: the cursor ran past the last question
	// or the time budget was exhausted.
	PhaseFinished
)

// NoTimeLimit disables the time budget for a session (untimed review).
const NoTimeLimit time.Duration = 0

// ErrEmptySet reports that a session was started with no questions: the
// bank had nothing usable for the requested level/source.
var ErrEmptySet = errors.New("no questions available")

// Answer is one immutable entry of the session's answer log.
type Answer struct {
	Question bank.Question
	Choice   string
	Correct  bool
	Elapsed  float64 // answering-phase seconds charged for this question
}

// Session is one exam attempt. It is advanced by discrete user actions
// (SubmitAnswer, Advance, CheckTimeout); nothing mutates it in the
// background. All wall-clock reads go through the injected now func so
// time accounting is testable deterministically.
type Session struct {
	ID        string
	Level     string
	Source    string
	Questions []bank.Question
	Cursor    int
	Phase     Phase

	// Limit is the total time budget. NoTimeLimit means untimed.
	Limit time.Duration

	// Consumed accumulates answering-phase time only. It grows at submit
	// and timeout checkpoints, never while the explanation is showing,
	// and never decreases.
	Consumed time.Duration

	// SegmentStart marks the beginning of the current answering segment.
	SegmentStart time.Time

	Log      []Answer
	Score    int
	RealMode bool

	now func() time.Time
}

// Options configures Start.
type Options struct {
	Level    string
	Source   string
	Limit    time.Duration
	RealMode bool

	// Now overrides the wall clock. Defaults to time.Now.
	Now func() time.Time
}

// Start creates a session over the given question set. An empty set is a
// hard error: the launch is aborted rather than trivially finishing.
func Start(questions []bank.Question, opts Options) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrEmptySet
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Session{
		ID:           uuid.New().String(),
		Level:        opts.Level,
		Source:       opts.Source,
		Questions:    questions,
		Phase:        PhaseAnswering,
		Limit:        opts.Limit,
		SegmentStart: now(),
		RealMode:     opts.RealMode,
		now:          now,
	}, nil
}

// Current returns the question under the cursor, or nil once finished.
func (s *Session) Current() *bank.Question {
	if s.Cursor >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.Cursor]
}

// Finished reports whether the session reached its terminal state.
func (s *Session) Finished() bool {
	return s.Phase == PhaseFinished
}

// SubmitAnswer records the candidate's choice for the current question.
// The elapsed answering time is charged to Consumed immediately. In real
// mode the cursor advances at once; in practice mode the session enters
// PhaseExplaining with the clock frozen.
func (s *Session) SubmitAnswer(choice string) error {
	if s.Phase != PhaseAnswering {
		return fmt.Errorf("cannot answer in phase %d", s.Phase)
	}
	q := s.Current()
	if q == nil {
		return errors.New("no current question")
	}

	elapsed := s.now().Sub(s.SegmentStart)
	s.Consumed += elapsed

	correct := choice == q.Answer
	s.Log = append(s.Log, Answer{
		Question: *q,
		Choice:   choice,
		Correct:  correct,
		Elapsed:  elapsed.Seconds(),
	})
	if correct {
		s.Score++
	}

	if s.RealMode {
		s.advanceCursor()
		return nil
	}
	s.Phase = PhaseExplaining
	return nil
}

// Advance moves past the explanation to the next question. Practice mode
// only; a fresh answering segment starts now.
func (s *Session) Advance() error {
	if s.Phase != PhaseExplaining {
		return fmt.Errorf("cannot advance in phase %d", s.Phase)
	}
	s.advanceCursor()
	return nil
}

func (s *Session) advanceCursor() {
	s.Cursor++
	if s.Cursor >= len(s.Questions) {
		s.Phase = PhaseFinished
		return
	}
	s.Phase = PhaseAnswering
	s.SegmentStart = s.now()
}

// Remaining returns the unconsumed time budget, counting the live segment
// when answering. For untimed sessions it returns zero; check Timed first.
func (s *Session) Remaining() time.Duration {
	if s.Limit == NoTimeLimit {
		return 0
	}
	used := s.Consumed
	if s.Phase == PhaseAnswering {
		used += s.now().Sub(s.SegmentStart)
	}
	rem := s.Limit - used
	if rem < 0 {
		return 0
	}
	return rem
}

// Timed reports whether this session has a time budget at all.
func (s *Session) Timed() bool {
	return s.Limit != NoTimeLimit
}

// CheckTimeout evaluates the time budget and, when it is exhausted
// mid-answer, force-finishes the session. Unanswered questions are simply
// never logged. The check is polled on access (every tick and before
// every submit), never pushed from a background timer. Returns true when
// the session just timed out.
func (s *Session) CheckTimeout() bool {
	if !s.Timed() || s.Phase != PhaseAnswering {
		return false
	}
	if s.Consumed+s.now().Sub(s.SegmentStart) >= s.Limit {
		s.Consumed = s.Limit
		s.Phase = PhaseFinished
		return true
	}
	return false
}
