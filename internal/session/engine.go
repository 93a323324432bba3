package session

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/jnovotny/examtrainer/internal/errors"
	"github.com/jnovotny/examtrainer/internal/models"
)

// Mode selects which questions a session practices.
type Mode string

const (
	// ModeStandard practices the full set.
	ModeStandard Mode = "standard"
	// ModeTargeted practices the user's historically weak questions.
	ModeTargeted Mode = "targeted"
)

// ValidMode reports whether m is a known practice mode.
func ValidMode(m Mode) bool {
	return m == ModeStandard || m == ModeTargeted
}

// Config is the combination that scopes one session. Changing any field
// means a different session: the manager replaces the old one wholesale.
type Config struct {
	User             string `json:"user"`
	Language         string `json:"language"`
	Set              string `json:"set"`
	Mode             Mode   `json:"mode"`
	ShuffleQuestions bool   `json:"shuffle_questions"`
	ShuffleOptions   bool   `json:"shuffle_options"`
}

// Session drives one practice run through its three states:
// not started, in progress, finished.
//
// The question-order and option-order permutations are materialized once at
// Start and stay frozen until Reset, so navigating back and forth always
// shows a stable presentation. Answers are keyed by question identity and
// store the original option index, independent of presentation order.
//
// The manager hands the same *Session to every request for a user, so all
// mutable state is guarded by the session's own mutex. cfg and questions are
// set at construction and never change.
type Session struct {
	cfg       Config
	questions []models.Question
	rng       *rand.Rand

	mu sync.Mutex

	order        []int
	optionOrders map[models.QuestionKey][]int
	answers      map[models.QuestionKey]int
	pos          int

	started      bool
	finished     bool
	startedAt    time.Time
	result       *models.ScoredRun
	statsApplied bool
}

// New creates a session over the given question subset in the NOT_STARTED
// state. rng may be nil, in which case a time-seeded source is used; tests
// pass a fixed seed.
func New(cfg Config, questions []models.Question, rng *rand.Rand) *Session {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Session{
		cfg:       cfg,
		questions: questions,
		rng:       rng,
	}
}

// Config returns the combination this session was created for.
func (s *Session) Config() Config { return s.cfg }

// Total returns the number of questions in the active subset.
func (s *Session) Total() int { return len(s.questions) }

// Questions returns the active question subset in its natural order.
func (s *Session) Questions() []models.Question { return s.questions }

// Started reports whether Start has been called since creation or Reset.
func (s *Session) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// Finished reports whether the session has been scored.
func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}

// Start moves the session from NOT_STARTED to IN_PROGRESS: records the start
// time and freezes the question and option permutations.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return errors.NewPreconditionError("session already started")
	}
	if len(s.questions) == 0 {
		return errors.NewPreconditionError("session has no questions")
	}

	s.order = make([]int, len(s.questions))
	for i := range s.order {
		s.order[i] = i
	}
	if s.cfg.ShuffleQuestions {
		s.rng.Shuffle(len(s.order), func(i, j int) {
			s.order[i], s.order[j] = s.order[j], s.order[i]
		})
	}

	s.optionOrders = make(map[models.QuestionKey][]int, len(s.questions))
	for _, q := range s.questions {
		optOrder := make([]int, models.NumOptions)
		for i := range optOrder {
			optOrder[i] = i
		}
		if s.cfg.ShuffleOptions {
			s.rng.Shuffle(len(optOrder), func(i, j int) {
				optOrder[i], optOrder[j] = optOrder[j], optOrder[i]
			})
		}
		s.optionOrders[q.Key()] = optOrder
	}

	s.answers = make(map[models.QuestionKey]int, len(s.questions))
	s.pos = 0
	s.startedAt = time.Now()
	s.started = true
	return nil
}

// QuestionView is the presentation of the current question: options appear in
// the session's frozen presentation order.
type QuestionView struct {
	Position       int      `json:"position"`
	Total          int      `json:"total"`
	Set            string   `json:"set"`
	ID             int      `json:"id"`
	Stem           string   `json:"stem"`
	Options        []string `json:"options"`
	Selected       *int     `json:"selected"`
	Answered       int      `json:"answered"`
	CanFinish      bool     `json:"can_finish"`
	ElapsedSeconds int      `json:"elapsed_seconds"`
}

// Current returns the question at the current position.
func (s *Session) Current() (*QuestionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireInProgress(); err != nil {
		return nil, err
	}

	q := s.questions[s.order[s.pos]]
	optOrder := s.optionOrders[q.Key()]

	options := make([]string, len(optOrder))
	for i, orig := range optOrder {
		options[i] = q.Options[orig]
	}

	view := &QuestionView{
		Position:       s.pos,
		Total:          len(s.questions),
		Set:            q.Set,
		ID:             q.ID,
		Stem:           q.Question,
		Options:        options,
		Answered:       len(s.answers),
		CanFinish:      s.canFinish(),
		ElapsedSeconds: int(time.Since(s.startedAt).Seconds()),
	}

	if orig, ok := s.answers[q.Key()]; ok {
		for i, o := range optOrder {
			if o == orig {
				idx := i
				view.Selected = &idx
				break
			}
		}
	}
	return view, nil
}

// Answer records the user's choice for the current question. selected is an
// index into the presented option order; the stored answer is the original
// option index. Answering again overwrites, and the position does not move.
func (s *Session) Answer(selected int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireInProgress(); err != nil {
		return err
	}
	if selected < 0 || selected >= models.NumOptions {
		return errors.NewValidationError("selected", "option index out of range")
	}

	q := s.questions[s.order[s.pos]]
	s.answers[q.Key()] = s.optionOrders[q.Key()][selected]
	return nil
}

// Advance moves the position by ±1, clamped to the valid range. It never
// finishes the session on its own.
func (s *Session) Advance(delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireInProgress(); err != nil {
		return err
	}
	if delta != 1 && delta != -1 {
		return errors.NewValidationError("delta", "must be +1 or -1")
	}

	s.pos += delta
	if s.pos < 0 {
		s.pos = 0
	}
	if s.pos > len(s.questions)-1 {
		s.pos = len(s.questions) - 1
	}
	return nil
}

// CanFinish reports whether every question has a recorded answer.
func (s *Session) CanFinish() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canFinish()
}

func (s *Session) canFinish() bool {
	return s.started && !s.finished && len(s.answers) >= len(s.questions)
}

// Finish scores the run and moves the session to FINISHED. It is valid only
// while in progress with all questions answered.
func (s *Session) Finish() (*models.ScoredRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireInProgress(); err != nil {
		return nil, err
	}
	if !s.canFinish() {
		return nil, errors.NewPreconditionError("not all questions answered")
	}

	run := &models.ScoredRun{
		Total:   len(s.questions),
		Elapsed: time.Since(s.startedAt),
		Results: make([]models.QuestionResult, 0, len(s.questions)),
	}
	for _, q := range s.questions {
		chosen, answered := s.answers[q.Key()]
		if !answered {
			chosen = -1
		}
		correct := chosen == q.CorrectIndex
		if correct {
			run.Correct++
		}
		run.Results = append(run.Results, models.QuestionResult{
			Set:           q.Set,
			ID:            q.ID,
			Correct:       correct,
			ChosenIndex:   chosen,
			CorrectIndex:  q.CorrectIndex,
			CorrectOption: q.Options[q.CorrectIndex],
		})
	}
	run.ScorePercent = ScorePercent(run.Correct, run.Total)
	run.ElapsedText = FormatElapsed(run.Elapsed)

	s.finished = true
	s.result = run
	return run, nil
}

// Result returns the scored run of a finished session, so the result view
// can be re-rendered without re-scoring.
func (s *Session) Result() (*models.ScoredRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.finished {
		return nil, errors.NewPreconditionError("session not finished")
	}
	return s.result, nil
}

// StartedAt returns the start time of the current run.
func (s *Session) StartedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startedAt
}

// ClaimStatsCommit returns true exactly once per finished run. The caller
// commits stats only on a true return, so re-rendering the result can never
// double-count.
func (s *Session) ClaimStatsCommit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.finished || s.statsApplied {
		return false
	}
	s.statsApplied = true
	return true
}

// Reset discards all mutable state and returns the session to NOT_STARTED.
// Fresh question and option permutations are derived on the next Start.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = nil
	s.optionOrders = nil
	s.answers = nil
	s.pos = 0
	s.started = false
	s.finished = false
	s.startedAt = time.Time{}
	s.result = nil
	s.statsApplied = false
}

func (s *Session) requireInProgress() error {
	if !s.started {
		return errors.NewPreconditionError("session not started")
	}
	if s.finished {
		return errors.NewPreconditionError("session already finished")
	}
	return nil
}

// ScorePercent computes the score as a percentage rounded to one decimal.
// Exact fractions stay exact: 3 of 4 is 75.0.
func ScorePercent(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(correct)/float64(total)*1000) / 10
}

// FormatElapsed renders a duration as mm:ss.
func FormatElapsed(d time.Duration) string {
	secs := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
