package session_test

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jnovotny/examtrainer/internal/errors"
	"github.com/jnovotny/examtrainer/internal/models"
	"github.com/jnovotny/examtrainer/internal/session"
)

func testQuestions(n int) []models.Question {
	questions := make([]models.Question, 0, n)
	for i := 1; i <= n; i++ {
		questions = append(questions, models.Question{
			Set:          "A",
			ID:           i,
			Language:     "en",
			Question:     "question",
			Options:      [4]string{"opt a", "opt b", "opt c", "opt d"},
			CorrectIndex: (i - 1) % 4,
		})
	}
	return questions
}

func newTestSession(cfg session.Config, questions []models.Question) *session.Session {
	return session.New(cfg, questions, rand.New(rand.NewSource(42)))
}

func assertPrecondition(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodePrecondition, appErr.Code)
	assert.Equal(t, 422, appErr.Status)
}

func TestStart_SecondCallRejected(t *testing.T) {
	s := newTestSession(session.Config{User: "ana"}, testQuestions(3))

	require.NoError(t, s.Start())
	assertPrecondition(t, s.Start())
}

func TestStart_EmptySubsetRejected(t *testing.T) {
	s := newTestSession(session.Config{User: "ana"}, nil)
	assertPrecondition(t, s.Start())
}

func TestAnswer_BeforeStartRejected(t *testing.T) {
	s := newTestSession(session.Config{User: "ana"}, testQuestions(2))
	assertPrecondition(t, s.Answer(0))
}

func TestAdvance_ClampedToBounds(t *testing.T) {
	s := newTestSession(session.Config{User: "ana"}, testQuestions(2))
	require.NoError(t, s.Start())

	// Back from position 0 stays at 0.
	require.NoError(t, s.Advance(-1))
	view, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, 0, view.Position)

	// Forward past the end stays at total-1.
	require.NoError(t, s.Advance(1))
	require.NoError(t, s.Advance(1))
	require.NoError(t, s.Advance(1))
	view, err = s.Current()
	require.NoError(t, err)
	assert.Equal(t, 1, view.Position)
}

func TestAdvance_RejectsOtherDeltas(t *testing.T) {
	s := newTestSession(session.Config{User: "ana"}, testQuestions(2))
	require.NoError(t, s.Start())

	assert.Error(t, s.Advance(0))
	assert.Error(t, s.Advance(2))
}

func TestAnswer_OverwriteDoesNotMovePosition(t *testing.T) {
	s := newTestSession(session.Config{User: "ana"}, testQuestions(3))
	require.NoError(t, s.Start())

	require.NoError(t, s.Answer(0))
	require.NoError(t, s.Answer(2))

	view, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, 0, view.Position)
	require.NotNil(t, view.Selected)
	assert.Equal(t, 2, *view.Selected)
	assert.Equal(t, 1, view.Answered)
}

func TestFinish_RequiresAllAnswered(t *testing.T) {
	s := newTestSession(session.Config{User: "ana"}, testQuestions(2))
	require.NoError(t, s.Start())

	require.NoError(t, s.Answer(0))
	assert.False(t, s.CanFinish())

	_, err := s.Finish()
	assertPrecondition(t, err)

	require.NoError(t, s.Advance(1))
	require.NoError(t, s.Answer(0))
	assert.True(t, s.CanFinish())

	_, err = s.Finish()
	require.NoError(t, err)
}

func TestFinish_ExactScorePercent(t *testing.T) {
	// 4 questions, correct answers on 3 of them: exactly 75.0.
	questions := testQuestions(4)
	s := newTestSession(session.Config{User: "ana"}, questions)
	require.NoError(t, s.Start())

	// No shuffling: presented order equals original order, so answering the
	// correct index directly is possible.
	for i, q := range questions {
		if i > 0 {
			require.NoError(t, s.Advance(1))
		}
		choice := q.CorrectIndex
		if i == 3 {
			choice = (q.CorrectIndex + 1) % 4 // one deliberate mistake
		}
		require.NoError(t, s.Answer(choice))
	}

	run, err := s.Finish()
	require.NoError(t, err)
	assert.Equal(t, 3, run.Correct)
	assert.Equal(t, 4, run.Total)
	assert.Equal(t, 75.0, run.ScorePercent)
	require.Len(t, run.Results, 4)
	assert.False(t, run.Results[3].Correct)
	assert.Equal(t, questions[3].Options[questions[3].CorrectIndex], run.Results[3].CorrectOption)
}

func TestFinish_TransitionsAndResultIsStable(t *testing.T) {
	s := newTestSession(session.Config{User: "ana"}, testQuestions(1))
	require.NoError(t, s.Start())
	require.NoError(t, s.Answer(0))

	run, err := s.Finish()
	require.NoError(t, err)
	assert.True(t, s.Finished())

	// Operations after finish are rejected; the stored result re-renders.
	assertPrecondition(t, s.Answer(0))
	assertPrecondition(t, s.Advance(1))
	_, err = s.Finish()
	assertPrecondition(t, err)

	again, err := s.Result()
	require.NoError(t, err)
	assert.Equal(t, run, again)
}

func TestClaimStatsCommit_OneShot(t *testing.T) {
	s := newTestSession(session.Config{User: "ana"}, testQuestions(1))

	assert.False(t, s.ClaimStatsCommit(), "unfinished session must not commit stats")

	require.NoError(t, s.Start())
	require.NoError(t, s.Answer(0))
	_, err := s.Finish()
	require.NoError(t, err)

	assert.True(t, s.ClaimStatsCommit())
	assert.False(t, s.ClaimStatsCommit(), "second claim must be refused")
}

func TestShuffle_OrdersFrozenUntilReset(t *testing.T) {
	cfg := session.Config{User: "ana", ShuffleQuestions: true, ShuffleOptions: true}
	questions := testQuestions(8)
	s := newTestSession(cfg, questions)
	require.NoError(t, s.Start())

	first, err := s.Current()
	require.NoError(t, err)

	// Navigating away and back shows the identical presentation.
	require.NoError(t, s.Advance(1))
	require.NoError(t, s.Advance(-1))
	second, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Options, second.Options)
}

func TestShuffle_OptionsMapBackToOriginalIndices(t *testing.T) {
	cfg := session.Config{User: "ana", ShuffleOptions: true}
	questions := []models.Question{{
		Set: "A", ID: 1, Language: "en", Question: "q",
		Options:      [4]string{"alpha", "beta", "gamma", "delta"},
		CorrectIndex: 2,
	}}
	s := newTestSession(cfg, questions)
	require.NoError(t, s.Start())

	view, err := s.Current()
	require.NoError(t, err)

	// Find "gamma" in the presented order and answer it: must score correct
	// regardless of where shuffling placed it.
	presented := -1
	for i, opt := range view.Options {
		if opt == "gamma" {
			presented = i
		}
	}
	require.NotEqual(t, -1, presented)
	require.NoError(t, s.Answer(presented))

	run, err := s.Finish()
	require.NoError(t, err)
	assert.Equal(t, 1, run.Correct)
}

func TestReset_ReturnsToNotStarted(t *testing.T) {
	s := newTestSession(session.Config{User: "ana"}, testQuestions(2))
	require.NoError(t, s.Start())
	require.NoError(t, s.Answer(1))

	s.Reset()
	assert.False(t, s.Started())
	assert.False(t, s.Finished())

	// A fresh run starts clean.
	require.NoError(t, s.Start())
	view, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, 0, view.Answered)
	assert.Nil(t, view.Selected)
}

func TestConcurrentAnswerAndCurrent(t *testing.T) {
	// One session is shared by every request for its user, so answering and
	// rendering from separate goroutines must serialize. Run with -race.
	s := newTestSession(session.Config{User: "ana", ShuffleOptions: true}, testQuestions(4))
	require.NoError(t, s.Start())

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			require.NoError(t, s.Answer(i%4))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_, err := s.Current()
			require.NoError(t, err)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			s.CanFinish()
		}
	}()
	wg.Wait()

	view, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, 1, view.Answered)
}

func TestScorePercent(t *testing.T) {
	assert.Equal(t, 75.0, session.ScorePercent(3, 4))
	assert.Equal(t, 100.0, session.ScorePercent(5, 5))
	assert.Equal(t, 0.0, session.ScorePercent(0, 7))
	assert.Equal(t, 33.3, session.ScorePercent(1, 3))
	assert.Equal(t, 0.0, session.ScorePercent(0, 0))
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "00:05", session.FormatElapsed(5e9))
	assert.Equal(t, "02:30", session.FormatElapsed(150e9))
}
