package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jnovotny/examtrainer/internal/artifact"
	"github.com/jnovotny/examtrainer/internal/errors"
	"github.com/jnovotny/examtrainer/internal/logger"
	"github.com/jnovotny/examtrainer/internal/models"
	"github.com/jnovotny/examtrainer/internal/repository"
	"github.com/jnovotny/examtrainer/internal/session"
	"github.com/jnovotny/examtrainer/internal/stats"
)

// StartInfo describes the session a Start call produced.
type StartInfo struct {
	User     string       `json:"user"`
	Language string       `json:"language"`
	Set      string       `json:"set"`
	Mode     session.Mode `json:"mode"`
	Total    int          `json:"total"`
	// FellBack is true when targeted mode found no weak questions and the
	// session runs over the full set instead.
	FellBack bool `json:"fell_back"`
}

// SessionService drives practice sessions over the loaded question
// collections.
type SessionService interface {
	Languages() []string
	ListSets(ctx context.Context, language string) ([]string, error)
	Start(ctx context.Context, cfg session.Config) (*StartInfo, error)
	Current(ctx context.Context, user string) (*session.QuestionView, error)
	SubmitAnswer(ctx context.Context, user string, selected int) error
	Advance(ctx context.Context, user string, delta int) error
	Finish(ctx context.Context, user string) (*models.ScoredRun, error)
	Reset(ctx context.Context, user string) error
}

type sessionService struct {
	// language -> set -> questions, read-only after load.
	collections map[string]map[string][]models.Question
	statsStore  *artifact.StatsStore
	runRepo     repository.RunRepository
	manager     *session.Manager
	threshold   float64
}

// NewSessionService creates a SessionService over pre-loaded question
// collections. The collections are owned by the parsing pipeline and never
// mutated here.
func NewSessionService(
	collections map[string]map[string][]models.Question,
	statsStore *artifact.StatsStore,
	runRepo repository.RunRepository,
	manager *session.Manager,
	threshold float64,
) SessionService {
	if threshold <= 0 {
		threshold = stats.DefaultWeakThreshold
	}
	return &sessionService{
		collections: collections,
		statsStore:  statsStore,
		runRepo:     runRepo,
		manager:     manager,
		threshold:   threshold,
	}
}

func (s *sessionService) Languages() []string {
	languages := make([]string, 0, len(s.collections))
	for lang := range s.collections {
		languages = append(languages, lang)
	}
	sort.Strings(languages)
	return languages
}

func (s *sessionService) ListSets(ctx context.Context, language string) ([]string, error) {
	sets, ok := s.collections[language]
	if !ok {
		return nil, errors.NewNotFoundError("questions for language", language)
	}
	return artifact.SetNames(sets), nil
}

func (s *sessionService) Start(ctx context.Context, cfg session.Config) (*StartInfo, error) {
	log := logger.FromContext(ctx)

	if cfg.User == "" {
		return nil, errors.NewValidationError("user", "cannot be empty")
	}
	if !session.ValidMode(cfg.Mode) {
		return nil, errors.NewValidationError("mode", "must be 'standard' or 'targeted'")
	}
	sets, ok := s.collections[cfg.Language]
	if !ok {
		return nil, errors.NewNotFoundError("questions for language", cfg.Language)
	}
	questions, ok := sets[cfg.Set]
	if !ok {
		return nil, errors.NewNotFoundError("question set", cfg.Set)
	}

	subset := questions
	fellBack := false
	if cfg.Mode == session.ModeTargeted {
		weak := stats.SelectWeak(s.statsStore.Load()[cfg.User], questions, s.threshold)
		if len(weak) > 0 {
			log.Info("targeted mode: %d weak questions in set %s", len(weak), cfg.Set)
			subset = weak
		} else {
			// No weak questions yet: practice the full set instead.
			log.Info("targeted mode: no weak questions in set %s, using full set", cfg.Set)
			fellBack = true
		}
	}

	sess := s.manager.Ensure(cfg, subset)
	if err := sess.Start(); err != nil {
		return nil, err
	}

	log.Info("session started: user=%s, language=%s, set=%s, mode=%s, total=%d",
		cfg.User, cfg.Language, cfg.Set, cfg.Mode, sess.Total())
	return &StartInfo{
		User:     cfg.User,
		Language: cfg.Language,
		Set:      cfg.Set,
		Mode:     cfg.Mode,
		Total:    sess.Total(),
		FellBack: fellBack,
	}, nil
}

func (s *sessionService) active(user string) (*session.Session, error) {
	sess, ok := s.manager.Get(user)
	if !ok {
		return nil, errors.NewNotFoundError("active session for user", user)
	}
	return sess, nil
}

func (s *sessionService) Current(ctx context.Context, user string) (*session.QuestionView, error) {
	sess, err := s.active(user)
	if err != nil {
		return nil, err
	}
	return sess.Current()
}

func (s *sessionService) SubmitAnswer(ctx context.Context, user string, selected int) error {
	sess, err := s.active(user)
	if err != nil {
		return err
	}
	return sess.Answer(selected)
}

func (s *sessionService) Advance(ctx context.Context, user string, delta int) error {
	sess, err := s.active(user)
	if err != nil {
		return err
	}
	return sess.Advance(delta)
}

func (s *sessionService) Finish(ctx context.Context, user string) (*models.ScoredRun, error) {
	log := logger.FromContext(ctx)

	sess, err := s.active(user)
	if err != nil {
		return nil, err
	}

	startedAt := sess.StartedAt()
	run, err := sess.Finish()
	if err != nil {
		return nil, err
	}

	// The one-shot claim makes the stats commit happen exactly once per run
	// even if a finished result is requested again.
	if sess.ClaimStatsCommit() {
		cfg := sess.Config()

		if err := s.statsStore.Update(func(rec models.StatsRecord) {
			for _, result := range run.Results {
				key := models.QuestionKey{Language: cfg.Language, Set: result.Set, ID: result.ID}
				stats.Record(rec, user, key, result.Correct)
			}
		}); err != nil {
			log.Error("failed to persist stats for user %s: %v", user, err)
		}

		record := models.Run{
			ID:             uuid.NewString(),
			User:           cfg.User,
			Language:       cfg.Language,
			Set:            cfg.Set,
			Mode:           string(cfg.Mode),
			Total:          run.Total,
			Correct:        run.Correct,
			ScorePercent:   run.ScorePercent,
			ElapsedSeconds: int(run.Elapsed.Seconds()),
			StartedAt:      startedAt,
			FinishedAt:     time.Now(),
		}
		if err := s.runRepo.Insert(ctx, record); err != nil {
			// Run history is supplementary; losing one row must not undo a
			// finished run.
			log.Warn("failed to record run history for user %s: %v", user, err)
		}
	}

	log.Info("session finished: user=%s, score=%d/%d (%.1f%%)", user, run.Correct, run.Total, run.ScorePercent)
	return run, nil
}

func (s *sessionService) Reset(ctx context.Context, user string) error {
	sess, err := s.active(user)
	if err != nil {
		return err
	}
	sess.Reset()
	return nil
}
