package services

import (
	"context"

	"github.com/jnovotny/examtrainer/internal/artifact"
	"github.com/jnovotny/examtrainer/internal/errors"
	"github.com/jnovotny/examtrainer/internal/logger"
	"github.com/jnovotny/examtrainer/internal/models"
	"github.com/jnovotny/examtrainer/internal/repository"
	"github.com/jnovotny/examtrainer/internal/stats"
)

// StatsService exposes accumulated practice statistics and run history.
type StatsService interface {
	Summary(ctx context.Context, user string) (*models.StatsSummary, error)
	ListRuns(ctx context.Context, filter models.RunFilter) ([]models.Run, int, error)
}

type statsService struct {
	statsStore *artifact.StatsStore
	runRepo    repository.RunRepository
	threshold  float64
}

// NewStatsService creates a StatsService.
func NewStatsService(statsStore *artifact.StatsStore, runRepo repository.RunRepository, threshold float64) StatsService {
	if threshold <= 0 {
		threshold = stats.DefaultWeakThreshold
	}
	return &statsService{
		statsStore: statsStore,
		runRepo:    runRepo,
		threshold:  threshold,
	}
}

func (s *statsService) Summary(ctx context.Context, user string) (*models.StatsSummary, error) {
	log := logger.FromContext(ctx)

	if user == "" {
		return nil, errors.NewValidationError("user", "cannot be empty")
	}

	summary := stats.Summarize(s.statsStore.Load()[user], s.threshold)
	log.Debug("stats summary for %s: seen=%d, correct=%d", user, summary.TotalSeen, summary.TotalCorrect)
	return &summary, nil
}

func (s *statsService) ListRuns(ctx context.Context, filter models.RunFilter) ([]models.Run, int, error) {
	if filter.User == "" {
		return nil, 0, errors.NewValidationError("user", "cannot be empty")
	}

	runs, err := s.runRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, errors.NewInternalError(err)
	}
	count, err := s.runRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, errors.NewInternalError(err)
	}
	return runs, count, nil
}
