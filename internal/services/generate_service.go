package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/jnovotny/examtrainer/internal/logger"
	"github.com/jnovotny/examtrainer/internal/models"
	"github.com/jnovotny/examtrainer/internal/parser"
	"github.com/jnovotny/examtrainer/internal/worker"
)

// SetSource names the document pair for one exam set.
type SetSource struct {
	Set       string `json:"set"`
	Questions string `json:"questions"`
	Answers   string `json:"answers"`
}

// GenerateReport summarizes one artifact generation.
type GenerateReport struct {
	Questions []models.Question
	Warnings  []parser.Warning
}

// GenerateService turns raw exam documents into a question artifact.
type GenerateService interface {
	Generate(ctx context.Context, language string, sources []SetSource, debugDir string) (*GenerateReport, error)
}

type generateService struct {
	pool    *worker.Pool
	extract func(path string) (string, error)
}

// NewGenerateService creates a GenerateService. extract is the text-extraction
// boundary: it receives a document path and returns its raw text. Binary
// document formats are handled outside this service.
func NewGenerateService(pool *worker.Pool, extract func(path string) (string, error)) GenerateService {
	return &generateService{pool: pool, extract: extract}
}

func (s *generateService) Generate(ctx context.Context, language string, sources []SetSource, debugDir string) (*GenerateReport, error) {
	log := logger.FromContext(ctx).WithField("language", language)

	profile, err := parser.ProfileFor(language)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no document sources configured for language %q", language)
	}

	var wg sync.WaitGroup
	jobs := make([]*worker.ParseSetJob, 0, len(sources))
	for _, src := range sources {
		job := &worker.ParseSetJob{
			Set:           src.Set,
			QuestionsPath: src.Questions,
			AnswersPath:   src.Answers,
			Profile:       profile,
			Extract:       s.extract,
			DebugDir:      debugDir,
			WG:            &wg,
		}
		jobs = append(jobs, job)
		wg.Add(1)
		log.Info("processing set %s", src.Set)
		s.pool.Submit(job)
	}
	wg.Wait()

	report := &GenerateReport{}
	for _, job := range jobs {
		if job.Err != nil {
			// A set whose documents cannot be read fails the batch; parse
			// warnings within a readable set do not.
			return nil, fmt.Errorf("set %s: %w", job.Set, job.Err)
		}
		report.Questions = append(report.Questions, job.Result.Questions...)
		report.Warnings = append(report.Warnings, job.Result.Warnings...)
	}

	log.Info("generated %d questions across %d sets (%d warnings)",
		len(report.Questions), len(sources), len(report.Warnings))
	return report, nil
}
