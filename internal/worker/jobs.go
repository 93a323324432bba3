package worker

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/jnovotny/examtrainer/internal/logger"
	"github.com/jnovotny/examtrainer/internal/parser"
)

// ParseSetJob extracts the text of one exam set's document pair and parses it
// into question records. Jobs for different sets share no state, so they run
// concurrently; the submitter waits on WG and reads Result/Err afterwards.
type ParseSetJob struct {
	Set           string
	QuestionsPath string
	AnswersPath   string
	Profile       parser.Profile
	Extract       func(path string) (string, error)
	DebugDir      string
	WG            *sync.WaitGroup

	Result parser.SetResult
	Err    error
}

func (j *ParseSetJob) Name() string { return "parse_set" }

func (j *ParseSetJob) Run(ctx context.Context) error {
	defer j.WG.Done()
	log := logger.FromContext(ctx).WithField("set", j.Set)

	questionText, err := j.Extract(j.QuestionsPath)
	if err != nil {
		log.Error("failed to extract question document: %v", err)
		j.Err = err
		return err
	}

	if j.DebugDir != "" {
		// Raw text dump for eyeballing extraction problems.
		path := filepath.Join(j.DebugDir, "debug_"+j.Set+"_questions.txt")
		if err := os.WriteFile(path, []byte(questionText), 0o644); err != nil {
			log.Warn("failed to write debug text to %s: %v", path, err)
		} else {
			log.Debug("debug text written to %s", path)
		}
	}

	answerText, err := j.Extract(j.AnswersPath)
	if err != nil {
		log.Error("failed to extract answer document: %v", err)
		j.Err = err
		return err
	}

	j.Result = parser.ParseSet(j.Set, questionText, answerText, j.Profile)
	for _, w := range j.Result.Warnings {
		log.Warn("%s", w)
	}
	log.Info("parsed %d questions in set %s", len(j.Result.Questions), j.Set)
	return nil
}
