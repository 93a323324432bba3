package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/jnovotny/examtrainer/internal/artifact"
	"github.com/jnovotny/examtrainer/internal/logger"
	"github.com/jnovotny/examtrainer/internal/services"
	"github.com/jnovotny/examtrainer/internal/worker"
)

// The generator turns pre-extracted exam document text into a question
// artifact. The manifest is a JSON array of document pairs:
//
//	[{"set": "A", "questions": "a_questions.txt", "answers": "a_answers.txt"}, ...]
//
// Extraction from binary document formats happens outside this tool; point
// the manifest at plain-text exports.
func main() {
	var (
		language = flag.String("lang", "en", "language of the documents (en, cs)")
		manifest = flag.String("manifest", "", "path to the set manifest JSON (required)")
		out      = flag.String("out", "", "output artifact path (default questions_<lang>.json)")
		debugDir = flag.String("debug-dir", "", "directory for raw text dumps (empty disables)")
		workers  = flag.Int("workers", 2, "number of concurrent parse workers")
		logLevel = flag.String("log-level", "INFO", "log level")
	)
	flag.Parse()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(*logLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if *manifest == "" {
		fmt.Fprintln(os.Stderr, "usage: generate -lang <en|cs> -manifest <sets.json> [-out <file>]")
		os.Exit(2)
	}
	outPath := *out
	if outPath == "" {
		outPath = "questions_" + *language + ".json"
	}

	sources, err := loadManifest(*manifest)
	if err != nil {
		log.Error("failed to load manifest: %v", err)
		os.Exit(1)
	}

	pool := worker.NewPool(*workers, len(sources))
	ctx, cancel := context.WithCancel(context.Background())
	pool.Start(ctx)
	defer func() {
		cancel()
		pool.Stop()
	}()

	extract := func(path string) (string, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	svc := services.NewGenerateService(pool, extract)
	report, err := svc.Generate(ctx, *language, sources, *debugDir)
	if err != nil {
		log.Error("generation failed: %v", err)
		os.Exit(1)
	}

	if err := artifact.SaveQuestions(outPath, report.Questions); err != nil {
		log.Error("failed to write artifact: %v", err)
		os.Exit(1)
	}
	log.Info("wrote %d questions to %s", len(report.Questions), outPath)
	if len(report.Warnings) > 0 {
		log.Warn("%d warnings during generation, see log above", len(report.Warnings))
	}
}

func loadManifest(path string) ([]services.SetSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sources []services.SetSource
	if err := json.Unmarshal(data, &sources); err != nil {
		return nil, fmt.Errorf("decode manifest %s: %w", path, err)
	}
	return sources, nil
}
