package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/jnovotny/examtrainer/internal/api"
	"github.com/jnovotny/examtrainer/internal/artifact"
	"github.com/jnovotny/examtrainer/internal/config"
	"github.com/jnovotny/examtrainer/internal/db"
	"github.com/jnovotny/examtrainer/internal/logger"
	"github.com/jnovotny/examtrainer/internal/models"
	"github.com/jnovotny/examtrainer/internal/repository/sqlite"
	"github.com/jnovotny/examtrainer/internal/services"
	"github.com/jnovotny/examtrainer/internal/session"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Exam Trainer Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("data_dir=%s", cfg.DataDir)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("weak_threshold=%v", cfg.WeakThreshold)

	collections := loadCollections(log, cfg.DataDir)
	if len(collections) == 0 {
		log.Warn("no question artifacts found in %s, sessions cannot start until artifacts are generated", cfg.DataDir)
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	statsStore := artifact.NewStatsStore(filepath.Join(cfg.DataDir, "stats.json"))
	runRepo := sqlite.NewRunRepository(database.DB)
	manager := session.NewManager(nil)

	sessionService := services.NewSessionService(collections, statsStore, runRepo, manager, cfg.WeakThreshold)
	statsService := services.NewStatsService(statsStore, runRepo, cfg.WeakThreshold)

	srv := &api.Server{
		SessionService: sessionService,
		StatsService:   statsService,
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("Exam Trainer Server Stopped")
	log.Info("===========================================")
}

// loadCollections reads every questions_<language>.json artifact in dir.
// A language whose artifact is missing simply stays unavailable; a language
// whose artifact exists but cannot be parsed stops the server, since serving
// a silently empty set would be worse.
func loadCollections(log *logger.Logger, dir string) map[string]map[string][]models.Question {
	collections := make(map[string]map[string][]models.Question)

	paths, err := filepath.Glob(filepath.Join(dir, "questions_*.json"))
	if err != nil {
		log.Error("failed to scan data dir %s: %v", dir, err)
		os.Exit(1)
	}

	for _, path := range paths {
		base := filepath.Base(path)
		language := strings.TrimSuffix(strings.TrimPrefix(base, "questions_"), ".json")

		sets, err := artifact.LoadQuestions(path)
		if err != nil {
			log.Error("failed to load question artifact %s: %v", path, err)
			os.Exit(1)
		}

		total := 0
		for _, qs := range sets {
			total += len(qs)
		}
		log.Info("loaded %d questions in %d sets for language %s", total, len(sets), language)
		collections[language] = sets
	}
	return collections
}
