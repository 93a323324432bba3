package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/jnovotny/examtrainer/internal/logger"
	"github.com/jnovotny/examtrainer/internal/services"
)

type Server struct {
	SessionService services.SessionService
	StatsService   services.StatsService
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/languages", s.handleLanguages)
		r.Get("/languages/{lang}/sets", s.handleSets)

		r.Post("/sessions", s.handleStartSession)
		r.Route("/sessions/{user}", func(r chi.Router) {
			r.Get("/current", s.handleCurrentQuestion)
			r.Post("/answer", s.handleSubmitAnswer)
			r.Post("/advance", s.handleAdvance)
			r.Post("/finish", s.handleFinish)
			r.Post("/reset", s.handleReset)
		})

		r.Get("/users/{user}/stats", s.handleUserStats)
		r.Get("/users/{user}/runs", s.handleUserRuns)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Default().Error("failed to encode response: %v", err)
	}
}
