package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jnovotny/examtrainer/internal/models"
)

func (s *Server) handleUserStats(w http.ResponseWriter, r *http.Request) {
	user := chi.URLParam(r, "user")

	summary, err := s.StatsService.Summary(r.Context(), user)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (s *Server) handleUserRuns(w http.ResponseWriter, r *http.Request) {
	user := chi.URLParam(r, "user")
	q := r.URL.Query()

	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	filter := models.RunFilter{
		User:     user,
		Language: q.Get("language"),
		Set:      q.Get("set"),
		Mode:     q.Get("mode"),
		Limit:    limit,
		Offset:   offset,
	}

	runs, total, err := s.StatsService.ListRuns(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"runs":  runs,
		"total": total,
	})
}
