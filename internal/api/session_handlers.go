package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jnovotny/examtrainer/internal/errors"
	"github.com/jnovotny/examtrainer/internal/logger"
	"github.com/jnovotny/examtrainer/internal/session"
)

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"languages": s.SessionService.Languages(),
	})
}

func (s *Server) handleSets(w http.ResponseWriter, r *http.Request) {
	lang := chi.URLParam(r, "lang")

	sets, err := s.SessionService.ListSets(r.Context(), lang)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"language": lang,
		"sets":     sets,
	})
}

type startSessionRequest struct {
	User             string `json:"user"`
	Language         string `json:"language"`
	Set              string `json:"set"`
	Mode             string `json:"mode"`
	ShuffleQuestions bool   `json:"shuffle_questions"`
	ShuffleOptions   bool   `json:"shuffle_options"`
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("invalid start session body: %v", err)
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}
	if req.Mode == "" {
		req.Mode = string(session.ModeStandard)
	}

	info, err := s.SessionService.Start(r.Context(), session.Config{
		User:             req.User,
		Language:         req.Language,
		Set:              req.Set,
		Mode:             session.Mode(req.Mode),
		ShuffleQuestions: req.ShuffleQuestions,
		ShuffleOptions:   req.ShuffleOptions,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, info)
}

func (s *Server) handleCurrentQuestion(w http.ResponseWriter, r *http.Request) {
	user := chi.URLParam(r, "user")

	view, err := s.SessionService.Current(r.Context(), user)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

type submitAnswerRequest struct {
	Selected int `json:"selected"`
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	user := chi.URLParam(r, "user")

	var req submitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("invalid answer body: %v", err)
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}

	if err := s.SessionService.SubmitAnswer(r.Context(), user, req.Selected); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

type advanceRequest struct {
	Delta int `json:"delta"`
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	user := chi.URLParam(r, "user")

	var req advanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("invalid advance body: %v", err)
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}

	if err := s.SessionService.Advance(r.Context(), user, req.Delta); err != nil {
		handleError(w, r, err)
		return
	}

	view, err := s.SessionService.Current(r.Context(), user)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (s *Server) handleFinish(w http.ResponseWriter, r *http.Request) {
	user := chi.URLParam(r, "user")

	run, err := s.SessionService.Finish(r.Context(), user)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, run)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	user := chi.URLParam(r, "user")

	if err := s.SessionService.Reset(r.Context(), user); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
