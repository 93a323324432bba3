package models

import "time"

// Run is one completed practice run, persisted to run history.
type Run struct {
	ID             string    `json:"id"`
	User           string    `json:"user"`
	Language       string    `json:"language"`
	Set            string    `json:"set"`
	Mode           string    `json:"mode"`
	Total          int       `json:"total"`
	Correct        int       `json:"correct"`
	ScorePercent   float64   `json:"score_percent"`
	ElapsedSeconds int       `json:"elapsed_seconds"`
	StartedAt      time.Time `json:"started_at"`
	FinishedAt     time.Time `json:"finished_at"`
	CreatedAt      time.Time `json:"created_at"`
}

// RunFilter selects runs from history.
type RunFilter struct {
	User     string
	Language string
	Set      string
	Mode     string
	Limit    int
	Offset   int
}

// QuestionResult is the per-question outcome inside a scored run.
type QuestionResult struct {
	Set           string `json:"set"`
	ID            int    `json:"id"`
	Correct       bool   `json:"correct"`
	ChosenIndex   int    `json:"chosen_index"`
	CorrectIndex  int    `json:"correct_index"`
	CorrectOption string `json:"correct_option"`
}

// ScoredRun is the result of a finished session.
type ScoredRun struct {
	Correct      int              `json:"correct"`
	Total        int              `json:"total"`
	ScorePercent float64          `json:"score_percent"`
	Elapsed      time.Duration    `json:"-"`
	ElapsedText  string           `json:"elapsed"`
	Results      []QuestionResult `json:"results"`
}
