package models

// QuestionStat is the historical tally for one question and one user.
// Counts only ever grow.
type QuestionStat struct {
	Seen    int `json:"seen"`
	Correct int `json:"correct"`
}

// UserStats holds all per-question tallies for one user, keyed by the
// "language:set:id" string form of QuestionKey (artifact contract).
type UserStats struct {
	Questions map[string]*QuestionStat `json:"questions"`
}

// StatsRecord is the full stats artifact: user name to that user's stats.
type StatsRecord map[string]*UserStats

// LanguageSetStat aggregates a user's tallies per (language, set).
type LanguageSetStat struct {
	Language string  `json:"language"`
	Set      string  `json:"set"`
	Seen     int     `json:"seen"`
	Correct  int     `json:"correct"`
	Rate     float64 `json:"rate"`
}

// WeakQuestion is one historically weak question in a stats summary.
type WeakQuestion struct {
	Language string  `json:"language"`
	Set      string  `json:"set"`
	ID       int     `json:"id"`
	Seen     int     `json:"seen"`
	Correct  int     `json:"correct"`
	Rate     float64 `json:"rate"`
}

// StatsSummary is the user-facing overview of accumulated stats.
type StatsSummary struct {
	TotalSeen     int               `json:"total_seen"`
	TotalCorrect  int               `json:"total_correct"`
	OverallRate   float64           `json:"overall_rate"`
	ByLanguageSet []LanguageSetStat `json:"by_language_set"`
	WeakQuestions []WeakQuestion    `json:"weak_questions"`
}
