package stats

import (
	"sort"

	"github.com/jnovotny/examtrainer/internal/models"
)

// DefaultWeakThreshold is the success rate below which a question counts as
// weak for targeted practice.
const DefaultWeakThreshold = 0.7

// maxWeakInSummary caps the weakest-questions table in a stats summary.
const maxWeakInSummary = 20

// Record increments the seen count, and the correct count when wasCorrect,
// for one question in a stats record. Missing users and questions are created
// with zero counts. Counts only ever grow.
func Record(rec models.StatsRecord, user string, key models.QuestionKey, wasCorrect bool) {
	userStats, ok := rec[user]
	if !ok || userStats == nil {
		userStats = &models.UserStats{}
		rec[user] = userStats
	}
	if userStats.Questions == nil {
		userStats.Questions = make(map[string]*models.QuestionStat)
	}

	st, ok := userStats.Questions[key.String()]
	if !ok {
		st = &models.QuestionStat{}
		userStats.Questions[key.String()] = st
	}
	st.Seen++
	if wasCorrect {
		st.Correct++
	}
}

// SuccessRate returns correct/seen for a tally. The second return value is
// false when seen is zero: such questions have no data and are excluded from
// weak-question selection rather than treated as rate 0.
func SuccessRate(st *models.QuestionStat) (float64, bool) {
	if st == nil || st.Seen == 0 {
		return 0, false
	}
	return float64(st.Correct) / float64(st.Seen), true
}

// SelectWeak returns the questions whose historical success rate for the user
// falls below threshold, preserving the input order. Questions never seen are
// excluded. An empty result is a valid outcome; falling back to the full set
// is the session layer's policy, not this function's.
func SelectWeak(userStats *models.UserStats, questions []models.Question, threshold float64) []models.Question {
	if userStats == nil || len(userStats.Questions) == 0 {
		return nil
	}

	var weak []models.Question
	for _, q := range questions {
		rate, ok := SuccessRate(userStats.Questions[q.Key().String()])
		if ok && rate < threshold {
			weak = append(weak, q)
		}
	}
	return weak
}

// Summarize aggregates one user's stats: overall totals, per (language, set)
// groupings, and the weakest questions sorted by rate ascending. Keys that do
// not parse are skipped; they can only come from hand-edited artifacts.
func Summarize(userStats *models.UserStats, threshold float64) models.StatsSummary {
	summary := models.StatsSummary{}
	if userStats == nil {
		return summary
	}

	type langSet struct {
		language string
		set      string
	}
	groups := make(map[langSet]*models.LanguageSetStat)

	for keyStr, st := range userStats.Questions {
		key, err := models.ParseQuestionKey(keyStr)
		if err != nil || st == nil {
			continue
		}

		summary.TotalSeen += st.Seen
		summary.TotalCorrect += st.Correct

		gk := langSet{language: key.Language, set: key.Set}
		grp, ok := groups[gk]
		if !ok {
			grp = &models.LanguageSetStat{Language: key.Language, Set: key.Set}
			groups[gk] = grp
		}
		grp.Seen += st.Seen
		grp.Correct += st.Correct

		if rate, ok := SuccessRate(st); ok && rate < threshold {
			summary.WeakQuestions = append(summary.WeakQuestions, models.WeakQuestion{
				Language: key.Language,
				Set:      key.Set,
				ID:       key.ID,
				Seen:     st.Seen,
				Correct:  st.Correct,
				Rate:     rate,
			})
		}
	}

	if summary.TotalSeen > 0 {
		summary.OverallRate = float64(summary.TotalCorrect) / float64(summary.TotalSeen)
	}

	for _, grp := range groups {
		if grp.Seen > 0 {
			grp.Rate = float64(grp.Correct) / float64(grp.Seen)
		}
		summary.ByLanguageSet = append(summary.ByLanguageSet, *grp)
	}
	sort.Slice(summary.ByLanguageSet, func(i, j int) bool {
		a, b := summary.ByLanguageSet[i], summary.ByLanguageSet[j]
		if a.Language != b.Language {
			return a.Language < b.Language
		}
		return a.Set < b.Set
	})

	sort.Slice(summary.WeakQuestions, func(i, j int) bool {
		a, b := summary.WeakQuestions[i], summary.WeakQuestions[j]
		if a.Rate != b.Rate {
			return a.Rate < b.Rate
		}
		if a.Language != b.Language {
			return a.Language < b.Language
		}
		if a.Set != b.Set {
			return a.Set < b.Set
		}
		return a.ID < b.ID
	})
	if len(summary.WeakQuestions) > maxWeakInSummary {
		summary.WeakQuestions = summary.WeakQuestions[:maxWeakInSummary]
	}

	return summary
}
