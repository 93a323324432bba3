package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/jnovotny/examtrainer/internal/models"
)

// The question artifact is a JSON array of question objects. Its shape is
// shared with artifacts produced by earlier versions of the generator, so
// files written by either can be read by both.

// SaveQuestions writes a question artifact.
func SaveQuestions(path string, questions []models.Question) error {
	data, err := json.MarshalIndent(questions, "", "  ")
	if err != nil {
		return fmt.Errorf("encode question artifact: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write question artifact: %w", err)
	}
	return nil
}

// LoadQuestions reads a question artifact and groups it by set, each set
// sorted by question id ascending. A missing or unreadable file is an error:
// without the artifact no session for that language can start.
func LoadQuestions(path string) (map[string][]models.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question artifact %s: %w", path, err)
	}

	var questions []models.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("decode question artifact %s: %w", path, err)
	}

	// correct_index is an option slot; anything outside [0,4) would panic at
	// scoring time, so a hand-edited artifact is rejected here, same as an
	// unreadable one.
	for _, q := range questions {
		if q.CorrectIndex < 0 || q.CorrectIndex >= models.NumOptions {
			return nil, fmt.Errorf("question artifact %s: set %s question %d: correct_index %d out of range",
				path, q.Set, q.ID, q.CorrectIndex)
		}
	}

	sets := make(map[string][]models.Question)
	for _, q := range questions {
		sets[q.Set] = append(sets[q.Set], q)
	}
	for set := range sets {
		qs := sets[set]
		sort.Slice(qs, func(i, j int) bool { return qs[i].ID < qs[j].ID })
	}
	return sets, nil
}

// SetNames returns the set identifiers of a grouped collection in sorted order.
func SetNames(sets map[string][]models.Question) []string {
	names := make([]string, 0, len(sets))
	for name := range sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
