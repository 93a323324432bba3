package artifact_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnovotny/examtrainer/internal/artifact"
	"github.com/jnovotny/examtrainer/internal/models"
)

func sampleQuestions() []models.Question {
	return []models.Question{
		{Set: "B", ID: 2, Language: "en", Question: "b2?", Options: [4]string{"1", "2", "3", "4"}, CorrectIndex: 0},
		{Set: "A", ID: 9, Language: "en", Question: "a9?", Options: [4]string{"1", "2", "3", "4"}, CorrectIndex: 3},
		{Set: "A", ID: 1, Language: "en", Question: "a1?", Options: [4]string{"1", "2", "3", "4"}, CorrectIndex: 1},
	}
}

func TestSaveLoadQuestions_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions_en.json")

	require.NoError(t, artifact.SaveQuestions(path, sampleQuestions()))

	sets, err := artifact.LoadQuestions(path)
	require.NoError(t, err)

	require.Len(t, sets, 2)
	require.Len(t, sets["A"], 2)
	// Grouped by set and sorted by id.
	assert.Equal(t, 1, sets["A"][0].ID)
	assert.Equal(t, 9, sets["A"][1].ID)
	assert.Equal(t, "a1?", sets["A"][0].Question)
	assert.Equal(t, 1, sets["A"][0].CorrectIndex)
	assert.Equal(t, "b2?", sets["B"][0].Question)
}

func TestLoadQuestions_MissingFileIsAnError(t *testing.T) {
	_, err := artifact.LoadQuestions(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadQuestions_CorruptFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions_en.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := artifact.LoadQuestions(path)
	assert.Error(t, err)
}

func TestLoadQuestions_LegacyFieldNames(t *testing.T) {
	// Artifacts written by older generators use these exact field names.
	raw := `[{"set":"A","id":1,"language":"en","question":"q?","options":["w","x","y","z"],"correct_index":2}]`
	path := filepath.Join(t.TempDir(), "questions_en.json")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	sets, err := artifact.LoadQuestions(path)
	require.NoError(t, err)
	require.Len(t, sets["A"], 1)
	assert.Equal(t, [4]string{"w", "x", "y", "z"}, sets["A"][0].Options)
	assert.Equal(t, 2, sets["A"][0].CorrectIndex)
}

func TestLoadQuestions_RejectsOutOfRangeCorrectIndex(t *testing.T) {
	raw := `[{"set":"A","id":1,"language":"en","question":"q?","options":["w","x","y","z"],"correct_index":7}]`
	path := filepath.Join(t.TempDir(), "questions_en.json")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	_, err := artifact.LoadQuestions(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "correct_index 7 out of range")

	raw = `[{"set":"A","id":1,"language":"en","question":"q?","options":["w","x","y","z"],"correct_index":-1}]`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	_, err = artifact.LoadQuestions(path)
	assert.Error(t, err)
}

func TestSetNames_Sorted(t *testing.T) {
	sets := map[string][]models.Question{"C": nil, "A": nil, "B": nil}
	assert.Equal(t, []string{"A", "B", "C"}, artifact.SetNames(sets))
}
