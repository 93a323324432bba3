package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnovotny/examtrainer/internal/parser"
)

func TestParseSet_JoinsBlocksWithKey(t *testing.T) {
	questionText := "Question 1 (1 Point)\nWhat is X?\na) foo\nb) bar\nc) baz\nd) qux"
	answerText := "Answer Key\n1 b\n"

	res := parser.ParseSet("A", questionText, answerText, parser.English())

	require.Len(t, res.Questions, 1)
	q := res.Questions[0]
	assert.Equal(t, "A", q.Set)
	assert.Equal(t, 1, q.ID)
	assert.Equal(t, "en", q.Language)
	assert.Equal(t, "What is X?", q.Question)
	assert.Equal(t, [4]string{"foo", "bar", "baz", "qux"}, q.Options)
	assert.Equal(t, 1, q.CorrectIndex)
	assert.Empty(t, res.Warnings)
}

func TestParseSet_MissingKeyEntrySkipsWithWarning(t *testing.T) {
	questionText := "Question 1 (1 Point)\nFirst?\na) 1\nb) 2\nc) 3\nd) 4\n" +
		"Question 2 (1 Point)\nSecond?\na) 1\nb) 2\nc) 3\nd) 4"
	answerText := "Answer Key\n1 a\n"

	res := parser.ParseSet("B", questionText, answerText, parser.English())

	require.Len(t, res.Questions, 1)
	assert.Equal(t, 1, res.Questions[0].ID)

	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "B", res.Warnings[0].Set)
	assert.Equal(t, 2, res.Warnings[0].Ordinal)
	assert.Contains(t, res.Warnings[0].Reason, "no answer-key entry")
}

func TestParseSet_IncompleteBlockWarnsButStillEmits(t *testing.T) {
	questionText := "Question 5 (1 Point)\nOnly two options?\na) 1\nb) 2"
	answerText := "Answer Key\n5 a\n"

	res := parser.ParseSet("C", questionText, answerText, parser.English())

	require.Len(t, res.Questions, 1)
	assert.Equal(t, [4]string{"1", "2", "", ""}, res.Questions[0].Options)

	require.Len(t, res.Warnings, 1)
	assert.Equal(t, 5, res.Warnings[0].Ordinal)
	assert.Contains(t, res.Warnings[0].Reason, "expected 4 options")
}

func TestParseSet_EmptyDocumentWarns(t *testing.T) {
	res := parser.ParseSet("D", "no headers here", "Answer Key\n1 a\n", parser.English())

	assert.Empty(t, res.Questions)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, 0, res.Warnings[0].Ordinal)
	assert.Contains(t, res.Warnings[0].Reason, "no question headers")
}

func TestParseSet_DuplicateOrdinalLastWins(t *testing.T) {
	questionText := "Question 3 (1 Point)\nEarlier text?\na) a1\nb) b1\nc) c1\nd) d1\n" +
		"Question 3 (1 Point)\nLater text?\na) a2\nb) b2\nc) c2\nd) d2"
	answerText := "Answer Key\n3 c\n"

	res := parser.ParseSet("A", questionText, answerText, parser.English())

	require.Len(t, res.Questions, 1)
	assert.Equal(t, "Later text?", res.Questions[0].Question)
	assert.Equal(t, 2, res.Questions[0].CorrectIndex)
}

func TestParseSet_SortedByOrdinal(t *testing.T) {
	questionText := "Question 9 (1 Point)\nNine?\na) 1\nb) 2\nc) 3\nd) 4\n" +
		"Question 2 (1 Point)\nTwo?\na) 1\nb) 2\nc) 3\nd) 4"
	answerText := "Answer Key\n2 a\n9 b\n"

	res := parser.ParseSet("A", questionText, answerText, parser.English())

	require.Len(t, res.Questions, 2)
	assert.Equal(t, 2, res.Questions[0].ID)
	assert.Equal(t, 9, res.Questions[1].ID)
}
