package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jnovotny/examtrainer/internal/parser"
)

func TestParseAnswerKey_AfterMarker(t *testing.T) {
	text := "Sample Exam Answers\n" +
		"3 x this numbered line is body text, not a key row\n" +
		"Answer Key\n" +
		"1 b\n" +
		"2 a) with trailing note\n" +
		"3 D\n"

	key := parser.ParseAnswerKey(text, parser.English())

	assert.Equal(t, map[int]string{1: "b", 2: "a", 3: "d"}, key)
}

func TestParseAnswerKey_MarkerCaseInsensitive(t *testing.T) {
	key := parser.ParseAnswerKey("ANSWER KEY\n4 c\n", parser.English())
	assert.Equal(t, map[int]string{4: "c"}, key)
}

func TestParseAnswerKey_MissingMarkerFallsBackToFullScan(t *testing.T) {
	// No marker: best-effort scan of the whole text.
	key := parser.ParseAnswerKey("1 a\n2 b\n", parser.English())
	assert.Equal(t, map[int]string{1: "a", 2: "b"}, key)
}

func TestParseAnswerKey_IgnoresNonMatchingLines(t *testing.T) {
	text := "Answer Key\nQuestion Answer Points\n1 b\ntotals: 40\n2 c\n"
	key := parser.ParseAnswerKey(text, parser.English())

	assert.Equal(t, map[int]string{1: "b", 2: "c"}, key)
}

func TestParseAnswerKey_CzechMarker(t *testing.T) {
	text := "Odpovědi vzorové zkoušky\nKlíč odpovědí\n1 c\n2 a\n"
	key := parser.ParseAnswerKey(text, parser.Czech())

	assert.Equal(t, map[int]string{1: "c", 2: "a"}, key)
}
