package models

import (
	"fmt"
	"strconv"
	"strings"
)

// NumOptions is the fixed number of option slots on a question.
const NumOptions = 4

// OptionLetters holds the option letters in canonical order. The position of
// a letter in this string is the option's original index.
const OptionLetters = "abcd"

// Question is one parsed exam question. The JSON shape is the contract with
// artifacts written by earlier versions of the generator and must not change.
type Question struct {
	Set          string             `json:"set"`
	ID           int                `json:"id"`
	Language     string             `json:"language"`
	Question     string             `json:"question"`
	Options      [NumOptions]string `json:"options"`
	CorrectIndex int                `json:"correct_index"`
}

// Key returns the composite identity of the question.
func (q Question) Key() QuestionKey {
	return QuestionKey{Language: q.Language, Set: q.Set, ID: q.ID}
}

// QuestionKey identifies a question across sets and languages. Using a struct
// instead of a formatted string gives structural equality for map keys; the
// string form exists only at the stats artifact boundary.
type QuestionKey struct {
	Language string
	Set      string
	ID       int
}

func (k QuestionKey) String() string {
	return fmt.Sprintf("%s:%s:%d", k.Language, k.Set, k.ID)
}

// ParseQuestionKey parses the "language:set:id" form used in the stats
// artifact. Malformed keys return an error so callers can skip them.
func ParseQuestionKey(s string) (QuestionKey, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return QuestionKey{}, fmt.Errorf("malformed question key %q", s)
	}
	id, err := strconv.Atoi(parts[2])
	if err != nil {
		return QuestionKey{}, fmt.Errorf("malformed question id in key %q: %w", s, err)
	}
	return QuestionKey{Language: parts[0], Set: parts[1], ID: id}, nil
}
