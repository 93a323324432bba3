package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jnovotny/examtrainer/internal/models"
)

// Warning names a recoverable extraction gap: a question with missing
// options, a question without an answer-key entry, or a document that
// produced no questions at all. Warnings never abort a batch.
type Warning struct {
	Set     string
	Ordinal int // 0 when the warning concerns the whole set
	Reason  string
}

func (w Warning) String() string {
	if w.Ordinal == 0 {
		return fmt.Sprintf("set %s: %s", w.Set, w.Reason)
	}
	return fmt.Sprintf("set %s question %d: %s", w.Set, w.Ordinal, w.Reason)
}

// SetResult is the outcome of parsing one document pair.
type SetResult struct {
	Questions []models.Question
	Warnings  []Warning
}

// ParseSet runs the full pipeline for one exam set: segment the question
// document, parse each block, parse the answer key, and join the two on the
// ordinal. Questions present in the document but absent from the key are
// skipped with a warning. The result is sorted by ordinal ascending so
// iteration is deterministic before any shuffling.
func ParseSet(set, questionText, answerText string, p Profile) SetResult {
	var res SetResult

	segments := Split(questionText, p)
	if len(segments) == 0 {
		res.Warnings = append(res.Warnings, Warning{
			Set:    set,
			Reason: "no question headers found in document",
		})
		return res
	}

	// Duplicate ordinals overwrite earlier blocks: last block wins. This is
	// the documented contract, implemented as a plain map insert.
	blocks := make(map[int]Block, len(segments))
	for _, seg := range segments {
		block := ParseBlock(seg.Text, p)
		if !block.Complete() {
			res.Warnings = append(res.Warnings, Warning{
				Set:     set,
				Ordinal: seg.Ordinal,
				Reason:  fmt.Sprintf("expected 4 options, found %v", block.Letters),
			})
		}
		blocks[seg.Ordinal] = block
	}

	key := ParseAnswerKey(answerText, p)

	ordinals := make([]int, 0, len(blocks))
	for ordinal := range blocks {
		ordinals = append(ordinals, ordinal)
	}
	sort.Ints(ordinals)

	for _, ordinal := range ordinals {
		block := blocks[ordinal]
		letter, ok := key[ordinal]
		if !ok {
			res.Warnings = append(res.Warnings, Warning{
				Set:     set,
				Ordinal: ordinal,
				Reason:  "no answer-key entry, question skipped",
			})
			continue
		}
		res.Questions = append(res.Questions, models.Question{
			Set:          set,
			ID:           ordinal,
			Language:     p.Language,
			Question:     block.Stem,
			Options:      block.Options,
			CorrectIndex: strings.Index(models.OptionLetters, letter),
		})
	}
	return res
}
