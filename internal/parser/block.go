package parser

import (
	"strings"

	"github.com/jnovotny/examtrainer/internal/models"
)

// Block is the parsed content of one question segment: the stem and the four
// option slots. Letters the source never produced stay empty strings.
type Block struct {
	Stem    string
	Options [models.NumOptions]string
	Letters []string // distinct letters actually found, in first-seen order
}

// ParseBlock splits a segment's text into a stem and lettered options.
//
// Lines are classified by a two-state mode machine: "question" until the
// first line matching the option pattern, then "answers". In answers mode a
// matching line starts a new letter and a non-matching line is a wrapped
// continuation of the most recently started letter, appended space-joined.
// This continuation policy mirrors how the source documents wrap long
// options across lines.
func ParseBlock(text string, p Profile) Block {
	var (
		stemLines  []string
		options    [models.NumOptions]string
		letters    []string
		lastIdx    = -1
		inQuestion = true
	)

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		m := p.option.FindStringSubmatch(line)
		switch {
		case m != nil:
			inQuestion = false
			letter := strings.ToLower(m[1])
			idx := strings.Index(models.OptionLetters, letter)
			if options[idx] == "" {
				letters = append(letters, letter)
			}
			options[idx] = strings.TrimSpace(m[2])
			lastIdx = idx
		case inQuestion:
			stemLines = append(stemLines, line)
		case lastIdx >= 0:
			options[lastIdx] += " " + line
		}
	}

	return Block{
		Stem:    strings.Join(stemLines, " "),
		Options: options,
		Letters: letters,
	}
}

// Complete reports whether all four option letters were found.
func (b Block) Complete() bool {
	return len(b.Letters) == models.NumOptions
}
