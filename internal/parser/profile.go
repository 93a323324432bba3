package parser

import (
	"fmt"
	"regexp"
)

// Profile bundles the language-specific patterns used to cut a raw exam
// document into questions and to find the answer-key section.
type Profile struct {
	Language  string
	header    *regexp.Regexp
	option    *regexp.Regexp
	keyRow    *regexp.Regexp
	keyMarker string
}

// Shared across languages: option lines look like "a) some text" and key rows
// like "12 c", with anything after the letter ignored.
var (
	optionLineRe = regexp.MustCompile(`^([abcd])\)\s*(.+)$`)
	keyRowRe     = regexp.MustCompile(`(?i)^(\d+)\s+([abcd])\b`)
)

// English matches headers like "Question 1 (1 Point)" or "Question #3 (1 Mark)".
func English() Profile {
	return Profile{
		Language:  "en",
		header:    regexp.MustCompile(`(?i)Question\s+#?(\d+)\s*\(1\s+(?:Point|Mark)\)`),
		option:    optionLineRe,
		keyRow:    keyRowRe,
		keyMarker: "answer key",
	}
}

// Czech matches headers like "Otázka 1 (1 bod)".
func Czech() Profile {
	return Profile{
		Language:  "cs",
		header:    regexp.MustCompile(`Otázka\s+(\d+)\s+\(1 bod\)`),
		option:    optionLineRe,
		keyRow:    keyRowRe,
		keyMarker: "klíč odpovědí",
	}
}

// ProfileFor returns the parsing profile for a language tag.
func ProfileFor(language string) (Profile, error) {
	switch language {
	case "en":
		return English(), nil
	case "cs":
		return Czech(), nil
	default:
		return Profile{}, fmt.Errorf("no parsing profile for language %q", language)
	}
}
