package parser

import (
	"strconv"
	"strings"
)

// ParseAnswerKey extracts the ordinal-to-letter mapping from an answer
// document. Only text after the first occurrence of the profile's key-section
// marker (case-insensitive) is scanned, to avoid matching numbered lines in
// the document body. When the marker is absent the whole text is scanned
// best-effort; some answer documents omit the header, and a false positive
// here at worst mismatches a question in the builder rather than crashing.
func ParseAnswerKey(text string, p Profile) map[int]string {
	if idx := strings.Index(strings.ToLower(text), strings.ToLower(p.keyMarker)); idx >= 0 {
		text = text[idx:]
	}

	key := make(map[int]string)
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		m := p.keyRow.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		ordinal, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		key[ordinal] = strings.ToLower(m[2])
	}
	return key
}
