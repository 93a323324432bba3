package parser

import "strconv"

// Segment is one question block cut out of a raw document: the ordinal from
// the header and everything up to the next header (or end of text).
type Segment struct {
	Ordinal int
	Text    string
}

// Split cuts raw document text into question segments using the profile's
// header pattern. A document with no header matches yields an empty slice;
// the set builder reports that as a warning, not an error. Ordinals are taken
// as written in the source and need not be contiguous or unique.
func Split(text string, p Profile) []Segment {
	matches := p.header.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	segments := make([]Segment, 0, len(matches))
	for i, m := range matches {
		// m[2]:m[3] is the ordinal capture group.
		ordinal, err := strconv.Atoi(text[m[2]:m[3]])
		if err != nil {
			continue
		}
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		segments = append(segments, Segment{
			Ordinal: ordinal,
			Text:    text[m[1]:end],
		})
	}
	return segments
}
