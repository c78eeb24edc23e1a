package chunking

import (
	"strings"
	"unicode"
)

// Segmenter splits text into sentence- and paragraph-like units.
// A boundary is either a whitespace run that directly follows '.', '!' or '?',
// or a run of one or more newlines. Abbreviations and decimals are not special-cased.
type Segmenter struct{}

func NewSegmenter() *Segmenter {
	return &Segmenter{}
}

func (s *Segmenter) Segment(text string) []string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return nil
	}

	out := make([]string, 0, len(runes)/80+1)
	start := 0
	flush := func(end int) {
		segment := strings.TrimSpace(string(runes[start:end]))
		if segment != "" {
			out = append(out, segment)
		}
	}

	for i := 0; i < len(runes); {
		switch {
		case i > 0 && isTerminal(runes[i-1]) && unicode.IsSpace(runes[i]):
			flush(i)
			for i < len(runes) && unicode.IsSpace(runes[i]) {
				i++
			}
			start = i
		case runes[i] == '\n':
			flush(i)
			for i < len(runes) && runes[i] == '\n' {
				i++
			}
			start = i
		default:
			i++
		}
	}
	flush(len(runes))

	if len(out) == 0 {
		return nil
	}
	return out
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
