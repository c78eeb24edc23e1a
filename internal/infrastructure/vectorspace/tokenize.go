package vectorspace

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// tokenize lowercases text and returns runs of two or more word characters
// (letters, digits, underscore). Text is NFKC-normalised first so that
// ligatures produced by PDF extraction ("ﬁ") match their plain spelling.
func tokenize(s string) []string {
	if s == "" {
		return nil
	}
	s = norm.NFKC.String(s)

	out := make([]string, 0, 24)
	var b strings.Builder
	n := 0
	emit := func() {
		if n >= 2 {
			out = append(out, b.String())
		}
		b.Reset()
		n = 0
	}
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(unicode.ToLower(r))
			n++
			continue
		}
		emit()
	}
	emit()
	return out
}
