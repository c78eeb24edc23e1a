package usecase

import "strings"

const ellipsis = "..."

// truncateWords keeps the first maxWords whitespace-separated words and appends
// an ellipsis when anything was cut. The boolean reports whether truncation happened.
func truncateWords(text string, maxWords int) (string, bool) {
	words := strings.Fields(text)
	if maxWords <= 0 || len(words) <= maxWords {
		return text, false
	}
	return strings.Join(words[:maxWords], " ") + ellipsis, true
}

// headWords always appends the ellipsis, even when text is shorter than maxWords.
func headWords(text string, maxWords int) string {
	words := strings.Fields(text)
	if maxWords > 0 && len(words) > maxWords {
		words = words[:maxWords]
	}
	return strings.Join(words, " ") + ellipsis
}
