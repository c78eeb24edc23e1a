package usecase

import (
	"sort"
	"strings"

	"github.com/kirillkom/lrhub/internal/core/ports"
	"github.com/kirillkom/lrhub/internal/infrastructure/vectorspace"
)

const (
	NoContentSummary        = "No content available to summarize."
	DefaultSummarySentences = 5
	DefaultSummaryMaxWords  = 100
)

// Summarizer selects the highest-weighted segments of a text and returns them
// in document order.
type Summarizer struct {
	segmenter  ports.Segmenter
	vectorizer *vectorspace.Vectorizer
}

func NewSummarizer(segmenter ports.Segmenter, vectorizer *vectorspace.Vectorizer) *Summarizer {
	if vectorizer == nil {
		vectorizer = vectorspace.NewVectorizer()
	}
	return &Summarizer{segmenter: segmenter, vectorizer: vectorizer}
}

func (s *Summarizer) Summarize(text string, numSentences, maxWords int) string {
	if numSentences <= 0 {
		numSentences = DefaultSummarySentences
	}
	if maxWords <= 0 {
		maxWords = DefaultSummaryMaxWords
	}

	segments := s.segmenter.Segment(text)
	switch len(segments) {
	case 0:
		return NoContentSummary
	case 1:
		return headWords(text, maxWords)
	}

	_, rows := s.vectorizer.FitTransform(segments)
	order := make([]int, len(segments))
	scores := make([]float64, len(segments))
	for i, row := range rows {
		order[i] = i
		scores[i] = row.Sum()
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	if numSentences < len(order) {
		order = order[:numSentences]
	}
	sort.Ints(order)

	selected := make([]string, 0, len(order))
	for _, idx := range order {
		selected = append(selected, segments[idx])
	}
	summary, _ := truncateWords(strings.Join(selected, " "), maxWords)
	return summary
}
