package usecase

import (
	"math"

	"github.com/kirillkom/lrhub/internal/core/domain"
	"github.com/kirillkom/lrhub/internal/core/ports"
	"github.com/kirillkom/lrhub/internal/infrastructure/vectorspace"
)

const (
	NoContentMatch       = "No content available"
	DefaultScoreMaxWords = 40
)

// RelevanceScorer finds the segment of a document most similar to a query.
type RelevanceScorer struct {
	segmenter  ports.Segmenter
	vectorizer *vectorspace.Vectorizer
}

func NewRelevanceScorer(segmenter ports.Segmenter, vectorizer *vectorspace.Vectorizer) *RelevanceScorer {
	if vectorizer == nil {
		vectorizer = vectorspace.NewVectorizer()
	}
	return &RelevanceScorer{segmenter: segmenter, vectorizer: vectorizer}
}

// Score returns the best-matching segment and its cosine similarity as a
// percentage rounded to two decimals. A query without indexable terms scores 0
// with an empty match.
func (s *RelevanceScorer) Score(text, query string, maxWords int) domain.ScoreResult {
	if maxWords <= 0 {
		maxWords = DefaultScoreMaxWords
	}

	segments := s.segmenter.Segment(text)
	if len(segments) == 0 {
		return domain.ScoreResult{Score: 0, Match: NoContentMatch}
	}
	if !s.vectorizer.HasTerms(query) {
		return domain.ScoreResult{Score: 0, Match: ""}
	}

	corpus := make([]string, 0, len(segments)+1)
	corpus = append(corpus, segments...)
	corpus = append(corpus, query)
	_, rows := s.vectorizer.FitTransform(corpus)
	queryVec := rows[len(rows)-1]

	best, bestSim := 0, -1.0
	for i := range segments {
		sim := vectorspace.Dot(queryVec, rows[i])
		if sim > bestSim {
			best, bestSim = i, sim
		}
	}

	match, _ := truncateWords(segments[best], maxWords)
	return domain.ScoreResult{
		Score: toPercent(bestSim),
		Match: match,
	}
}

func toPercent(sim float64) float64 {
	if math.IsNaN(sim) || sim < 0 {
		sim = 0
	}
	if sim > 1 {
		sim = 1
	}
	return math.Round(sim*100*100) / 100
}
