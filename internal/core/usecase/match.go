package usecase

import (
	"sort"
	"strings"

	"github.com/kirillkom/lrhub/internal/core/domain"
	"github.com/kirillkom/lrhub/internal/infrastructure/vectorspace"
)

const DefaultRecommendTopN = 5

// CorpusMatcher ranks whole catalog items against a query. It shares the
// scorer's vectorizer, so stop words are removed and the dot product of the
// normalised vectors is cosine similarity.
type CorpusMatcher struct {
	vectorizer *vectorspace.Vectorizer
}

func NewCorpusMatcher(vectorizer *vectorspace.Vectorizer) *CorpusMatcher {
	if vectorizer == nil {
		vectorizer = vectorspace.NewVectorizer()
	}
	return &CorpusMatcher{vectorizer: vectorizer}
}

func (m *CorpusMatcher) Match(items []domain.CatalogItem, query string, topN int) []domain.CatalogItem {
	if len(items) == 0 || strings.TrimSpace(query) == "" {
		return []domain.CatalogItem{}
	}
	if topN <= 0 {
		topN = DefaultRecommendTopN
	}

	corpus := make([]string, len(items))
	for i, item := range items {
		corpus[i] = item.MatchText()
	}
	model, rows := m.vectorizer.FitTransform(corpus)
	queryVec := model.Transform(query)

	order := make([]int, len(items))
	scores := make([]float64, len(items))
	for i, row := range rows {
		order[i] = i
		scores[i] = vectorspace.Dot(queryVec, row)
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	if topN < len(order) {
		order = order[:topN]
	}

	out := make([]domain.CatalogItem, 0, len(order))
	for _, idx := range order {
		out = append(out, items[idx])
	}
	return out
}
