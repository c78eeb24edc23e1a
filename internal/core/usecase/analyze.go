package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/kirillkom/lrhub/internal/core/domain"
	"github.com/kirillkom/lrhub/internal/core/ports"
)

type AnalyzeUseCase struct {
	resolver ports.DocumentResolver
	source   ports.TextSource
	scorer   *RelevanceScorer
	maxWords int
}

func NewAnalyzeUseCase(resolver ports.DocumentResolver, source ports.TextSource, scorer *RelevanceScorer, maxWords int) *AnalyzeUseCase {
	return &AnalyzeUseCase{
		resolver: resolver,
		source:   source,
		scorer:   scorer,
		maxWords: maxWords,
	}
}

// Analyze fetches the referenced file and scores it against query. Fetch and
// parse failures are returned to the caller.
func (uc *AnalyzeUseCase) Analyze(ctx context.Context, ref domain.DocumentRef, query string) (*domain.DocumentAnalysis, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "analyze", fmt.Errorf("query is required"))
	}

	doc, err := uc.resolver.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	text, err := uc.source.FetchText(ctx, doc.FileURL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", ref, err)
	}

	return &domain.DocumentAnalysis{
		Ref:         ref,
		Title:       doc.Title,
		ScoreResult: uc.scorer.Score(text, query, uc.maxWords),
	}, nil
}
