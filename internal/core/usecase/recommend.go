package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/kirillkom/lrhub/internal/core/domain"
	"github.com/kirillkom/lrhub/internal/core/ports"
)

type RecommendUseCase struct {
	catalog ports.CatalogReader
	matcher *CorpusMatcher
	topN    int
}

func NewRecommendUseCase(catalog ports.CatalogReader, matcher *CorpusMatcher, topN int) *RecommendUseCase {
	return &RecommendUseCase{catalog: catalog, matcher: matcher, topN: topN}
}

// Recommend re-reads the catalog on every call. A blank query never reaches
// the catalog or the matcher.
func (uc *RecommendUseCase) Recommend(ctx context.Context, query string, filter domain.CatalogFilter) ([]domain.CatalogItem, error) {
	if strings.TrimSpace(query) == "" {
		return []domain.CatalogItem{}, nil
	}
	items, err := uc.catalog.ListCatalog(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	return uc.matcher.Match(items, query, uc.topN), nil
}
