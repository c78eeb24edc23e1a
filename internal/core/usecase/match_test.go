package usecase

import (
	"testing"

	"github.com/kirillkom/lrhub/internal/core/domain"
)

func TestMatchRanksRelevantItemFirst(t *testing.T) {
	items := []domain.CatalogItem{
		{Type: domain.KindNote, ID: 1, Title: "Python basics", SecondaryText: "intro"},
		{Type: domain.KindResource, ID: 2, Title: "Cooking", SecondaryText: "recipes"},
	}
	got := NewCorpusMatcher(nil).Match(items, "python programming", 1)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected python item first, got %+v", got)
	}
}

func TestMatchStableForTies(t *testing.T) {
	items := []domain.CatalogItem{
		{ID: 1, Title: "Algebra", SecondaryText: "math"},
		{ID: 2, Title: "Geometry", SecondaryText: "math"},
		{ID: 3, Title: "History", SecondaryText: "wars"},
	}
	got := NewCorpusMatcher(nil).Match(items, "math", 5)
	if len(got) != 3 || got[0].ID != 1 || got[1].ID != 2 || got[2].ID != 3 {
		t.Fatalf("unexpected order %+v", got)
	}
}

// Stop words are removed for corpus matching too, so a stop-word query
// scores every item zero and the collection order is kept.
func TestMatchRemovesStopWords(t *testing.T) {
	items := []domain.CatalogItem{
		{ID: 1, Title: "Chemistry", SecondaryText: "labs"},
		{ID: 2, Title: "The history of the world", SecondaryText: "the past"},
	}
	got := NewCorpusMatcher(nil).Match(items, "the", 1)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected collection order for stop-word query, got %+v", got)
	}
}

func TestMatchDefaultsAndEmptyInputs(t *testing.T) {
	m := NewCorpusMatcher(nil)
	if got := m.Match(nil, "python", 5); len(got) != 0 {
		t.Fatalf("expected empty result for empty catalog")
	}
	items := make([]domain.CatalogItem, 8)
	for i := range items {
		items[i] = domain.CatalogItem{ID: int64(i + 1), Title: "Notes"}
	}
	if got := m.Match(items, "   ", 5); len(got) != 0 {
		t.Fatalf("expected empty result for blank query")
	}
	if got := m.Match(items, "notes", 0); len(got) != DefaultRecommendTopN {
		t.Fatalf("expected default top n, got %d", len(got))
	}
}
