package ports

import (
	"context"

	"github.com/kirillkom/lrhub/internal/core/domain"
)

// DocumentAnalyzer scores a stored document against a query.
type DocumentAnalyzer interface {
	Analyze(ctx context.Context, ref domain.DocumentRef, query string) (*domain.DocumentAnalysis, error)
}

// DocumentSummarizer produces an extractive summary of a stored document.
// An empty summary means no text could be extracted.
type DocumentSummarizer interface {
	SummarizeDocument(ctx context.Context, ref domain.DocumentRef) (domain.SummaryResult, error)
}

// Recommender ranks the live catalog against a query.
type Recommender interface {
	Recommend(ctx context.Context, query string, filter domain.CatalogFilter) ([]domain.CatalogItem, error)
}

// DownloadTracker counts a download and returns where the file lives.
type DownloadTracker interface {
	Download(ctx context.Context, ref domain.DocumentRef, userID string) (string, error)
}

// ActivityRecorder persists consumed activity events.
type ActivityRecorder interface {
	Record(ctx context.Context, event domain.ActivityEvent) error
}
