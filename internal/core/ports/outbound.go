package ports

import (
	"context"
	"io"

	"github.com/kirillkom/lrhub/internal/core/domain"
)

// DocumentResolver maps a document reference to its title and file location.
type DocumentResolver interface {
	Resolve(ctx context.Context, ref domain.DocumentRef) (*domain.ResolvedDocument, error)
}

// CatalogReader returns a fresh snapshot of the catalog on every call.
type CatalogReader interface {
	ListCatalog(ctx context.Context, filter domain.CatalogFilter) ([]domain.CatalogItem, error)
}

// DownloadCounter increments the persisted download counter of a document.
type DownloadCounter interface {
	IncrementDownloads(ctx context.Context, ref domain.DocumentRef) error
}

// ActivityStore persists activity log entries.
type ActivityStore interface {
	InsertActivity(ctx context.Context, event domain.ActivityEvent) error
}

// ObjectStorage opens locally stored source files.
type ObjectStorage interface {
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// ActivityPublisher publishes/consumes activity events.
type ActivityPublisher interface {
	PublishActivity(ctx context.Context, event domain.ActivityEvent) error
}

type ActivitySubscriber interface {
	SubscribeActivity(ctx context.Context, handler func(context.Context, domain.ActivityEvent) error) error
}

// TextSource fetches a document from a path or URL and returns its plain text.
type TextSource interface {
	FetchText(ctx context.Context, source string) (string, error)
}

// TextExtractor converts raw file bytes of one format into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, raw []byte) (string, error)
}

// Segmenter splits text into ordered sentence/paragraph units.
type Segmenter interface {
	Segment(text string) []string
}
