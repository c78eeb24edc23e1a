package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kirillkom/lrhub/internal/core/domain"
	"github.com/kirillkom/lrhub/internal/core/ports"
)

type DownloadUseCase struct {
	resolver  ports.DocumentResolver
	counter   ports.DownloadCounter
	publisher ports.ActivityPublisher
	now       func() time.Time
}

func NewDownloadUseCase(resolver ports.DocumentResolver, counter ports.DownloadCounter, publisher ports.ActivityPublisher) *DownloadUseCase {
	return &DownloadUseCase{
		resolver:  resolver,
		counter:   counter,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Download counts the download and returns the file URL. A failed activity
// publish is logged and does not fail the download.
func (uc *DownloadUseCase) Download(ctx context.Context, ref domain.DocumentRef, userID string) (string, error) {
	doc, err := uc.resolver.Resolve(ctx, ref)
	if err != nil {
		return "", err
	}
	if err := uc.counter.IncrementDownloads(ctx, ref); err != nil {
		return "", fmt.Errorf("increment downloads: %w", err)
	}

	action := domain.ActionNoteDownload
	label := "note"
	if ref.Kind() == domain.KindResource {
		action = domain.ActionResourceDownload
		label = "resource"
	}
	event := domain.ActivityEvent{
		ID:          uuid.NewString(),
		UserID:      userID,
		Action:      action,
		Description: fmt.Sprintf("Downloaded %s: %s", label, doc.Title),
		OccurredAt:  uc.now(),
	}
	if uc.publisher != nil {
		if err := uc.publisher.PublishActivity(ctx, event); err != nil {
			slog.Warn("activity_publish_failed", "ref", ref.String(), "error", err)
		}
	}
	return doc.FileURL, nil
}
