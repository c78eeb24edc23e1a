package acquisition

import (
	"context"
	"log/slog"

	"github.com/kirillkom/lrhub/internal/core/ports"
)

// Lenient maps every acquisition failure to empty text.
type Lenient struct {
	source ports.TextSource
}

func NewLenient(source ports.TextSource) *Lenient {
	return &Lenient{source: source}
}

func (l *Lenient) FetchText(ctx context.Context, source string) (string, error) {
	text, err := l.source.FetchText(ctx, source)
	if err != nil {
		slog.Warn("fetch_failed", "source", redact(source), "error", err)
		return "", nil
	}
	return text, nil
}
