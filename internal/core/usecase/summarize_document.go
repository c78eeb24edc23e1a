package usecase

import (
	"context"
	"fmt"

	"github.com/kirillkom/lrhub/internal/core/domain"
	"github.com/kirillkom/lrhub/internal/core/ports"
)

type SummarizeDocumentUseCase struct {
	resolver     ports.DocumentResolver
	source       ports.TextSource
	summarizer   *Summarizer
	numSentences int
	maxWords     int
}

func NewSummarizeDocumentUseCase(
	resolver ports.DocumentResolver,
	source ports.TextSource,
	summarizer *Summarizer,
	numSentences int,
	maxWords int,
) *SummarizeDocumentUseCase {
	return &SummarizeDocumentUseCase{
		resolver:     resolver,
		source:       source,
		summarizer:   summarizer,
		numSentences: numSentences,
		maxWords:     maxWords,
	}
}

// SummarizeDocument returns an empty summary when the file has no extractable text.
func (uc *SummarizeDocumentUseCase) SummarizeDocument(ctx context.Context, ref domain.DocumentRef) (domain.SummaryResult, error) {
	doc, err := uc.resolver.Resolve(ctx, ref)
	if err != nil {
		return domain.SummaryResult{}, err
	}
	text, err := uc.source.FetchText(ctx, doc.FileURL)
	if err != nil {
		return domain.SummaryResult{}, fmt.Errorf("fetch %s: %w", ref, err)
	}
	if text == "" {
		return domain.SummaryResult{}, nil
	}
	return domain.SummaryResult{
		Summary: uc.summarizer.Summarize(text, uc.numSentences, uc.maxWords),
	}, nil
}
