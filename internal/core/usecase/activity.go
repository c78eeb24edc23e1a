package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/kirillkom/lrhub/internal/core/domain"
	"github.com/kirillkom/lrhub/internal/core/ports"
)

type RecordActivityUseCase struct {
	store ports.ActivityStore
}

func NewRecordActivityUseCase(store ports.ActivityStore) *RecordActivityUseCase {
	return &RecordActivityUseCase{store: store}
}

func (uc *RecordActivityUseCase) Record(ctx context.Context, event domain.ActivityEvent) error {
	if strings.TrimSpace(event.ID) == "" || event.Action == "" {
		return domain.WrapError(domain.ErrInvalidInput, "record activity", fmt.Errorf("event id and action are required"))
	}
	if err := uc.store.InsertActivity(ctx, event); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}
