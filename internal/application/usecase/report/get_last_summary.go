package report

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/catering-ops/backend/internal/application/adapter"
	domainerror "github.com/catering-ops/backend/internal/domain/error"
)

// GetLastSummaryInput represents the input for reading the last computed summary.
type GetLastSummaryInput struct {
	UserID uuid.UUID
	Period string
}

// GetLastSummaryUseCase returns the last orders summary computed successfully for a period.
// It is what a client shows when a refresh fails.
type GetLastSummaryUseCase struct {
	cache adapter.Cache
}

// NewGetLastSummaryUseCase creates a new GetLastSummaryUseCase instance.
func NewGetLastSummaryUseCase(cache adapter.Cache) *GetLastSummaryUseCase {
	return &GetLastSummaryUseCase{
		cache: cache,
	}
}

// Execute loads the cached summary.
func (uc *GetLastSummaryUseCase) Execute(ctx context.Context, input GetLastSummaryInput) (*GetOrdersSummaryOutput, error) {
	period, err := parsePeriod(input.Period)
	if err != nil {
		return nil, err
	}

	notCached := domainerror.NewReportError(
		domainerror.ErrCodeSummaryNotCached,
		"no summary has been computed for this period yet",
		domainerror.ErrSummaryNotCached,
	)
	if uc.cache == nil {
		return nil, notCached
	}

	var output GetOrdersSummaryOutput
	key := summaryCacheKey(SelectionScope(input.UserID, KindOrdersSummary), period)
	found, err := uc.cache.Get(ctx, key, &output)
	if err != nil {
		return nil, fmt.Errorf("failed to read cached summary: %w", err)
	}
	if !found {
		return nil, notCached
	}

	return &output, nil
}
