package report

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/catering-ops/backend/internal/application/adapter"
	"github.com/catering-ops/backend/internal/domain/valueobject"
)

// RangeOutput is a date range formatted as YYYY-MM-DD days.
type RangeOutput struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func newRangeOutput(r valueobject.DateRange) RangeOutput {
	return RangeOutput{Start: DayKey(r.Start), End: DayKey(r.End)}
}

// GetOrdersSummaryInput represents the input for the orders summary.
type GetOrdersSummaryInput struct {
	UserID        uuid.UUID
	Period        string
	ClientID      *uuid.UUID
	DistributorID *uuid.UUID
	AuthToken     string
}

// GetOrdersSummaryOutput represents the orders summary of a period.
type GetOrdersSummaryOutput struct {
	Period valueobject.Period `json:"period"`
	// Range is nil for all_time, whose cards cover the whole history.
	Range          *RangeOutput  `json:"range"`
	ChartRange     RangeOutput   `json:"chart_range"`
	TotalOrders    int           `json:"total_orders"`
	StatusCounts   StatusCounts  `json:"status_counts"`
	DailyOrders    []DailyBucket `json:"daily_orders"`
	OrdersTrend    TrendResult   `json:"orders_trend"`
	DeliveredTrend TrendResult   `json:"delivered_trend"`
	GeneratedAt    time.Time     `json:"generated_at"`
}

// GetOrdersSummaryUseCase computes order counts, status breakdown and trends for a period.
type GetOrdersSummaryUseCase struct {
	source   adapter.OrderSource
	guard    *SelectionGuard
	cache    adapter.Cache
	cacheTTL time.Duration
	clock    Clock
}

// NewGetOrdersSummaryUseCase creates a new GetOrdersSummaryUseCase instance.
// cache may be nil, in which case summaries are not kept.
func NewGetOrdersSummaryUseCase(
	source adapter.OrderSource,
	guard *SelectionGuard,
	cache adapter.Cache,
	cacheTTL time.Duration,
	clock Clock,
) *GetOrdersSummaryUseCase {
	return &GetOrdersSummaryUseCase{
		source:   source,
		guard:    guard,
		cache:    cache,
		cacheTTL: cacheTTL,
		clock:    clock,
	}
}

// Execute computes the summary of the selected period.
func (uc *GetOrdersSummaryUseCase) Execute(ctx context.Context, input GetOrdersSummaryInput) (*GetOrdersSummaryOutput, error) {
	period, err := parsePeriod(input.Period)
	if err != nil {
		return nil, err
	}

	now := uc.clock()
	chartRange, err := ResolvePeriod(period, now)
	if err != nil {
		return nil, err
	}
	previous := PreviousRange(chartRange)

	query := adapter.OrderQuery{
		ClientID:      input.ClientID,
		DistributorID: input.DistributorID,
		AuthToken:     input.AuthToken,
	}
	if period != valueobject.PeriodAllTime {
		query.Range = &valueobject.DateRange{Start: previous.Start, End: chartRange.End}
	}

	scope := SelectionScope(input.UserID, KindOrdersSummary)
	orders, err := guardedFetch(ctx, uc.guard, uc.source, scope, query)
	if err != nil {
		return nil, err
	}

	inChart := FilterByRange(orders, chartRange)
	inPrevious := FilterByRange(orders, previous)

	cardOrders := inChart
	var cardRange *RangeOutput
	if period == valueobject.PeriodAllTime {
		cardOrders = orders
	} else {
		r := newRangeOutput(chartRange)
		cardRange = &r
	}

	counts := CountByStatus(cardOrders)
	output := &GetOrdersSummaryOutput{
		Period:       period,
		Range:        cardRange,
		ChartRange:   newRangeOutput(chartRange),
		TotalOrders:  counts.Total(),
		StatusCounts: counts,
		DailyOrders:  BucketByDay(orders, chartRange),
		OrdersTrend:  CompareTrend(float64(len(inChart)), float64(len(inPrevious))),
		DeliveredTrend: CompareTrend(
			float64(CountByStatus(inChart).Completed),
			float64(CountByStatus(inPrevious).Completed),
		),
		GeneratedAt: now,
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, summaryCacheKey(scope, period), output, uc.cacheTTL); err != nil {
			slog.Warn("Failed to cache orders summary", "scope", scope, "period", period, "error", err)
		}
	}

	return output, nil
}

// summaryCacheKey is where the last computed summary of a scope and period is kept.
func summaryCacheKey(scope string, period valueobject.Period) string {
	return "report:summary:" + scope + ":" + string(period)
}
