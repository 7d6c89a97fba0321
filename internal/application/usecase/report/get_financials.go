package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/catering-ops/backend/internal/application/adapter"
	"github.com/catering-ops/backend/internal/domain/entity"
	"github.com/catering-ops/backend/internal/domain/valueobject"
)

// GetFinancialsInput represents the input for the financials report.
type GetFinancialsInput struct {
	UserID        uuid.UUID
	Period        string
	ClientID      *uuid.UUID
	DistributorID *uuid.UUID
	AuthToken     string
}

// GetFinancialsOutput represents revenue figures of a period.
type GetFinancialsOutput struct {
	Period             valueobject.Period `json:"period"`
	Range              *RangeOutput       `json:"range"`
	ChartRange         RangeOutput        `json:"chart_range"`
	Revenue            decimal.Decimal    `json:"revenue"`
	DeliveredRevenue   decimal.Decimal    `json:"delivered_revenue"`
	OutstandingRevenue decimal.Decimal    `json:"outstanding_revenue"`
	OrderCount         int                `json:"order_count"`
	CancelledCount     int                `json:"cancelled_count"`
	AverageOrderValue  decimal.Decimal    `json:"average_order_value"`
	DailyRevenue       []RevenueBucket    `json:"daily_revenue"`
	RevenueTrend       TrendResult        `json:"revenue_trend"`
	GeneratedAt        time.Time          `json:"generated_at"`
}

// revenueTotals holds the money figures of a set of orders.
type revenueTotals struct {
	revenue   decimal.Decimal
	delivered decimal.Decimal
	count     int
	cancelled int
}

// sumRevenue adds up non-cancelled order totals.
func sumRevenue(orders []*entity.Order) revenueTotals {
	totals := revenueTotals{revenue: decimal.Zero, delivered: decimal.Zero}
	for _, o := range orders {
		if o.DeliveryStatus == entity.DeliveryStatusCancelled {
			totals.cancelled++
			continue
		}
		totals.revenue = totals.revenue.Add(o.Total)
		totals.count++
		if o.DeliveryStatus == entity.DeliveryStatusDelivered {
			totals.delivered = totals.delivered.Add(o.Total)
		}
	}
	return totals
}

// GetFinancialsUseCase computes revenue figures for a period.
// It shares period resolution and bucketing with the orders summary.
type GetFinancialsUseCase struct {
	source adapter.OrderSource
	guard  *SelectionGuard
	clock  Clock
}

// NewGetFinancialsUseCase creates a new GetFinancialsUseCase instance.
func NewGetFinancialsUseCase(source adapter.OrderSource, guard *SelectionGuard, clock Clock) *GetFinancialsUseCase {
	return &GetFinancialsUseCase{
		source: source,
		guard:  guard,
		clock:  clock,
	}
}

// Execute computes the financials of the selected period.
func (uc *GetFinancialsUseCase) Execute(ctx context.Context, input GetFinancialsInput) (*GetFinancialsOutput, error) {
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

	orders, err := guardedFetch(ctx, uc.guard, uc.source, SelectionScope(input.UserID, KindFinancials), query)
	if err != nil {
		return nil, err
	}

	inChart := FilterByRange(orders, chartRange)
	current := sumRevenue(inChart)
	prior := sumRevenue(FilterByRange(orders, previous))

	var cardRange *RangeOutput
	cards := current
	if period == valueobject.PeriodAllTime {
		cards = sumRevenue(orders)
	} else {
		r := newRangeOutput(chartRange)
		cardRange = &r
	}

	average := decimal.Zero
	if cards.count > 0 {
		average = cards.revenue.Div(decimal.NewFromInt(int64(cards.count))).Round(2)
	}

	return &GetFinancialsOutput{
		Period:             period,
		Range:              cardRange,
		ChartRange:         newRangeOutput(chartRange),
		Revenue:            cards.revenue,
		DeliveredRevenue:   cards.delivered,
		OutstandingRevenue: cards.revenue.Sub(cards.delivered),
		OrderCount:         cards.count,
		CancelledCount:     cards.cancelled,
		AverageOrderValue:  average,
		DailyRevenue:       BucketRevenueByDay(orders, chartRange),
		RevenueTrend:       CompareTrend(current.revenue.InexactFloat64(), prior.revenue.InexactFloat64()),
		GeneratedAt:        now,
	}, nil
}
