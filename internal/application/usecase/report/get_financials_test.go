package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catering-ops/backend/internal/domain/entity"
)

func TestGetFinancialsUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.June, 12, 14, 0, 0, 0, time.UTC)

	orders := []*entity.Order{
		newOrder(time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC), entity.DeliveryStatusDelivered, 120),
		newOrder(time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC), entity.DeliveryStatusPending, 30),
		newOrder(time.Date(2024, 6, 12, 11, 0, 0, 0, time.UTC), entity.DeliveryStatusCancelled, 500),
		// yesterday is the previous range of today
		newOrder(time.Date(2024, 6, 11, 11, 0, 0, 0, time.UTC), entity.DeliveryStatusDelivered, 100),
	}

	uc := NewGetFinancialsUseCase(&fakeSource{orders: orders}, NewSelectionGuard(newFakeSequencer()), fixedClock(now))

	out, err := uc.Execute(ctx, GetFinancialsInput{UserID: uuid.New(), Period: "today"})

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(150).Equal(out.Revenue), out.Revenue.String())
	assert.True(t, decimal.NewFromInt(120).Equal(out.DeliveredRevenue))
	assert.True(t, decimal.NewFromInt(30).Equal(out.OutstandingRevenue))
	assert.Equal(t, 2, out.OrderCount)
	assert.Equal(t, 1, out.CancelledCount)
	assert.True(t, decimal.NewFromInt(75).Equal(out.AverageOrderValue))
	require.Len(t, out.DailyRevenue, 1)
	assert.True(t, decimal.NewFromInt(150).Equal(out.DailyRevenue[0].Revenue))
	assert.Equal(t, TrendResult{Label: "+50% vs last", Direction: TrendUp}, out.RevenueTrend)
}

func TestGetFinancialsUseCase_NoOrders(t *testing.T) {
	now := time.Date(2024, time.June, 12, 14, 0, 0, 0, time.UTC)
	uc := NewGetFinancialsUseCase(&fakeSource{}, NewSelectionGuard(newFakeSequencer()), fixedClock(now))

	out, err := uc.Execute(context.Background(), GetFinancialsInput{UserID: uuid.New(), Period: "last_month"})

	require.NoError(t, err)
	assert.True(t, out.Revenue.IsZero())
	assert.True(t, out.AverageOrderValue.IsZero())
	assert.Len(t, out.DailyRevenue, 31)
	assert.Equal(t, TrendResult{Label: "No change", Direction: TrendFlat}, out.RevenueTrend)
}
