package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catering-ops/backend/internal/domain/entity"
	domainerror "github.com/catering-ops/backend/internal/domain/error"
)

func summaryOrder(client uuid.UUID, clientName string, status entity.DeliveryStatus, items ...entity.OrderItem) *entity.Order {
	o := entity.NewOrder("ORD-1", client, clientName, nil, day(2024, 6, 12), items, decimal.Zero, "")
	o.DeliveryStatus = status
	return o
}

func item(name string, qty int, price int64) entity.OrderItem {
	return entity.OrderItem{ProductID: uuid.New(), ProductName: name, Quantity: qty, UnitPrice: decimal.NewFromInt(price)}
}

func TestBuildDailySummary(t *testing.T) {
	acme := uuid.New()
	bistro := uuid.New()
	orders := []*entity.Order{
		summaryOrder(bistro, "Bistro", entity.DeliveryStatusPending, item("Lasagna", 2, 10)),
		summaryOrder(acme, "Acme", entity.DeliveryStatusDelivered, item("Salad", 3, 5), item("Lasagna", 1, 10)),
		summaryOrder(acme, "Acme", entity.DeliveryStatusReadyForDelivery, item("Soup", 4, 4)),
		summaryOrder(bistro, "Bistro", entity.DeliveryStatusCancelled, item("Soup", 50, 4)),
	}

	got := BuildDailySummary(time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC), orders)

	assert.Equal(t, day(2024, 6, 12), got.Date)
	assert.Equal(t, 3, got.OrderCount)
	assert.True(t, decimal.NewFromInt(61).Equal(got.GrandTotal), got.GrandTotal.String())

	require.Len(t, got.Clients, 2)
	assert.Equal(t, "Acme", got.Clients[0].ClientName)
	assert.Equal(t, 2, got.Clients[0].OrderCount)
	assert.Len(t, got.Clients[0].Lines, 3)
	assert.True(t, decimal.NewFromInt(41).Equal(got.Clients[0].Total))
	assert.Equal(t, "Bistro", got.Clients[1].ClientName)

	assert.Equal(t, []entity.ProductTotal{
		{ProductName: "Soup", Quantity: 4},
		{ProductName: "Lasagna", Quantity: 3},
		{ProductName: "Salad", Quantity: 3},
	}, got.ProductTotals)
}

func TestGetDailySummaryUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.June, 12, 14, 0, 0, 0, time.UTC)

	t.Run("defaults to today", func(t *testing.T) {
		source := &fakeSource{}
		uc := NewGetDailySummaryUseCase(source, fixedClock(now))

		got, err := uc.Execute(ctx, GetDailySummaryInput{})

		require.NoError(t, err)
		assert.Equal(t, day(2024, 6, 12), got.Date)
		require.NotNil(t, source.queries[0].DeliveryDate)
		assert.Equal(t, day(2024, 6, 12), *source.queries[0].DeliveryDate)
		assert.Empty(t, got.Clients)
	})

	t.Run("parses the requested date", func(t *testing.T) {
		source := &fakeSource{}
		uc := NewGetDailySummaryUseCase(source, fixedClock(now))

		got, err := uc.Execute(ctx, GetDailySummaryInput{Date: "2024-06-01"})

		require.NoError(t, err)
		assert.Equal(t, day(2024, 6, 1), got.Date)
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		uc := NewGetDailySummaryUseCase(&fakeSource{}, fixedClock(now))

		_, err := uc.Execute(ctx, GetDailySummaryInput{Date: "12/06/2024"})

		assert.ErrorIs(t, err, domainerror.ErrInvalidDateFormat)
	})

	t.Run("fetch failure", func(t *testing.T) {
		uc := NewGetDailySummaryUseCase(&fakeSource{err: errors.New("boom")}, fixedClock(now))

		_, err := uc.Execute(ctx, GetDailySummaryInput{})

		assert.ErrorIs(t, err, domainerror.ErrFetchFailed)
	})
}
