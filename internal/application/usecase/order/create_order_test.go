package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catering-ops/backend/internal/application/adapter"
	"github.com/catering-ops/backend/internal/domain/entity"
	domainerror "github.com/catering-ops/backend/internal/domain/error"
)

func TestCreateOrderUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	product := lasagna()
	inactive := entity.NewProduct("OLD-01", "Old soup", "", "soups", decimal.NewFromInt(3), nil, nil)
	inactive.Active = false
	products := &fakeProductRepo{products: map[uuid.UUID]*entity.Product{
		product.ID:  product,
		inactive.ID: inactive,
	}}
	delivery := time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)

	t.Run("prices items and publishes an event", func(t *testing.T) {
		orders := newFakeOrderRepo()
		publisher := &fakePublisher{}
		uc := NewCreateOrderUseCase(orders, products, publisher, decimal.RequireFromString("0.10"))

		order, err := uc.Execute(ctx, CreateOrderInput{
			ClientID:     uuid.New(),
			ClientName:   "Acme",
			DeliveryDate: delivery,
			Items: []CreateOrderItemInput{{
				ProductID:  product.ID,
				Quantity:   3,
				Selections: []OptionSelection{{Group: "Size", Options: []string{"Family"}}},
			}},
		})

		require.NoError(t, err)
		assert.Equal(t, "ORD-000001", order.OrderNumber)
		assert.Equal(t, entity.DeliveryStatusPending, order.DeliveryStatus)
		require.Len(t, order.Items, 1)
		assert.True(t, decimal.NewFromInt(25).Equal(order.Items[0].UnitPrice))
		assert.True(t, decimal.NewFromInt(75).Equal(order.Subtotal))
		assert.True(t, decimal.RequireFromString("7.5").Equal(order.Tax))
		assert.True(t, decimal.RequireFromString("82.5").Equal(order.Total))
		assert.Contains(t, orders.orders, order.ID)

		require.Len(t, publisher.events, 1)
		assert.Equal(t, adapter.SubjectOrderCreated, publisher.events[0].subject)
	})

	t.Run("publish failure does not fail the order", func(t *testing.T) {
		uc := NewCreateOrderUseCase(newFakeOrderRepo(), products, &fakePublisher{err: errors.New("nats down")}, decimal.Zero)

		_, err := uc.Execute(ctx, CreateOrderInput{
			ClientID: uuid.New(),
			Items: []CreateOrderItemInput{{
				ProductID:  product.ID,
				Quantity:   1,
				Selections: []OptionSelection{{Group: "Size", Options: []string{"Regular"}}},
			}},
		})

		assert.NoError(t, err)
	})

	tests := []struct {
		name    string
		items   []CreateOrderItemInput
		wantErr error
	}{
		{"no items", nil, domainerror.ErrEmptyOrder},
		{"zero quantity", []CreateOrderItemInput{{ProductID: product.ID}}, domainerror.ErrInvalidQuantity},
		{"unknown product", []CreateOrderItemInput{{ProductID: uuid.New(), Quantity: 1}}, domainerror.ErrProductNotFound},
		{"inactive product", []CreateOrderItemInput{{ProductID: inactive.ID, Quantity: 1}}, domainerror.ErrProductUnavailable},
		{"missing required option", []CreateOrderItemInput{{ProductID: product.ID, Quantity: 1}}, domainerror.ErrInvalidOptionSelection},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := newFakeOrderRepo()
			uc := NewCreateOrderUseCase(orders, products, &fakePublisher{}, decimal.Zero)

			_, err := uc.Execute(ctx, CreateOrderInput{ClientID: uuid.New(), Items: tt.items})

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, orders.orders)
		})
	}
}

func TestCreateOrderUseCase_OrderNumberTaken(t *testing.T) {
	ctx := context.Background()
	product := lasagna()
	products := &fakeProductRepo{products: map[uuid.UUID]*entity.Product{product.ID: product}}
	input := CreateOrderInput{
		ClientID: uuid.New(),
		Items: []CreateOrderItemInput{{
			ProductID:  product.ID,
			Quantity:   1,
			Selections: []OptionSelection{{Group: "Size", Options: []string{"Regular"}}},
		}},
	}
	taken := domainerror.ErrOrderNumberTaken

	tests := []struct {
		name       string
		createErrs []error
		wantNumber string
		wantCode   domainerror.OrderErrorCode
		wantErr    error
	}{
		{name: "first attempt succeeds", wantNumber: "ORD-000001"},
		{name: "retries with a new number", createErrs: []error{taken}, wantNumber: "ORD-000002"},
		{name: "gives up after the retry", createErrs: []error{taken, taken}, wantCode: domainerror.ErrCodeOrderNumberTaken, wantErr: taken},
		{name: "other errors are not retried", createErrs: []error{errors.New("connection reset")}, wantErr: errors.New("connection reset")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := newFakeOrderRepo()
			orders.createErrs = tt.createErrs
			publisher := &fakePublisher{}
			uc := NewCreateOrderUseCase(orders, products, publisher, decimal.Zero)

			order, err := uc.Execute(ctx, input)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
				assert.Empty(t, orders.orders)
				assert.Empty(t, publisher.events)
				if tt.wantCode != "" {
					var orderErr *domainerror.OrderError
					require.ErrorAs(t, err, &orderErr)
					assert.Equal(t, tt.wantCode, orderErr.Code)
					assert.ErrorIs(t, err, taken)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantNumber, order.OrderNumber)
			assert.Contains(t, orders.orders, order.ID)
			assert.Len(t, publisher.events, 1)
		})
	}
}
