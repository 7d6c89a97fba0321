package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/catering-ops/backend/internal/application/adapter"
	"github.com/catering-ops/backend/internal/domain/entity"
	domainerror "github.com/catering-ops/backend/internal/domain/error"
)

// GetOrderInput represents the input for reading one order.
// When ClientID or DistributorID is set the order must belong to it.
type GetOrderInput struct {
	OrderID       uuid.UUID
	ClientID      *uuid.UUID
	DistributorID *uuid.UUID
}

// GetOrderUseCase loads a single order with its items.
type GetOrderUseCase struct {
	orderRepo adapter.OrderRepository
}

// NewGetOrderUseCase creates a new GetOrderUseCase instance.
func NewGetOrderUseCase(orderRepo adapter.OrderRepository) *GetOrderUseCase {
	return &GetOrderUseCase{
		orderRepo: orderRepo,
	}
}

// Execute loads the order. Orders outside the caller's scope are reported as not found.
func (uc *GetOrderUseCase) Execute(ctx context.Context, input GetOrderInput) (*entity.Order, error) {
	notFound := domainerror.NewOrderError(
		domainerror.ErrCodeOrderNotFound,
		"order not found",
		domainerror.ErrOrderNotFound,
	)

	order, err := uc.orderRepo.FindByID(ctx, input.OrderID)
	if err != nil {
		if errors.Is(err, domainerror.ErrOrderNotFound) {
			return nil, notFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}

	if input.ClientID != nil && order.ClientID != *input.ClientID {
		return nil, notFound
	}
	if input.DistributorID != nil && (order.DistributorID == nil || *order.DistributorID != *input.DistributorID) {
		return nil, notFound
	}

	return order, nil
}
