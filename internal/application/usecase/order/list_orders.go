package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/catering-ops/backend/internal/application/adapter"
	"github.com/catering-ops/backend/internal/domain/entity"
	domainerror "github.com/catering-ops/backend/internal/domain/error"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ListOrdersInput represents the input for listing orders.
type ListOrdersInput struct {
	StartDate     *time.Time
	EndDate       *time.Time
	Status        *entity.DeliveryStatus
	ClientID      *uuid.UUID
	DistributorID *uuid.UUID
	Page          int
	Limit         int
}

// PaginationOutput represents pagination information in the output.
type PaginationOutput struct {
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// ListOrdersOutput represents the output of listing orders.
type ListOrdersOutput struct {
	Orders     []*entity.Order
	Pagination PaginationOutput
}

// ListOrdersUseCase handles listing orders with filters and pagination.
type ListOrdersUseCase struct {
	orderRepo adapter.OrderRepository
}

// NewListOrdersUseCase creates a new ListOrdersUseCase instance.
func NewListOrdersUseCase(orderRepo adapter.OrderRepository) *ListOrdersUseCase {
	return &ListOrdersUseCase{
		orderRepo: orderRepo,
	}
}

// Execute lists one page of orders, newest first.
func (uc *ListOrdersUseCase) Execute(ctx context.Context, input ListOrdersInput) (*ListOrdersOutput, error) {
	if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate) {
		return nil, domainerror.NewOrderError(
			domainerror.ErrCodeInvalidOrderDateRange,
			"end_date must be after start_date",
			domainerror.ErrInvalidDateRange,
		)
	}
	if input.Status != nil && !input.Status.IsValid() {
		return nil, domainerror.NewOrderError(
			domainerror.ErrCodeInvalidDeliveryStatus,
			"invalid delivery status",
			domainerror.ErrInvalidDeliveryStatus,
		)
	}

	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	result, err := uc.orderRepo.List(ctx, adapter.OrderListFilter{
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		Status:        input.Status,
		ClientID:      input.ClientID,
		DistributorID: input.DistributorID,
		Page:          page,
		Limit:         limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	totalPages := int(result.Total) / limit
	if int(result.Total)%limit > 0 {
		totalPages++
	}

	return &ListOrdersOutput{
		Orders: result.Orders,
		Pagination: PaginationOutput{
			Page:       page,
			Limit:      limit,
			Total:      result.Total,
			TotalPages: totalPages,
		},
	}, nil
}
