package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/catering-ops/backend/internal/application/adapter"
	"github.com/catering-ops/backend/internal/domain/entity"
	domainerror "github.com/catering-ops/backend/internal/domain/error"
)

// UpdateOrderStatusInput represents the input for changing a delivery status.
type UpdateOrderStatusInput struct {
	OrderID uuid.UUID
	Status  entity.DeliveryStatus
}

// OrderStatusChangedEvent is published on orders.status_changed.
type OrderStatusChangedEvent struct {
	OrderID     uuid.UUID             `json:"order_id"`
	OrderNumber string                `json:"order_number"`
	From        entity.DeliveryStatus `json:"from"`
	To          entity.DeliveryStatus `json:"to"`
	ChangedAt   time.Time             `json:"changed_at"`
}

// UpdateOrderStatusUseCase moves an order along its delivery lifecycle.
type UpdateOrderStatusUseCase struct {
	orderRepo adapter.OrderRepository
	publisher adapter.EventPublisher
}

// NewUpdateOrderStatusUseCase creates a new UpdateOrderStatusUseCase instance.
func NewUpdateOrderStatusUseCase(orderRepo adapter.OrderRepository, publisher adapter.EventPublisher) *UpdateOrderStatusUseCase {
	return &UpdateOrderStatusUseCase{
		orderRepo: orderRepo,
		publisher: publisher,
	}
}

// Execute validates the transition and stores the new status.
func (uc *UpdateOrderStatusUseCase) Execute(ctx context.Context, input UpdateOrderStatusInput) (*entity.Order, error) {
	if !input.Status.IsValid() {
		return nil, domainerror.NewOrderError(
			domainerror.ErrCodeInvalidDeliveryStatus,
			"invalid delivery status",
			domainerror.ErrInvalidDeliveryStatus,
		)
	}

	order, err := uc.orderRepo.FindByID(ctx, input.OrderID)
	if err != nil {
		if errors.Is(err, domainerror.ErrOrderNotFound) {
			return nil, domainerror.NewOrderError(
				domainerror.ErrCodeOrderNotFound,
				"order not found",
				domainerror.ErrOrderNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}

	from := order.DeliveryStatus
	if !from.CanTransitionTo(input.Status) {
		return nil, domainerror.NewOrderError(
			domainerror.ErrCodeInvalidStatusTransition,
			fmt.Sprintf("cannot change status from %s to %s", from, input.Status),
			domainerror.ErrInvalidStatusTransition,
		)
	}

	now := time.Now().UTC()
	if err := uc.orderRepo.UpdateStatus(ctx, order.ID, input.Status, now); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	order.DeliveryStatus = input.Status
	order.UpdatedAt = now

	event := OrderStatusChangedEvent{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		From:        from,
		To:          input.Status,
		ChangedAt:   now,
	}
	if err := uc.publisher.Publish(ctx, adapter.SubjectOrderStatusChanged, event); err != nil {
		slog.Warn("Failed to publish status change event", "order_id", order.ID, "error", err)
	}

	return order, nil
}
