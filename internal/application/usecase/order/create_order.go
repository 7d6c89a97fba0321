package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/catering-ops/backend/internal/application/adapter"
	"github.com/catering-ops/backend/internal/domain/entity"
	domainerror "github.com/catering-ops/backend/internal/domain/error"
)

// maxNumberAttempts bounds order number allocation when creates race.
const maxNumberAttempts = 2

// CreateOrderItemInput is one requested product line.
type CreateOrderItemInput struct {
	ProductID  uuid.UUID
	Quantity   int
	Selections []OptionSelection
}

// CreateOrderInput represents the input for placing an order.
type CreateOrderInput struct {
	ClientID      uuid.UUID
	ClientName    string
	DistributorID *uuid.UUID
	DeliveryDate  time.Time
	Items         []CreateOrderItemInput
	Notes         string
}

// OrderCreatedEvent is published on orders.created.
type OrderCreatedEvent struct {
	OrderID      uuid.UUID       `json:"order_id"`
	OrderNumber  string          `json:"order_number"`
	ClientID     uuid.UUID       `json:"client_id"`
	DeliveryDate string          `json:"delivery_date"`
	Total        decimal.Decimal `json:"total"`
	CreatedAt    time.Time       `json:"created_at"`
}

// CreateOrderUseCase prices and stores a new order.
type CreateOrderUseCase struct {
	orderRepo   adapter.OrderRepository
	productRepo adapter.ProductRepository
	publisher   adapter.EventPublisher
	taxRate     decimal.Decimal
}

// NewCreateOrderUseCase creates a new CreateOrderUseCase instance.
func NewCreateOrderUseCase(
	orderRepo adapter.OrderRepository,
	productRepo adapter.ProductRepository,
	publisher adapter.EventPublisher,
	taxRate decimal.Decimal,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		publisher:   publisher,
		taxRate:     taxRate,
	}
}

// Execute validates the items against the catalog, prices them and stores the order.
func (uc *CreateOrderUseCase) Execute(ctx context.Context, input CreateOrderInput) (*entity.Order, error) {
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(input.Items))
	for _, it := range input.Items {
		ids = append(ids, it.ProductID)
	}
	products, err := uc.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	items := make([]entity.OrderItem, 0, len(input.Items))
	for _, it := range input.Items {
		product, ok := products[it.ProductID]
		if !ok {
			return nil, domainerror.NewProductError(
				domainerror.ErrCodeProductNotFound,
				fmt.Sprintf("product %s not found", it.ProductID),
				domainerror.ErrProductNotFound,
			)
		}
		if !product.Active {
			return nil, domainerror.NewOrderError(
				domainerror.ErrCodeProductUnavailable,
				fmt.Sprintf("%s is not available", product.Name),
				domainerror.ErrProductUnavailable,
			)
		}

		unitPrice, labels, err := priceItem(product, it.Selections)
		if err != nil {
			return nil, err
		}

		items = append(items, entity.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Options:     labels,
			Quantity:    it.Quantity,
			UnitPrice:   unitPrice,
		})
	}

	order := entity.NewOrder(
		"",
		input.ClientID,
		input.ClientName,
		input.DistributorID,
		input.DeliveryDate,
		items,
		uc.taxRate,
		input.Notes,
	)

	if err := uc.createWithNumber(ctx, order); err != nil {
		return nil, err
	}

	event := OrderCreatedEvent{
		OrderID:      order.ID,
		OrderNumber:  order.OrderNumber,
		ClientID:     order.ClientID,
		DeliveryDate: order.DeliveryDate.Format("2006-01-02"),
		Total:        order.Total,
		CreatedAt:    order.CreatedAt,
	}
	if err := uc.publisher.Publish(ctx, adapter.SubjectOrderCreated, event); err != nil {
		slog.Warn("Failed to publish order created event", "order_id", order.ID, "error", err)
	}

	return order, nil
}

// createWithNumber allocates an order number and persists the order.
// A number taken by a concurrent create is reallocated once.
func (uc *CreateOrderUseCase) createWithNumber(ctx context.Context, order *entity.Order) error {
	for attempt := 1; attempt <= maxNumberAttempts; attempt++ {
		number, err := uc.orderRepo.NextOrderNumber(ctx)
		if err != nil {
			return fmt.Errorf("failed to allocate order number: %w", err)
		}
		order.OrderNumber = number

		err = uc.orderRepo.Create(ctx, order)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domainerror.ErrOrderNumberTaken) {
			return fmt.Errorf("failed to create order: %w", err)
		}
		slog.Warn("Order number already taken", "order_number", number, "attempt", attempt)
	}

	return domainerror.NewOrderError(
		domainerror.ErrCodeOrderNumberTaken,
		"order number already taken, please retry",
		domainerror.ErrOrderNumberTaken,
	)
}

// validateInput validates the input parameters.
func (uc *CreateOrderUseCase) validateInput(input CreateOrderInput) error {
	if len(input.Items) == 0 {
		return domainerror.NewOrderError(
			domainerror.ErrCodeEmptyOrder,
			"order must contain at least one item",
			domainerror.ErrEmptyOrder,
		)
	}

	for _, it := range input.Items {
		if it.Quantity <= 0 {
			return domainerror.NewOrderError(
				domainerror.ErrCodeInvalidQuantity,
				"quantity must be greater than zero",
				domainerror.ErrInvalidQuantity,
			)
		}
	}

	return nil
}
