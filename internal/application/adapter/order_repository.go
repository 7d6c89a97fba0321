// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/catering-ops/backend/internal/domain/entity"
	"github.com/catering-ops/backend/internal/domain/valueobject"
)

// OrderQuery selects the orders a report is computed from.
type OrderQuery struct {
	// Range limits orders to those created within it. Nil means unranged.
	Range *valueobject.DateRange
	// DeliveryDate limits orders to those delivered on that calendar day.
	DeliveryDate  *time.Time
	Status        *entity.DeliveryStatus
	ClientID      *uuid.UUID
	DistributorID *uuid.UUID
	// AuthToken is the caller's bearer token, forwarded to remote order sources.
	AuthToken string
}

// OrderSource fetches order records for reporting.
type OrderSource interface {
	// FetchOrders returns every order matching the query.
	FetchOrders(ctx context.Context, query OrderQuery) ([]*entity.Order, error)
}

// OrderListFilter represents paginated listing options for orders.
type OrderListFilter struct {
	StartDate     *time.Time
	EndDate       *time.Time
	Status        *entity.DeliveryStatus
	ClientID      *uuid.UUID
	DistributorID *uuid.UUID
	Page          int
	Limit         int
}

// OrderRepository defines the interface for order persistence operations.
type OrderRepository interface {
	OrderSource

	// Create creates a new order together with its items.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves an order with its items.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// List retrieves a page of orders matching the filter, newest first.
	List(ctx context.Context, filter OrderListFilter) (*entity.OrderListResult, error)

	// UpdateStatus sets the delivery status of an order.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.DeliveryStatus, updatedAt time.Time) error

	// NextOrderNumber returns the next sequential order number.
	NextOrderNumber(ctx context.Context) (string, error)
}
