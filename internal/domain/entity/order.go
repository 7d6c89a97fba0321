// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliveryStatus represents where an order is in its delivery lifecycle.
type DeliveryStatus string

const (
	DeliveryStatusPending            DeliveryStatus = "PENDING"
	DeliveryStatusReadyForDelivery   DeliveryStatus = "READY_FOR_DELIVERY"
	DeliveryStatusDelivered          DeliveryStatus = "DELIVERED"
	DeliveryStatusCancelled          DeliveryStatus = "CANCELLED"
	DeliveryStatusFailed             DeliveryStatus = "FAILED"
	DeliveryStatusPartiallyDelivered DeliveryStatus = "PARTIALLY_DELIVERED"
)

// DeliveryStatuses lists every known delivery status.
var DeliveryStatuses = []DeliveryStatus{
	DeliveryStatusPending,
	DeliveryStatusReadyForDelivery,
	DeliveryStatusDelivered,
	DeliveryStatusCancelled,
	DeliveryStatusFailed,
	DeliveryStatusPartiallyDelivered,
}

// IsValid reports whether s is a known delivery status.
func (s DeliveryStatus) IsValid() bool {
	for _, known := range DeliveryStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further status change is allowed.
func (s DeliveryStatus) IsTerminal() bool {
	return s == DeliveryStatusDelivered || s == DeliveryStatusCancelled
}

// deliveryTransitions maps each status to the statuses it may move to.
var deliveryTransitions = map[DeliveryStatus][]DeliveryStatus{
	DeliveryStatusPending: {
		DeliveryStatusReadyForDelivery,
		DeliveryStatusCancelled,
	},
	DeliveryStatusReadyForDelivery: {
		DeliveryStatusDelivered,
		DeliveryStatusPartiallyDelivered,
		DeliveryStatusFailed,
		DeliveryStatusCancelled,
	},
	DeliveryStatusPartiallyDelivered: {
		DeliveryStatusDelivered,
		DeliveryStatusFailed,
	},
	DeliveryStatusFailed: {
		DeliveryStatusReadyForDelivery,
		DeliveryStatusCancelled,
	},
}

// CanTransitionTo reports whether an order in status s may move to next.
func (s DeliveryStatus) CanTransitionTo(next DeliveryStatus) bool {
	for _, allowed := range deliveryTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OrderItem is a single product line of an order.
type OrderItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Options     []string // Selected option names, "Group: Option"
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// Order represents a catering order placed by a client through a distributor.
type Order struct {
	ID             uuid.UUID
	OrderNumber    string
	ClientID       uuid.UUID
	ClientName     string
	DistributorID  *uuid.UUID
	DeliveryDate   time.Time
	DeliveryStatus DeliveryStatus
	Items          []OrderItem
	Subtotal       decimal.Decimal
	Tax            decimal.Decimal
	Total          decimal.Decimal
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewOrder creates a new pending Order and computes its totals from items.
func NewOrder(
	orderNumber string,
	clientID uuid.UUID,
	clientName string,
	distributorID *uuid.UUID,
	deliveryDate time.Time,
	items []OrderItem,
	taxRate decimal.Decimal,
	notes string,
) *Order {
	now := time.Now().UTC()
	id := uuid.New()

	subtotal := decimal.Zero
	for i := range items {
		items[i].OrderID = id
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		items[i].LineTotal = items[i].UnitPrice.Mul(decimal.NewFromInt(int64(items[i].Quantity)))
		subtotal = subtotal.Add(items[i].LineTotal)
	}
	tax := subtotal.Mul(taxRate).Round(2)

	return &Order{
		ID:             id,
		OrderNumber:    orderNumber,
		ClientID:       clientID,
		ClientName:     clientName,
		DistributorID:  distributorID,
		DeliveryDate:   deliveryDate,
		DeliveryStatus: DeliveryStatusPending,
		Items:          items,
		Subtotal:       subtotal,
		Tax:            tax,
		Total:          subtotal.Add(tax),
		Notes:          notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// OrderListResult represents a page of orders.
type OrderListResult struct {
	Orders []*Order
	Total  int64
	Page   int
	Limit  int
}
