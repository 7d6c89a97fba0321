// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/catering-ops/backend/internal/domain/entity"
)

// OrderModel represents the orders table in the database.
type OrderModel struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey"`
	OrderNumber    string           `gorm:"type:varchar(30);uniqueIndex;not null"`
	ClientID       uuid.UUID        `gorm:"type:uuid;index;not null"`
	ClientName     string           `gorm:"type:varchar(150);not null"`
	DistributorID  *uuid.UUID       `gorm:"type:uuid;index"`
	DeliveryDate   time.Time        `gorm:"index;not null"`
	DeliveryStatus string           `gorm:"type:varchar(30);index;not null"`
	Subtotal       decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	Tax            decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	Total          decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	Notes          string           `gorm:"type:text"`
	CreatedAt      time.Time        `gorm:"index;not null"`
	UpdatedAt      time.Time        `gorm:"not null"`
	Items          []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the OrderModel.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel represents the order_items table in the database.
type OrderItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductName string          `gorm:"type:varchar(150);not null"`
	Options     []string        `gorm:"type:jsonb;serializer:json"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// TableName returns the table name for the OrderItemModel.
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToEntity converts an OrderModel to a domain Order entity.
// Times come back in UTC whatever the driver returns.
func (m *OrderModel) ToEntity() *entity.Order {
	items := make([]entity.OrderItem, len(m.Items))
	for i, it := range m.Items {
		items[i] = entity.OrderItem{
			ID:          it.ID,
			OrderID:     it.OrderID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Options:     it.Options,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal,
		}
	}

	return &entity.Order{
		ID:             m.ID,
		OrderNumber:    m.OrderNumber,
		ClientID:       m.ClientID,
		ClientName:     m.ClientName,
		DistributorID:  m.DistributorID,
		DeliveryDate:   m.DeliveryDate.UTC(),
		DeliveryStatus: entity.DeliveryStatus(m.DeliveryStatus),
		Items:          items,
		Subtotal:       m.Subtotal,
		Tax:            m.Tax,
		Total:          m.Total,
		Notes:          m.Notes,
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
	}
}

// OrderFromEntity creates an OrderModel from a domain Order entity.
// The delivery date is stored as midnight UTC of its calendar day.
func OrderFromEntity(order *entity.Order) *OrderModel {
	items := make([]OrderItemModel, len(order.Items))
	for i, it := range order.Items {
		items[i] = OrderItemModel{
			ID:          it.ID,
			OrderID:     order.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Options:     it.Options,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal,
		}
	}

	return &OrderModel{
		ID:             order.ID,
		OrderNumber:    order.OrderNumber,
		ClientID:       order.ClientID,
		ClientName:     order.ClientName,
		DistributorID:  order.DistributorID,
		DeliveryDate:   CivilDate(order.DeliveryDate),
		DeliveryStatus: string(order.DeliveryStatus),
		Subtotal:       order.Subtotal,
		Tax:            order.Tax,
		Total:          order.Total,
		Notes:          order.Notes,
		CreatedAt:      order.CreatedAt.UTC(),
		UpdatedAt:      order.UpdatedAt.UTC(),
		Items:          items,
	}
}

// CivilDate returns midnight UTC of t's calendar day in t's own location.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
