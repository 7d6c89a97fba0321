// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/catering-ops/backend/internal/domain/entity"
)

// ProductModel represents the products table in the database.
// Tags and option groups are stored as JSON documents.
type ProductModel struct {
	ID           uuid.UUID                               `gorm:"type:uuid;primaryKey"`
	SKU          string                                  `gorm:"column:sku;type:varchar(50);uniqueIndex;not null"`
	Name         string                                  `gorm:"type:varchar(150);index;not null"`
	Description  string                                  `gorm:"type:text"`
	Category     string                                  `gorm:"type:varchar(50);index"`
	BasePrice    decimal.Decimal                         `gorm:"type:decimal(12,2);not null"`
	Active       bool                                    `gorm:"not null"`
	Tags         datatypes.JSONSlice[string]             `gorm:"type:jsonb"`
	OptionGroups datatypes.JSONSlice[entity.OptionGroup] `gorm:"type:jsonb"`
	CreatedAt    time.Time                               `gorm:"not null"`
	UpdatedAt    time.Time                               `gorm:"not null"`
}

// TableName returns the table name for the ProductModel.
func (ProductModel) TableName() string {
	return "products"
}

// ToEntity converts a ProductModel to a domain Product entity.
func (m *ProductModel) ToEntity() *entity.Product {
	return &entity.Product{
		ID:           m.ID,
		SKU:          m.SKU,
		Name:         m.Name,
		Description:  m.Description,
		Category:     m.Category,
		BasePrice:    m.BasePrice,
		Active:       m.Active,
		Tags:         []string(m.Tags),
		OptionGroups: []entity.OptionGroup(m.OptionGroups),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// ProductFromEntity creates a ProductModel from a domain Product entity.
func ProductFromEntity(product *entity.Product) *ProductModel {
	return &ProductModel{
		ID:           product.ID,
		SKU:          product.SKU,
		Name:         product.Name,
		Description:  product.Description,
		Category:     product.Category,
		BasePrice:    product.BasePrice,
		Active:       product.Active,
		Tags:         datatypes.JSONSlice[string](product.Tags),
		OptionGroups: datatypes.JSONSlice[entity.OptionGroup](product.OptionGroups),
		CreatedAt:    product.CreatedAt,
		UpdatedAt:    product.UpdatedAt,
	}
}
