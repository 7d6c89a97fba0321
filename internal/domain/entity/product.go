// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductOption is one selectable choice within an option group.
// PriceMultiplier scales the product's base price, 1.0 leaves it unchanged.
type ProductOption struct {
	Name            string          `json:"name"`
	PriceMultiplier decimal.Decimal `json:"price_multiplier"`
}

// OptionGroup is a named set of options the client picks from when ordering.
type OptionGroup struct {
	Name      string          `json:"name"`
	Required  bool            `json:"required"`
	MinSelect int             `json:"min_select"`
	MaxSelect int             `json:"max_select"`
	Options   []ProductOption `json:"options"`
}

// FindOption returns the option with the given name.
func (g OptionGroup) FindOption(name string) (ProductOption, bool) {
	for _, o := range g.Options {
		if o.Name == name {
			return o, true
		}
	}
	return ProductOption{}, false
}

// Product represents an item of the catering catalog.
type Product struct {
	ID           uuid.UUID
	SKU          string
	Name         string
	Description  string
	Category     string
	BasePrice    decimal.Decimal
	Active       bool
	Tags         []string
	OptionGroups []OptionGroup
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewProduct creates a new active Product.
func NewProduct(
	sku, name, description, category string,
	basePrice decimal.Decimal,
	tags []string,
	optionGroups []OptionGroup,
) *Product {
	now := time.Now().UTC()

	return &Product{
		ID:           uuid.New(),
		SKU:          sku,
		Name:         name,
		Description:  description,
		Category:     category,
		BasePrice:    basePrice,
		Active:       true,
		Tags:         tags,
		OptionGroups: optionGroups,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// FindOptionGroup returns the option group with the given name.
func (p *Product) FindOptionGroup(name string) (OptionGroup, bool) {
	for _, g := range p.OptionGroups {
		if g.Name == name {
			return g, true
		}
	}
	return OptionGroup{}, false
}

// ProductFilter narrows a product listing.
type ProductFilter struct {
	Search   string
	Category string
	Active   *bool
}
