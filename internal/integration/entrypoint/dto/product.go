package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/catering-ops/backend/internal/domain/entity"
)

// ProductOptionRequest is one option of an option group.
type ProductOptionRequest struct {
	Name            string          `json:"name" binding:"required,max=100"`
	PriceMultiplier decimal.Decimal `json:"price_multiplier"`
}

// OptionGroupRequest is a named set of options.
type OptionGroupRequest struct {
	Name      string                 `json:"name" binding:"required,max=100"`
	Required  bool                   `json:"required"`
	MinSelect int                    `json:"min_select" binding:"min=0"`
	MaxSelect int                    `json:"max_select" binding:"min=0"`
	Options   []ProductOptionRequest `json:"options" binding:"required,min=1,dive"`
}

// CreateProductRequest represents the request body for creating a product.
type CreateProductRequest struct {
	SKU          string               `json:"sku" binding:"required,max=50"`
	Name         string               `json:"name" binding:"required,min=1,max=200"`
	Description  string               `json:"description" binding:"max=2000"`
	Category     string               `json:"category" binding:"required,max=100"`
	BasePrice    decimal.Decimal      `json:"base_price"`
	Tags         []string             `json:"tags"`
	OptionGroups []OptionGroupRequest `json:"option_groups" binding:"dive"`
}

// ToOptionGroups converts the request groups to domain option groups.
func (r CreateProductRequest) ToOptionGroups() []entity.OptionGroup {
	groups := make([]entity.OptionGroup, 0, len(r.OptionGroups))
	for _, g := range r.OptionGroups {
		group := entity.OptionGroup{
			Name:      g.Name,
			Required:  g.Required,
			MinSelect: g.MinSelect,
			MaxSelect: g.MaxSelect,
		}
		for _, o := range g.Options {
			group.Options = append(group.Options, entity.ProductOption{
				Name:            o.Name,
				PriceMultiplier: o.PriceMultiplier,
			})
		}
		groups = append(groups, group)
	}
	return groups
}

// SetProductStatusRequest represents the request body for toggling a product.
type SetProductStatusRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// ListProductsQuery represents query parameters for listing products.
type ListProductsQuery struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Active   *bool  `form:"active"`
}

// ProductResponse represents a product in API responses.
type ProductResponse struct {
	ID           string               `json:"id"`
	SKU          string               `json:"sku"`
	Name         string               `json:"name"`
	Description  string               `json:"description"`
	Category     string               `json:"category"`
	BasePrice    decimal.Decimal      `json:"base_price"`
	Tags         []string             `json:"tags"`
	OptionGroups []entity.OptionGroup `json:"option_groups"`
	Active       bool                 `json:"active"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// ProductListResponse represents the response for listing products.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
}

// ToProductResponse converts a domain Product to a ProductResponse.
func ToProductResponse(p *entity.Product) ProductResponse {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	groups := p.OptionGroups
	if groups == nil {
		groups = []entity.OptionGroup{}
	}
	return ProductResponse{
		ID:           p.ID.String(),
		SKU:          p.SKU,
		Name:         p.Name,
		Description:  p.Description,
		Category:     p.Category,
		BasePrice:    p.BasePrice,
		Tags:         tags,
		OptionGroups: groups,
		Active:       p.Active,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ToProductListResponse converts domain products to a list response.
func ToProductListResponse(products []*entity.Product) ProductListResponse {
	items := make([]ProductResponse, len(products))
	for i, p := range products {
		items[i] = ToProductResponse(p)
	}
	return ProductListResponse{Products: items}
}
